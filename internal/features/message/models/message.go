package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxTextLength bounds the message body.
const MaxTextLength = 2000

// Message is immutable once created, except for deletion. Username and
// Avatar are snapshots of the sender at send time, not live references.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username    string             `bson:"username" json:"username"`
	Text        string             `bson:"text" json:"text"`
	Channel     string             `bson:"channel" json:"channel"`
	Avatar      string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	IsBroadcast bool               `bson:"isBroadcast" json:"isBroadcast"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"timestamp"`
}
