package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the durable identity record. At most one live socket is bound to a
// user at a time; IsOnline is true iff SocketID is currently set.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username      string             `bson:"username" json:"username"`
	WalletAddress string             `bson:"walletAddress" json:"walletAddress"`
	Avatar        string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role          string             `bson:"role,omitempty" json:"role,omitempty"`
	IsOnline      bool               `bson:"isOnline" json:"isOnline"`
	SocketID      string             `bson:"socketId,omitempty" json:"-"`
	LastSeen      time.Time          `bson:"lastSeen" json:"lastSeen"`
	JoinedAt      time.Time          `bson:"joinedAt" json:"joinedAt"`
}

// Identity is the payload supplied by a client on join.
type Identity struct {
	Username      string `json:"username"`
	WalletAddress string `json:"walletAddress"`
	Avatar        string `json:"avatar,omitempty"`
	Role          string `json:"role,omitempty"`
}
