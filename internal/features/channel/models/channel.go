package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultChannels is the fixed text-channel set seeded at bootstrap. An
// all-channel broadcast fans out one message per entry.
var DefaultChannels = []string{"general", "trading", "nft", "defi", "announcements"}

// DefaultChannel is the target used when a message omits its channel.
const DefaultChannel = "general"

// Channel is a named label partitioning messages for display purposes; it is
// not a subscription boundary at the transport level.
type Channel struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name          string              `bson:"name" json:"name"`
	Description   string              `bson:"description" json:"description"`
	IsActive      bool                `bson:"isActive" json:"isActive"`
	MessageCount  int64               `bson:"messageCount" json:"messageCount"`
	LastMessageAt time.Time           `bson:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	CreatedBy     *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}
