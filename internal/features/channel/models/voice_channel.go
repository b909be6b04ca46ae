package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoiceChannel is metadata-only containership; audio routing happens
// elsewhere. Participants is bounded by MaxParticipants.
type VoiceChannel struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name"`
	Description     string               `bson:"description" json:"description"`
	IsActive        bool                 `bson:"isActive" json:"isActive"`
	Participants    []primitive.ObjectID `bson:"participants" json:"participants"`
	MaxParticipants int                  `bson:"maxParticipants" json:"maxParticipants"`
	IsPrivate       bool                 `bson:"isPrivate" json:"isPrivate"`
	CreatedBy       *primitive.ObjectID  `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
}

// ParticipantCount is derived, never stored.
func (v *VoiceChannel) ParticipantCount() int {
	return len(v.Participants)
}

// VoiceChannelSeed describes a bootstrap voice channel.
type VoiceChannelSeed struct {
	Name            string
	Description     string
	MaxParticipants int
}

// DefaultVoiceChannels is the fixed voice-channel seed set.
var DefaultVoiceChannels = []VoiceChannelSeed{
	{Name: "General Voice", Description: "Hang out and talk about anything", MaxParticipants: 20},
	{Name: "Trading Talk", Description: "Live market discussion", MaxParticipants: 15},
	{Name: "Music & Chill", Description: "Listen together", MaxParticipants: 10},
}
