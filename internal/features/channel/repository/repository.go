package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cryptochat-backend/internal/features/channel/models"
)

// ChannelRepository stores text channels. Find methods return (nil, nil)
// when no document matches.
type ChannelRepository interface {
	// EnsureDefault upserts a seed channel by name without touching an
	// existing document.
	EnsureDefault(ctx context.Context, name, description string) error
	List(ctx context.Context) ([]*models.Channel, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Channel, error)
	FindByName(ctx context.Context, name string) (*models.Channel, error)
	Create(ctx context.Context, channel *models.Channel) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// RecordMessage atomically increments the channel's message counter and
	// stamps the last-message time.
	RecordMessage(ctx context.Context, name string, at time.Time) error
	ResetMessageCount(ctx context.Context, name string) error
}

// VoiceChannelRepository stores voice-channel metadata (CRUD only; audio
// routing is out of scope).
type VoiceChannelRepository interface {
	EnsureDefault(ctx context.Context, seed models.VoiceChannelSeed) error
	List(ctx context.Context) ([]*models.VoiceChannel, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.VoiceChannel, error)
	Create(ctx context.Context, channel *models.VoiceChannel) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
