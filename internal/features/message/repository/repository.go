package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cryptochat-backend/internal/features/message/models"
)

// MessageRepository stores chat messages. Messages are append-only apart
// from deletion.
type MessageRepository interface {
	Insert(ctx context.Context, message *models.Message) error
	// ListByChannel returns up to limit messages of one channel, oldest
	// first, offset by skip from the newest end.
	ListByChannel(ctx context.Context, channel string, limit, skip int64) ([]*models.Message, error)
	ListAll(ctx context.Context, limit int64) ([]*models.Message, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	// DeleteByChannel removes every message labelled with the channel and
	// returns how many were deleted.
	DeleteByChannel(ctx context.Context, channel string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
