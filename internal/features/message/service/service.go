package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cryptochat-backend/internal/common/errors"
	"cryptochat-backend/internal/common/logger"
	channelmodels "cryptochat-backend/internal/features/channel/models"
	"cryptochat-backend/internal/features/message/models"
	"cryptochat-backend/internal/features/message/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

type MessageService interface {
	// History returns a page of one channel's messages, oldest first.
	History(ctx context.Context, channel string, limit, skip int64) ([]*models.Message, error)
	// All returns the most recent messages across every channel.
	All(ctx context.Context, limit int64) ([]*models.Message, error)
	Delete(ctx context.Context, id string) error
}

type messageService struct {
	repo repository.MessageRepository
}

func NewMessageService(repo repository.MessageRepository) MessageService {
	return &messageService{repo: repo}
}

func (s *messageService) History(ctx context.Context, channel string, limit, skip int64) ([]*models.Message, error) {
	if channel == "" {
		channel = channelmodels.DefaultChannel
	}
	limit = clampLimit(limit)
	if skip < 0 {
		skip = 0
	}

	messages, err := s.repo.ListByChannel(ctx, channel, limit, skip)
	if err != nil {
		return nil, errors.NewDatabaseError("list messages", err).WithDetail("channel", channel)
	}
	return messages, nil
}

func (s *messageService) All(ctx context.Context, limit int64) ([]*models.Message, error) {
	messages, err := s.repo.ListAll(ctx, clampLimit(limit))
	if err != nil {
		return nil, errors.NewDatabaseError("list all messages", err)
	}
	return messages, nil
}

func (s *messageService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NewValidationError("id", "invalid message id")
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return errors.NewDatabaseError("delete message", err)
	}
	if deleted == 0 {
		return errors.New(errors.ErrCodeMessageNotFound, "Message not found").WithDetail("id", id)
	}

	logger.Info().Str("message_id", id).Msg("Message deleted")
	return nil
}

func clampLimit(limit int64) int64 {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}
