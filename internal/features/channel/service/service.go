package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cryptochat-backend/internal/common/cache"
	"cryptochat-backend/internal/common/errors"
	"cryptochat-backend/internal/common/logger"
	"cryptochat-backend/internal/features/channel/models"
	"cryptochat-backend/internal/features/channel/repository"
	messagemodels "cryptochat-backend/internal/features/message/models"
	messagerepo "cryptochat-backend/internal/features/message/repository"
)

const (
	channelListCacheKey = "channels:list"
	channelListCacheTTL = 30 * time.Second
)

type ChannelService interface {
	EnsureDefaults(ctx context.Context) error
	List(ctx context.Context) ([]*models.Channel, error)
	Create(ctx context.Context, name, description string) (*models.Channel, error)
	// Delete removes a channel and cascades deletion of its messages.
	Delete(ctx context.Context, id string) error
	Messages(ctx context.Context, id string, limit, skip int64) ([]*messagemodels.Message, error)
	// ClearMessages bulk-deletes a channel's messages and resets its counter.
	ClearMessages(ctx context.Context, id string) (int64, error)

	ListVoice(ctx context.Context) ([]*models.VoiceChannel, error)
	CreateVoice(ctx context.Context, name, description string, maxParticipants int, isPrivate bool) (*models.VoiceChannel, error)
	DeleteVoice(ctx context.Context, id string) error
}

type channelService struct {
	repo      repository.ChannelRepository
	voiceRepo repository.VoiceChannelRepository
	messages  messagerepo.MessageRepository
	cache     *cache.Service
}

func NewChannelService(
	repo repository.ChannelRepository,
	voiceRepo repository.VoiceChannelRepository,
	messages messagerepo.MessageRepository,
	cacheService *cache.Service,
) ChannelService {
	return &channelService{
		repo:      repo,
		voiceRepo: voiceRepo,
		messages:  messages,
		cache:     cacheService,
	}
}

// EnsureDefaults idempotently seeds the fixed text and voice channel sets.
func (s *channelService) EnsureDefaults(ctx context.Context) error {
	for _, name := range models.DefaultChannels {
		if err := s.repo.EnsureDefault(ctx, name, "Default "+name+" channel"); err != nil {
			return errors.NewDatabaseError("seed channel", err).WithDetail("channel", name)
		}
	}
	for _, seed := range models.DefaultVoiceChannels {
		if err := s.voiceRepo.EnsureDefault(ctx, seed); err != nil {
			return errors.NewDatabaseError("seed voice channel", err).WithDetail("channel", seed.Name)
		}
	}

	logger.Info().
		Int("channels", len(models.DefaultChannels)).
		Int("voice_channels", len(models.DefaultVoiceChannels)).
		Msg("Default channels ensured")
	return nil
}

func (s *channelService) List(ctx context.Context) ([]*models.Channel, error) {
	var channels []*models.Channel
	err := s.cache.GetOrSet(ctx, channelListCacheKey, &channels, channelListCacheTTL, func() (interface{}, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, errors.NewDatabaseError("list channels", err)
	}
	return channels, nil
}

func (s *channelService) Create(ctx context.Context, name, description string) (*models.Channel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.NewValidationError("name", "channel name is required")
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, errors.NewDatabaseError("find channel by name", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("channel", "channel already exists").WithDetail("name", name)
	}

	channel := &models.Channel{
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, channel); err != nil {
		return nil, errors.NewDatabaseError("create channel", err)
	}

	s.invalidate(ctx)
	logger.Info().Str("channel", name).Msg("Channel created")
	return channel, nil
}

func (s *channelService) Delete(ctx context.Context, id string) error {
	channel, err := s.findByHexID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, channel.ID); err != nil {
		return errors.NewDatabaseError("delete channel", err)
	}

	deleted, err := s.messages.DeleteByChannel(ctx, channel.Name)
	if err != nil {
		return errors.NewDatabaseError("cascade delete messages", err).WithDetail("channel", channel.Name)
	}

	s.invalidate(ctx)
	logger.Info().Str("channel", channel.Name).Int64("messages_deleted", deleted).Msg("Channel deleted")
	return nil
}

func (s *channelService) Messages(ctx context.Context, id string, limit, skip int64) ([]*messagemodels.Message, error) {
	channel, err := s.findByHexID(ctx, id)
	if err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByChannel(ctx, channel.Name, limit, skip)
	if err != nil {
		return nil, errors.NewDatabaseError("list channel messages", err)
	}
	return messages, nil
}

func (s *channelService) ClearMessages(ctx context.Context, id string) (int64, error) {
	channel, err := s.findByHexID(ctx, id)
	if err != nil {
		return 0, err
	}

	deleted, err := s.messages.DeleteByChannel(ctx, channel.Name)
	if err != nil {
		return 0, errors.NewDatabaseError("clear channel messages", err)
	}
	if err := s.repo.ResetMessageCount(ctx, channel.Name); err != nil {
		return 0, errors.NewDatabaseError("reset message count", err)
	}

	s.invalidate(ctx)
	logger.Info().Str("channel", channel.Name).Int64("messages_deleted", deleted).Msg("Channel cleared")
	return deleted, nil
}

func (s *channelService) ListVoice(ctx context.Context) ([]*models.VoiceChannel, error) {
	channels, err := s.voiceRepo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list voice channels", err)
	}
	return channels, nil
}

func (s *channelService) CreateVoice(ctx context.Context, name, description string, maxParticipants int, isPrivate bool) (*models.VoiceChannel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "voice channel name is required")
	}
	if maxParticipants <= 0 {
		maxParticipants = 10
	}

	channel := &models.VoiceChannel{
		Name:            name,
		Description:     description,
		IsActive:        true,
		Participants:    []primitive.ObjectID{},
		MaxParticipants: maxParticipants,
		IsPrivate:       isPrivate,
		CreatedAt:       time.Now(),
	}
	if err := s.voiceRepo.Create(ctx, channel); err != nil {
		return nil, errors.NewDatabaseError("create voice channel", err)
	}

	logger.Info().Str("voice_channel", name).Msg("Voice channel created")
	return channel, nil
}

func (s *channelService) DeleteVoice(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NewValidationError("id", "invalid voice channel id")
	}

	channel, err := s.voiceRepo.FindByID(ctx, oid)
	if err != nil {
		return errors.NewDatabaseError("find voice channel", err)
	}
	if channel == nil {
		return errors.New(errors.ErrCodeChannelNotFound, "Voice channel not found").WithDetail("id", id)
	}

	if err := s.voiceRepo.Delete(ctx, oid); err != nil {
		return errors.NewDatabaseError("delete voice channel", err)
	}

	logger.Info().Str("voice_channel", channel.Name).Msg("Voice channel deleted")
	return nil
}

func (s *channelService) findByHexID(ctx context.Context, id string) (*models.Channel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewValidationError("id", "invalid channel id")
	}

	channel, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, errors.NewDatabaseError("find channel", err)
	}
	if channel == nil {
		return nil, errors.New(errors.ErrCodeChannelNotFound, "Channel not found").WithDetail("id", id)
	}
	return channel, nil
}

func (s *channelService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, channelListCacheKey); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate channel cache")
	}
	if err := s.cache.Delete(ctx, "statistics"); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate statistics cache")
	}
}
