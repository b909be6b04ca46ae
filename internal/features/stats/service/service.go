package service

import (
	"context"
	"time"

	"cryptochat-backend/internal/common/cache"
	"cryptochat-backend/internal/common/errors"
	channelmodels "cryptochat-backend/internal/features/channel/models"
	channelrepo "cryptochat-backend/internal/features/channel/repository"
	messagerepo "cryptochat-backend/internal/features/message/repository"
	userrepo "cryptochat-backend/internal/features/user/repository"
)

const (
	statisticsCacheKey = "statistics"
	statisticsCacheTTL = 30 * time.Second
)

// LiveCounter reports how many connections are currently bound to a user.
// Implemented by the chat registry.
type LiveCounter interface {
	Size() int
}

// Health is the /api/health body.
type Health struct {
	Status         string   `json:"status"`
	ConnectedUsers int      `json:"connectedUsers"`
	TotalUsers     int64    `json:"totalUsers"`
	TotalMessages  int64    `json:"totalMessages"`
	Channels       []string `json:"channels"`
	Timestamp      string   `json:"timestamp"`
}

// ChannelStats is one channel's slice of the statistics body.
type ChannelStats struct {
	Name         string `json:"name"`
	MessageCount int64  `json:"messageCount"`
}

// Statistics is the /api/statistics body.
type Statistics struct {
	TotalUsers    int64          `json:"totalUsers"`
	OnlineUsers   int64          `json:"onlineUsers"`
	TotalMessages int64          `json:"totalMessages"`
	Channels      []ChannelStats `json:"channels"`
}

type StatsService interface {
	Health(ctx context.Context) (*Health, error)
	Statistics(ctx context.Context) (*Statistics, error)
}

type statsService struct {
	users    userrepo.UserRepository
	messages messagerepo.MessageRepository
	channels channelrepo.ChannelRepository
	live     LiveCounter
	cache    *cache.Service
}

func NewStatsService(
	users userrepo.UserRepository,
	messages messagerepo.MessageRepository,
	channels channelrepo.ChannelRepository,
	live LiveCounter,
	cacheService *cache.Service,
) StatsService {
	return &statsService{
		users:    users,
		messages: messages,
		channels: channels,
		live:     live,
		cache:    cacheService,
	}
}

func (s *statsService) Health(ctx context.Context) (*Health, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("count users", err)
	}
	totalMessages, err := s.messages.Count(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("count messages", err)
	}

	return &Health{
		Status:         "ok",
		ConnectedUsers: s.live.Size(),
		TotalUsers:     totalUsers,
		TotalMessages:  totalMessages,
		Channels:       channelmodels.DefaultChannels,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *statsService) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	err := s.cache.GetOrSet(ctx, statisticsCacheKey, &stats, statisticsCacheTTL, func() (interface{}, error) {
		return s.computeStatistics(ctx)
	})
	if err != nil {
		if _, ok := errors.AsAppError(err); ok {
			return nil, err
		}
		return nil, errors.NewDatabaseError("compute statistics", err)
	}

	// The online count reflects the moment of the call, not the cached
	// snapshot.
	online, err := s.users.CountOnline(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("count online users", err)
	}
	stats.OnlineUsers = online

	return &stats, nil
}

func (s *statsService) computeStatistics(ctx context.Context) (*Statistics, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalMessages, err := s.messages.Count(ctx)
	if err != nil {
		return nil, err
	}
	channels, err := s.channels.List(ctx)
	if err != nil {
		return nil, err
	}

	channelStats := make([]ChannelStats, 0, len(channels))
	for _, channel := range channels {
		channelStats = append(channelStats, ChannelStats{
			Name:         channel.Name,
			MessageCount: channel.MessageCount,
		})
	}

	return &Statistics{
		TotalUsers:    totalUsers,
		TotalMessages: totalMessages,
		Channels:      channelStats,
	}, nil
}
