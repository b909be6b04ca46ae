package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	channelmodels "cryptochat-backend/internal/features/channel/models"
	channelrepo "cryptochat-backend/internal/features/channel/repository"
	messagerepo "cryptochat-backend/internal/features/message/repository"
	userrepo "cryptochat-backend/internal/features/user/repository"
)

// Embedded interfaces keep the stubs small; only the counting methods are
// reachable from the stats service.
type stubUsers struct {
	userrepo.UserRepository
	total  int64
	online int64
}

func (s *stubUsers) Count(_ context.Context) (int64, error)       { return s.total, nil }
func (s *stubUsers) CountOnline(_ context.Context) (int64, error) { return s.online, nil }

type stubMessages struct {
	messagerepo.MessageRepository
	total int64
}

func (s *stubMessages) Count(_ context.Context) (int64, error) { return s.total, nil }

type stubChannels struct {
	channelrepo.ChannelRepository
	channels []*channelmodels.Channel
}

func (s *stubChannels) List(_ context.Context) ([]*channelmodels.Channel, error) {
	return s.channels, nil
}

type stubCounter int

func (s stubCounter) Size() int { return int(s) }

func TestHealthReportsLiveAndStoredCounts(t *testing.T) {
	svc := NewStatsService(
		&stubUsers{total: 12, online: 3},
		&stubMessages{total: 240},
		&stubChannels{},
		stubCounter(3),
		nil,
	)

	health, err := svc.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 3, health.ConnectedUsers)
	assert.EqualValues(t, 12, health.TotalUsers)
	assert.EqualValues(t, 240, health.TotalMessages)
	assert.Equal(t, channelmodels.DefaultChannels, health.Channels)
	assert.NotEmpty(t, health.Timestamp)
}

func TestStatisticsPerChannelBreakdown(t *testing.T) {
	channels := &stubChannels{channels: []*channelmodels.Channel{
		{Name: "general", MessageCount: 7},
		{Name: "trading", MessageCount: 2},
	}}
	svc := NewStatsService(
		&stubUsers{total: 5, online: 2},
		&stubMessages{total: 9},
		channels,
		stubCounter(2),
		nil,
	)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 5, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.OnlineUsers)
	assert.EqualValues(t, 9, stats.TotalMessages)
	require.Len(t, stats.Channels, 2)
	assert.Equal(t, "general", stats.Channels[0].Name)
	assert.EqualValues(t, 7, stats.Channels[0].MessageCount)
}
