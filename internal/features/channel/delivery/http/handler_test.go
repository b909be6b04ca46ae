package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptochat-backend/internal/common/errors"
	"cryptochat-backend/internal/common/middleware"
	"cryptochat-backend/internal/features/channel/models"
	messagemodels "cryptochat-backend/internal/features/message/models"
)

// stubChannelService returns canned values so the handler and error
// middleware can be exercised without a store.
type stubChannelService struct {
	channels  []*models.Channel
	createErr error
	deleteErr error
}

func (s *stubChannelService) EnsureDefaults(_ context.Context) error { return nil }

func (s *stubChannelService) List(_ context.Context) ([]*models.Channel, error) {
	return s.channels, nil
}

func (s *stubChannelService) Create(_ context.Context, name, description string) (*models.Channel, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Channel{Name: name, Description: description, IsActive: true}, nil
}

func (s *stubChannelService) Delete(_ context.Context, id string) error {
	return s.deleteErr
}

func (s *stubChannelService) Messages(_ context.Context, id string, limit, skip int64) ([]*messagemodels.Message, error) {
	return nil, nil
}

func (s *stubChannelService) ClearMessages(_ context.Context, id string) (int64, error) {
	return 0, nil
}

func (s *stubChannelService) ListVoice(_ context.Context) ([]*models.VoiceChannel, error) {
	return nil, nil
}

func (s *stubChannelService) CreateVoice(_ context.Context, name, description string, maxParticipants int, isPrivate bool) (*models.VoiceChannel, error) {
	return nil, nil
}

func (s *stubChannelService) DeleteVoice(_ context.Context, id string) error { return nil }

func newTestRouter(svc *stubChannelService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler())
	NewChannelHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}

func TestListChannels(t *testing.T) {
	svc := &stubChannelService{channels: []*models.Channel{{Name: "general"}}}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/channels", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"general"`)
}

func TestCreateChannelRejectsBadBody(t *testing.T) {
	router := newTestRouter(&stubChannelService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/channels", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), string(errors.ErrCodeValidation))
}

func TestCreateChannelConflictMapsTo409(t *testing.T) {
	svc := &stubChannelService{createErr: errors.NewConflictError("channel", "channel already exists")}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/channels", strings.NewReader(`{"name":"general"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteChannelNotFoundMapsTo404(t *testing.T) {
	svc := &stubChannelService{deleteErr: errors.New(errors.ErrCodeChannelNotFound, "Channel not found")}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/channels/abc", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), string(errors.ErrCodeChannelNotFound))
}

func TestRequestIDEchoedBack(t *testing.T) {
	router := newTestRouter(&stubChannelService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/channels", nil)
	req.Header.Set("X-Request-ID", "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}
