package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"cryptochat-backend/internal/common/logger"
)

// Handler upgrades HTTP requests to websocket connections and hands them to
// the hub.
type Handler struct {
	hub         *Hub
	coordinator *Coordinator
	upgrader    websocket.Upgrader
}

func NewHandler(hub *Hub, coordinator *Coordinator, allowedOrigin string) *Handler {
	return &Handler{
		hub:         hub,
		coordinator: coordinator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Non-browser clients send no Origin header.
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/ws", h.serve)
}

func (h *Handler) serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn().Str("remote", c.Request.RemoteAddr).Err(err).Msg("Websocket upgrade failed")
		return
	}

	client := NewClient(uuid.New().String(), conn, h.hub, h.coordinator)
	h.hub.Register(client)
}
