package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cryptochat-backend/internal/common/errors"
	"cryptochat-backend/internal/features/channel/service"
)

type ChannelHandler struct {
	service service.ChannelService
}

func NewChannelHandler(service service.ChannelService) *ChannelHandler {
	return &ChannelHandler{service: service}
}

func (h *ChannelHandler) RegisterRoutes(router *gin.RouterGroup) {
	channels := router.Group("/channels")
	{
		channels.GET("", h.list)
		channels.POST("", h.create)
		channels.DELETE("/:id", h.delete)
		channels.GET("/:id/messages", h.messages)
		channels.DELETE("/:id/messages", h.clearMessages)
	}

	voice := router.Group("/voice-channels")
	{
		voice.GET("", h.listVoice)
		voice.POST("", h.createVoice)
		voice.DELETE("/:id", h.deleteVoice)
	}
}

func (h *ChannelHandler) list(c *gin.Context) {
	channels, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

type createChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ChannelHandler) create(c *gin.Context) {
	var req createChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.NewValidationError("body", "invalid JSON body"))
		return
	}

	channel, err := h.service.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"channel": channel})
}

func (h *ChannelHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ChannelHandler) messages(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)

	messages, err := h.service.Messages(c.Request.Context(), c.Param("id"), limit, skip)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChannelHandler) clearMessages(c *gin.Context) {
	deleted, err := h.service.ClearMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

func (h *ChannelHandler) listVoice(c *gin.Context) {
	channels, err := h.service.ListVoice(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	// Participant count is derived, not stored.
	type voiceChannelView struct {
		ID               interface{} `json:"id"`
		Name             string      `json:"name"`
		Description      string      `json:"description"`
		IsActive         bool        `json:"isActive"`
		ParticipantCount int         `json:"participantCount"`
		MaxParticipants  int         `json:"maxParticipants"`
		IsPrivate        bool        `json:"isPrivate"`
	}

	views := make([]voiceChannelView, 0, len(channels))
	for _, ch := range channels {
		views = append(views, voiceChannelView{
			ID:               ch.ID,
			Name:             ch.Name,
			Description:      ch.Description,
			IsActive:         ch.IsActive,
			ParticipantCount: ch.ParticipantCount(),
			MaxParticipants:  ch.MaxParticipants,
			IsPrivate:        ch.IsPrivate,
		})
	}

	c.JSON(http.StatusOK, gin.H{"voiceChannels": views})
}

type createVoiceChannelRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	MaxParticipants int    `json:"maxParticipants"`
	IsPrivate       bool   `json:"isPrivate"`
}

func (h *ChannelHandler) createVoice(c *gin.Context) {
	var req createVoiceChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.NewValidationError("body", "invalid JSON body"))
		return
	}

	channel, err := h.service.CreateVoice(c.Request.Context(), req.Name, req.Description, req.MaxParticipants, req.IsPrivate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"voiceChannel": channel})
}

func (h *ChannelHandler) deleteVoice(c *gin.Context) {
	if err := h.service.DeleteVoice(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
