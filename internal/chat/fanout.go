package chat

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "cryptochat-backend/internal/common/errors"
	"cryptochat-backend/internal/common/logger"
	channelmodels "cryptochat-backend/internal/features/channel/models"
	messagemodels "cryptochat-backend/internal/features/message/models"
	usermodels "cryptochat-backend/internal/features/user/models"
)

// HandleSendMessage persists a single-channel message and fans it out to
// every live connection. Channel filtering is a client-side concern.
func (co *Coordinator) HandleSendMessage(connID string, data json.RawMessage) {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		co.messageError(connID, "invalid message payload")
		return
	}

	ctx := context.Background()

	user, ok := co.requireSender(ctx, connID)
	if !ok {
		return
	}

	text := strings.TrimSpace(payload.Text)
	if text == "" {
		co.messageError(connID, "message text is required")
		return
	}
	if len(text) > messagemodels.MaxTextLength {
		co.messageError(connID, "message text is too long")
		return
	}

	channel := payload.Channel
	if channel == "" {
		channel = channelmodels.DefaultChannel
	}

	existing, err := co.channels.FindByName(ctx, channel)
	if err != nil {
		logger.Error().Str("channel", channel).Err(err).Msg("Channel lookup failed")
		co.messageError(connID, "failed to send message")
		return
	}
	if existing == nil {
		co.messageError(connID, "channel not found")
		return
	}

	message, err := co.persistMessage(ctx, user, text, channel, false)
	if err != nil {
		logger.Error().Str("username", user.Username).Str("channel", channel).Err(err).Msg("Message persist failed")
		co.messageError(connID, "failed to send message")
		return
	}

	co.sender.Broadcast(mustEncode(EventNewMessage, message))
}

// HandleBroadcastMessage creates one message per configured channel. The
// per-channel writes are independent: a failing channel is logged and
// skipped, and events are emitted only for the messages that were persisted.
func (co *Coordinator) HandleBroadcastMessage(connID string, data json.RawMessage) {
	var payload BroadcastMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		co.messageError(connID, "invalid message payload")
		return
	}

	ctx := context.Background()

	user, ok := co.requireSender(ctx, connID)
	if !ok {
		return
	}

	text := strings.TrimSpace(payload.Text)
	if text == "" {
		co.messageError(connID, "message text is required")
		return
	}
	if len(text) > messagemodels.MaxTextLength {
		co.messageError(connID, "message text is too long")
		return
	}

	created := make([]*messagemodels.Message, 0, len(co.broadcastChannels))
	for _, channel := range co.broadcastChannels {
		message, err := co.persistMessage(ctx, user, text, channel, true)
		if err != nil {
			logger.Error().Str("username", user.Username).Str("channel", channel).Err(err).Msg("Broadcast persist failed")
			continue
		}
		created = append(created, message)
	}

	for _, message := range created {
		co.sender.Broadcast(mustEncode(EventNewMessage, message))
	}
}

// HandleTyping relays a typing indicator to every other live connection.
// Unbound connections are ignored; no state is retained.
func (co *Coordinator) HandleTyping(connID string, data json.RawMessage) {
	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	userIDHex, ok := co.registry.Resolve(connID)
	if !ok {
		return
	}

	co.sender.BroadcastExcept(connID, mustEncode(EventUserTyping, UserTypingPayload{
		UserID:   userIDHex,
		IsTyping: payload.IsTyping,
	}))
}

// requireSender enforces the fan-out precondition: the connection resolves
// to a user and that user is online. On failure it notifies the originator
// and performs no writes.
func (co *Coordinator) requireSender(ctx context.Context, connID string) (*usermodels.User, bool) {
	userIDHex, ok := co.registry.Resolve(connID)
	if !ok {
		co.notRegisteredError(connID)
		return nil, false
	}

	userID, err := parseObjectID(userIDHex)
	if err != nil {
		logger.Error().Str("conn_id", connID).Str("user_id", userIDHex).Err(err).Msg("Corrupt registry entry")
		co.notRegisteredError(connID)
		return nil, false
	}

	user, err := co.users.FindByID(ctx, userID)
	if err != nil {
		logger.Error().Str("conn_id", connID).Err(err).Msg("Sender lookup failed")
		co.messageError(connID, "failed to send message")
		return nil, false
	}
	if user == nil || !user.IsOnline {
		co.notRegisteredError(connID)
		return nil, false
	}

	return user, true
}

// persistMessage writes one message record and bumps the channel's counter.
// The two writes are not atomic; a failed counter update leaves the message
// in place and is logged only.
func (co *Coordinator) persistMessage(ctx context.Context, user *usermodels.User, text, channel string, isBroadcast bool) (*messagemodels.Message, error) {
	message := &messagemodels.Message{
		Username:    user.Username,
		Text:        text,
		Channel:     channel,
		Avatar:      user.Avatar,
		IsBroadcast: isBroadcast,
		UserID:      user.ID,
		CreatedAt:   time.Now(),
	}

	if err := co.messages.Insert(ctx, message); err != nil {
		return nil, err
	}

	if err := co.channels.RecordMessage(ctx, channel, message.CreatedAt); err != nil {
		logger.Error().Str("channel", channel).Err(err).Msg("Channel counter update failed")
	}

	return message, nil
}

func (co *Coordinator) messageError(connID, message string) {
	co.sender.SendTo(connID, mustEncode(EventMessageError, ErrorPayload{Error: message}))
}

func (co *Coordinator) notRegisteredError(connID string) {
	appErr := apperrors.NewNotRegisteredError()
	co.sender.SendTo(connID, mustEncode(EventMessageError, ErrorPayload{
		Error: appErr.Message,
		Code:  string(appErr.Code),
	}))
}

func parseObjectID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}
