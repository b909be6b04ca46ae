package chat

import (
	"bytes"
	"encoding/json"
)

// Event names on the wire, both directions.
const (
	EventJoin             = "join"
	EventSendMessage      = "sendMessage"
	EventBroadcastMessage = "broadcastMessage"
	EventTyping           = "typing"

	EventUserJoined   = "userJoined"
	EventUserLeft     = "userLeft"
	EventJoinError    = "joinError"
	EventNewMessage   = "newMessage"
	EventMessageError = "messageError"
	EventUserTyping   = "userTyping"
)

// Envelope is the JSON frame exchanged over the socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// SendMessagePayload is the inbound sendMessage data.
type SendMessagePayload struct {
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
}

// BroadcastMessagePayload is the inbound broadcastMessage data.
type BroadcastMessagePayload struct {
	Text string `json:"text"`
}

// TypingPayload is the inbound typing data.
type TypingPayload struct {
	IsTyping bool `json:"isTyping"`
}

// UserJoinedPayload announces a user coming online.
type UserJoinedPayload struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	IsOnline bool   `json:"isOnline"`
}

// UserLeftPayload announces a user going offline.
type UserLeftPayload struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// ErrorPayload carries joinError and messageError bodies. Code is set for
// failures the client can act on, like rejoining.
type ErrorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// UserTypingPayload is the relayed typing indicator.
type UserTypingPayload struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// mustEncode marshals an outbound event frame. Payload types here contain
// nothing that can fail to marshal, so an error is a programming bug.
func mustEncode(event string, data interface{}) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		panic(err)
	}
	return frame
}

// isEmptyPayload reports whether a join payload is absent, meaning an
// explicit leave.
func isEmptyPayload(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
