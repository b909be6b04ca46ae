package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	frame := mustEncode(EventUserTyping, UserTypingPayload{UserID: "abc", IsTyping: true})

	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, EventUserTyping, env.Event)

	var payload UserTypingPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "abc", payload.UserID)
	assert.True(t, payload.IsTyping)
}

func TestIsEmptyPayload(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{"nil", "", true},
		{"null literal", "null", true},
		{"whitespace", "  \n ", true},
		{"object", `{"username":"a"}`, false},
		{"empty object", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isEmptyPayload(json.RawMessage(tt.data)))
		})
	}
}
