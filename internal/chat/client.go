package chat

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"cryptochat-backend/internal/common/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxFrameSize   = 8192
	sendBufferSize = 256
)

// Client is one live websocket connection. Events from a single client are
// processed in arrival order by its readPump; clients only interact with
// each other through the coordinator and the hub.
type Client struct {
	id          string
	conn        *websocket.Conn
	send        chan []byte
	hub         *Hub
	coordinator *Coordinator
	closed      bool
}

func NewClient(id string, conn *websocket.Conn, hub *Hub, coordinator *Coordinator) *Client {
	conn.SetReadLimit(maxFrameSize)
	return &Client{
		id:          id,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		hub:         hub,
		coordinator: coordinator,
	}
}

// trySend queues a frame without blocking. Callers must hold the hub's
// client-map lock, which fences trySend against channel close.
func (c *Client) trySend(payload []byte) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) readPump() {
	defer func() {
		// Transport drop counts as a leave even without an explicit signal.
		c.coordinator.HandleDisconnect(c.id)
		// Once the hub is shutting down its loop no longer receives, and
		// closeAllClients has already dropped us.
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Str("conn_id", c.id).Err(err).Msg("Unexpected websocket close")
			}
			return
		}

		c.dispatch(raw)
	}
}

func (c *Client) dispatch(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Debug().Str("conn_id", c.id).Err(err).Msg("Dropping malformed frame")
		return
	}

	switch env.Event {
	case EventJoin:
		c.coordinator.HandleJoin(c.id, env.Data)
	case EventSendMessage:
		c.coordinator.HandleSendMessage(c.id, env.Data)
	case EventBroadcastMessage:
		c.coordinator.HandleBroadcastMessage(c.id, env.Data)
	case EventTyping:
		c.coordinator.HandleTyping(c.id, env.Data)
	default:
		logger.Debug().Str("conn_id", c.id).Str("event", env.Event).Msg("Unknown event")
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
