package chat

import (
	"context"
	"sync"
	"time"

	"cryptochat-backend/internal/common/logger"
)

// Sender is the narrow fan-out surface the coordinator emits through.
// Delivery is fire-and-forget: a send never blocks the caller and carries no
// acknowledgement.
type Sender interface {
	Broadcast(payload []byte)
	BroadcastExcept(connID string, payload []byte)
	SendTo(connID string, payload []byte)
}

// Hub owns the set of live websocket clients and fans frames out to them.
// Registration and teardown run through channels on a single goroutine;
// sends take a read lock on the client map.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Register hands a freshly upgraded client to the hub, which launches its
// pump goroutines.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Run is the hub's event loop. Call it in its own goroutine.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAllClients()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			count := len(h.clients)
			h.mu.Unlock()
			logger.Info().Str("conn_id", client.id).Int("total", count).Msg("Client connected")

			h.wg.Add(2)
			go func() {
				defer h.wg.Done()
				client.writePump()
			}()
			go func() {
				defer h.wg.Done()
				client.readPump()
			}()

		case client := <-h.unregister:
			h.drop(client)
		}
	}
}

func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	current, ok := h.clients[client.id]
	if ok && current == client {
		delete(h.clients, client.id)
		client.closed = true
	}
	count := len(h.clients)
	h.mu.Unlock()

	if ok && current == client {
		close(client.send)
		logger.Info().Str("conn_id", client.id).Int("total", count).Msg("Client disconnected")
	}
}

// Broadcast sends a frame to every live connection.
func (h *Hub) Broadcast(payload []byte) {
	h.BroadcastExcept("", payload)
}

// BroadcastExcept sends a frame to every live connection other than connID.
// Clients whose send buffer is full are dropped; a peer that cannot drain
// its socket is not worth stalling everyone else for.
func (h *Hub) BroadcastExcept(connID string, payload []byte) {
	var stale []*Client

	h.mu.RLock()
	for id, client := range h.clients {
		if id == connID {
			continue
		}
		if !client.trySend(payload) {
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.evict(client)
	}
}

// SendTo sends a frame to a single connection, if it is still live. A full
// send buffer evicts the client, same as the broadcast path.
func (h *Hub) SendTo(connID string, payload []byte) {
	h.mu.RLock()
	client, ok := h.clients[connID]
	delivered := ok && client.trySend(payload)
	h.mu.RUnlock()

	if ok && !delivered {
		h.evict(client)
	}
}

func (h *Hub) evict(client *Client) {
	logger.Warn().Str("conn_id", client.id).Msg("Send buffer full, evicting client")
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// closeAllClients drops every client directly: the event loop is returning,
// so nobody is left to receive on unregister.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for id, client := range h.clients {
		delete(h.clients, id)
		client.closed = true
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		close(client.send)
		_ = client.conn.Close()
	}
}

// Shutdown stops the event loop and waits for the client pumps to finish,
// up to the timeout.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.cancel()
	<-h.done

	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-time.After(timeout):
		return context.DeadlineExceeded
	}
}
