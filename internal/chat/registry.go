package chat

import "sync"

// Registry is the in-memory mapping from live connection id to durable user
// id. It is the only source of truth for "who is live right now": it is
// never persisted and starts empty on every process start.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]string)}
}

// Bind records the association, overwriting any prior entry for connID.
func (r *Registry) Bind(connID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[connID] = userID
}

// Resolve returns the user id bound to connID, if any.
func (r *Registry) Resolve(connID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	userID, ok := r.entries[connID]
	return userID, ok
}

// Unbind removes the entry for connID.
func (r *Registry) Unbind(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, connID)
}

// Size reports how many connections are currently bound.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
