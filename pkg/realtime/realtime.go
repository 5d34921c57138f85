// Package realtime provides a lightweight in-process publish/subscribe hub
// used to fan out content reload events to multiple listeners (e.g. live
// search WebSocket sessions).
//
// Design goals:
//   - Zero external dependencies beyond the standard library.
//   - Best-effort fan-out: slow listeners drop events (never backpressure
//     the reload path).
//   - No persistence or replay semantics (ephemeral stream).
package realtime

import (
	"sync"
	"time"
)

// ReloadEvent signals that the content collection snapshot changed. Live
// search sessions use it to re-run their last query against fresh data.
type ReloadEvent struct {
	// ItemCount is the size of the collection after the reload.
	ItemCount int `json:"item_count"`

	// ReloadedAt is when the new snapshot became visible.
	ReloadedAt time.Time `json:"reloaded_at"`

	// Source names what triggered the reload ("import", "watch").
	Source string `json:"source,omitempty"`
}

// Hub is an in-memory fan-out dispatcher. Each registered listener receives
// events via its own buffered channel. If a listener's channel buffer is
// full when an event arrives, that event is dropped for that listener only,
// so a single slow consumer never degrades delivery to the others.
//
// The hub is concurrency-safe.
type Hub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan ReloadEvent
	nextID    uint64
	bufSize   int
}

// NewHub constructs a new hub with per-listener buffer size.
// If bufSize <= 0, a default of 8 is used.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 8
	}
	return &Hub{
		listeners: make(map[uint64]chan ReloadEvent),
		bufSize:   bufSize,
	}
}

// Register adds a new listener and returns (listenerID, receiveOnlyChannel).
// Callers must later Unregister(id) to release resources.
func (h *Hub) Register() (uint64, <-chan ReloadEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan ReloadEvent, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes the listener with the given id and closes its channel.
// It is safe to call multiple times; unknown ids are ignored.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Broadcast delivers an event to all registered listeners (best effort).
func (h *Hub) Broadcast(event ReloadEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- event:
		default:
			// Drop for slow listener.
		}
	}
}

// Size returns the current number of active listeners (approximate).
func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
