package http

import (
	"sync"

	"quiz-room-service/internal/app"
)

// Hub owns the outbound side of every live connection: one buffered channel
// per connection id, drained by that connection's writer goroutine. It is the
// app.Sender used by the game service, so room operations never write to a
// socket while holding room state.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]chan app.Event
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]chan app.Event)}
}

// register creates the send channel for a new connection.
func (h *Hub) register(connID string) chan app.Event {
	ch := make(chan app.Event, 16)
	h.mu.Lock()
	h.conns[connID] = ch
	h.mu.Unlock()
	return ch
}

// unregister closes the send channel; the channel is only ever closed here,
// under the same lock that guards sends.
func (h *Hub) unregister(connID string) {
	h.mu.Lock()
	if ch, ok := h.conns[connID]; ok {
		delete(h.conns, connID)
		close(ch)
	}
	h.mu.Unlock()
}

// Unicast delivers an event to one connection. Unknown connections are a
// no-op: the client disconnected between the room operation and the send.
func (h *Hub) Unicast(connID string, event app.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.sendLocked(connID, event)
}

// Broadcast delivers an event to every listed connection.
func (h *Hub) Broadcast(connIDs []string, event app.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, id := range connIDs {
		h.sendLocked(id, event)
	}
}

func (h *Hub) sendLocked(connID string, event app.Event) {
	ch, ok := h.conns[connID]
	if !ok {
		return
	}
	select {
	case ch <- event:
	default:
		// slow client: drop its oldest queued event rather than block the room
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
}
