package notifier

import (
	"sync"
	"sync/atomic"

	"restaurant-pos/internal/domain"
)

const subscriberBuffer = 16

// Hub fans events out to the in-process subscribers (one per SSE
// connection). Sends never block: a subscriber that cannot keep up drops
// events and relies on its reconciliation fetch, matching the at-most-once
// contract of the broadcast channel.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan domain.Event
	dropped     atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]chan domain.Event)}
}

// Subscribe registers a consumer channel under the given id. The channel is
// closed by Unsubscribe.
func (h *Hub) Subscribe(id string) <-chan domain.Event {
	ch := make(chan domain.Event, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.subscribers[id]; ok {
		close(old)
	}
	h.subscribers[id] = ch
	return ch
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

// Broadcast delivers the event to every subscriber whose buffer has room.
func (h *Hub) Broadcast(ev domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			h.dropped.Add(1)
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Dropped reports how many events were discarded because a subscriber's
// buffer was full.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }
