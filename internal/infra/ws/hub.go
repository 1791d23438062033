// Package ws implements the real-time fan-out to subscribers.
package ws

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vietddude/whalewatch/internal/core/domain"
	"github.com/vietddude/whalewatch/internal/tracking/metrics"
)

// MessageType identifies the kind of push a subscriber receives.
type MessageType string

const (
	MessageWhale   MessageType = "whale:transaction"
	MessagePrice   MessageType = "eth:price"
	MessageStats   MessageType = "stats:update"
	MessageClients MessageType = "clients:count"
)

// Message is the self-contained envelope delivered to subscribers.
type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

// Subscriber is a registered listener. Messages are delivered on a
// buffered channel; a subscriber that stops draining loses messages,
// never blocks the hub.
type Subscriber struct {
	ID string
	ch chan Message
}

// Messages returns the subscriber's delivery channel. It is closed on
// unsubscribe.
func (s *Subscriber) Messages() <-chan Message {
	return s.ch
}

// Hub delivers events to all current subscribers with best-effort
// semantics: no buffering beyond the per-subscriber channel, no retry,
// no backpressure.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]*Subscriber
	buffer int
	log    *slog.Logger
}

// NewHub creates a hub with the given per-subscriber channel buffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 32
	}
	return &Hub{
		subs:   make(map[string]*Subscriber),
		buffer: buffer,
		log:    slog.Default(),
	}
}

// Subscribe registers a new listener. The updated subscriber count is
// broadcast to everyone, the new subscriber included.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID: uuid.NewString(),
		ch: make(chan Message, h.buffer),
	}

	h.mu.Lock()
	h.subs[sub.ID] = sub
	count := len(h.subs)
	h.broadcastLocked(Message{Type: MessageClients, Payload: count})
	h.mu.Unlock()

	metrics.ConnectedClients.Set(float64(count))
	h.log.Debug("Client subscribed", "id", sub.ID, "clients", count)
	return sub
}

// Unsubscribe removes a listener and closes its channel, then
// broadcasts the new count to the remaining subscribers.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.subs, sub.ID)
	close(sub.ch)
	count := len(h.subs)
	h.broadcastLocked(Message{Type: MessageClients, Payload: count})
	h.mu.Unlock()

	metrics.ConnectedClients.Set(float64(count))
	h.log.Debug("Client unsubscribed", "id", sub.ID, "clients", count)
}

// ClientCount returns the number of current subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// PublishWhale pushes a newly detected whale event to all subscribers.
func (h *Hub) PublishWhale(ev domain.WhaleEvent) {
	h.broadcast(Message{Type: MessageWhale, Payload: ev})
}

// PublishPrice pushes an ETH price update to all subscribers.
func (h *Hub) PublishPrice(priceUSD float64) {
	h.broadcast(Message{Type: MessagePrice, Payload: priceUSD})
}

// PublishStats pushes a statistics snapshot to all subscribers.
func (h *Hub) PublishStats(stats domain.Stats) {
	h.broadcast(Message{Type: MessageStats, Payload: stats})
}

func (h *Hub) broadcast(msg Message) {
	h.mu.Lock()
	h.broadcastLocked(msg)
	h.mu.Unlock()
}

// broadcastLocked delivers msg to every subscriber without blocking.
// Caller must hold the mutex.
func (h *Hub) broadcastLocked(msg Message) {
	for _, sub := range h.subs {
		select {
		case sub.ch <- msg:
		default:
			h.log.Warn("Subscriber buffer full, dropping message",
				"id", sub.ID, "type", msg.Type)
		}
	}
}
