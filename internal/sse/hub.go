// Package sse fans lead changes out to connected consoles.
package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Almas2004/led/internal/metrics"
	"github.com/Almas2004/led/internal/models"
)

// EventType defines the SSE event name.
type EventType string

const (
	EventLeadCreated EventType = "lead.created"
	EventLeadUpdated EventType = "lead.updated"
)

// subscriberBuffer is how many events a slow console may lag behind.
const subscriberBuffer = 64

// LeadEvent is the payload streamed to consoles.
type LeadEvent struct {
	Event     EventType         `json:"event"`
	LeadID    int64             `json:"leadId"`
	Name      string            `json:"name"`
	City      string            `json:"city"`
	Source    string            `json:"source"`
	Status    models.LeadStatus `json:"status"`
	ProductID *string           `json:"productId,omitempty"`
	At        time.Time         `json:"at"`
}

// Subscriber is one console stream.
type Subscriber struct {
	ID     string
	Events chan []byte
}

// Hub tracks console subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]*Subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]*Subscriber)}
}

// Subscribe adds a console stream. A second call with the same id replaces
// and closes the earlier stream.
func (h *Hub) Subscribe(id string) *Subscriber {
	s := &Subscriber{ID: id, Events: make(chan []byte, subscriberBuffer)}

	h.mu.Lock()
	if old, ok := h.subs[id]; ok {
		close(old.Events)
	}
	h.subs[id] = s
	n := len(h.subs)
	h.mu.Unlock()

	metrics.SSESubscribers.Set(float64(n))
	log.Info().Str("subscriber", id).Int("subscribers", n).Msg("Console subscribed to lead events")
	return s
}

// Unsubscribe removes a stream and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	s, ok := h.subs[id]
	if ok {
		close(s.Events)
		delete(h.subs, id)
	}
	n := len(h.subs)
	h.mu.Unlock()

	if ok {
		metrics.SSESubscribers.Set(float64(n))
		log.Info().Str("subscriber", id).Int("subscribers", n).Msg("Console unsubscribed from lead events")
	}
}

// Publish sends a lead change to every subscriber. A subscriber whose
// buffer is full misses the event.
func (h *Hub) Publish(event EventType, l models.Lead) {
	data, err := json.Marshal(LeadEvent{
		Event:     event,
		LeadID:    l.ID,
		Name:      l.Name,
		City:      l.City,
		Source:    l.Source,
		Status:    l.Status,
		ProductID: l.ProductID,
		At:        time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal lead event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs {
		select {
		case s.Events <- data:
		default:
			metrics.SSEDroppedEventsTotal.Inc()
			log.Warn().Str("subscriber", s.ID).Str("event", string(event)).Msg("Console lagging, lead event dropped")
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
