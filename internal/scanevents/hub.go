package scanevents

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/fx"
)

const DefaultSubscriberBuffer = 16

// Module provides the process-lifetime completion pulse hub. Subscribers are
// drained when the application stops.
var Module = fx.Module("scanevents",
	fx.Provide(func(lc fx.Lifecycle) *Hub {
		hub := NewHub()
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				hub.Shutdown()
				return nil
			},
		})
		return hub
	}),
)

// Pulse signals that an intake record became complete at TS.
type Pulse struct {
	TS time.Time `json:"ts"`
}

// Hub broadcasts completion pulses to currently registered subscribers.
// There is no backlog: a subscriber only sees pulses published while it is
// registered. Delivery is fire-and-forget; a slow subscriber never blocks
// the publisher or its peers.
type Hub struct {
	mu               sync.Mutex
	subs             map[uint64]chan Pulse
	nextID           uint64
	closed           bool
	subscriberBuffer int
}

type Subscription struct {
	hub  *Hub
	id   uint64
	ch   chan Pulse
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{
		subs:             make(map[uint64]chan Pulse),
		subscriberBuffer: DefaultSubscriberBuffer,
	}
}

// Publish delivers the pulse to every registered subscriber. Sends are
// non-blocking: a subscriber whose buffer is full misses the pulse.
func (h *Hub) Publish(ts time.Time) {
	if h == nil {
		return
	}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	subs := make([]chan Pulse, 0, len(h.subs))
	for _, ch := range h.subs {
		subs = append(subs, ch)
	}
	h.mu.Unlock()

	pulse := Pulse{TS: ts}
	for _, ch := range subs {
		select {
		case ch <- pulse:
		default:
		}
	}
}

func (h *Hub) Subscribe() (*Subscription, error) {
	if h == nil {
		return nil, errors.New("hub_unavailable")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, errors.New("hub_closed")
	}

	id := h.nextID
	h.nextID++
	ch := make(chan Pulse, h.subscriberBuffer)
	h.subs[id] = ch

	return &Subscription{hub: h, id: id, ch: ch}, nil
}

// Shutdown deregisters every subscriber. Further publishes are dropped.
func (h *Hub) Shutdown() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.subs = make(map[uint64]chan Pulse)
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

func (s *Subscription) Events() <-chan Pulse {
	if s == nil {
		return nil
	}
	return s.ch
}

func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() {
		s.hub.unsubscribe(s.id)
	})
}
