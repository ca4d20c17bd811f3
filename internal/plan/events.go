package plan

import (
	"sync"
	"time"
)

// Event is one pipeline stage transition, published for operational
// visibility (the websocket feed subscribes to these).
type Event struct {
	Time       time.Time  `json:"time"`
	RequestID  string     `json:"requestId"`
	Stage      Stage      `json:"stage"`
	Provenance Provenance `json:"provenance,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}

// Broker fans pipeline events out to subscribers. Delivery is best-effort:
// a subscriber that falls behind loses events rather than blocking the
// pipeline.
type Broker struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe returns an event channel and a cancel function. The channel is
// closed on cancel.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Event, 64)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers ev to all current subscribers without blocking.
func (b *Broker) Publish(ev Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
