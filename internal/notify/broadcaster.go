// Package notify holds the transient user-facing messages ("added to
// cart", "payment failed") that expire on their own a few seconds after
// they are shown.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

type Notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// EventType distinguishes subscriber events.
type EventType string

const (
	EventShown     EventType = "shown"
	EventDismissed EventType = "dismissed"
)

type Event struct {
	Type         EventType
	Notification Notification
}

const DefaultTTL = 3 * time.Second

// Broadcaster keeps the active set. Every Show schedules an automatic
// dismissal after the TTL; an explicit Dismiss cancels the pending timer.
// Identical messages stack, there is no de-duplication.
type Broadcaster struct {
	mu     sync.Mutex
	ttl    time.Duration
	active []Notification
	timers map[string]*time.Timer
	subs   map[int]chan Event
	nextID int
}

func NewBroadcaster(ttl time.Duration) *Broadcaster {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Broadcaster{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
		subs:   make(map[int]chan Event),
	}
}

// Show appends a notification and returns its id.
func (b *Broadcaster) Show(message string, kind Kind) string {
	n := Notification{ID: uuid.NewString(), Message: message, Kind: kind}
	b.mu.Lock()
	b.active = append(b.active, n)
	b.timers[n.ID] = time.AfterFunc(b.ttl, func() { b.Dismiss(n.ID) })
	b.mu.Unlock()
	b.publish(Event{Type: EventShown, Notification: n})
	return n.ID
}

// Dismiss removes a notification immediately and cancels its expiry
// timer. No-op when the id is not active.
func (b *Broadcaster) Dismiss(id string) {
	b.mu.Lock()
	idx := -1
	for i, n := range b.active {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return
	}
	n := b.active[idx]
	b.active = append(b.active[:idx], b.active[idx+1:]...)
	if t, ok := b.timers[id]; ok {
		t.Stop()
		delete(b.timers, id)
	}
	b.mu.Unlock()
	b.publish(Event{Type: EventDismissed, Notification: n})
}

// Active returns the current set in insertion order.
func (b *Broadcaster) Active() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Notification(nil), b.active...)
}

// Subscribe returns a buffered event channel and a cancel function. The
// channel is closed on cancel; slow subscribers drop events rather than
// block the broadcaster.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan Event, 16)
	b.subs[id] = ch
	b.mu.Unlock()
	cancel := func() {
		b.mu.Lock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Close stops all pending timers and closes subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	b.active = nil
}

func (b *Broadcaster) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
