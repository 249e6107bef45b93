package studio

import (
	"sync"
	"time"

	"dooze/internal/audio"
	"dooze/internal/session"
)

// EventType names a session state change.
type EventType string

const (
	EventSnapshot       EventType = "snapshot"
	EventCreated        EventType = "created"
	EventGenerating     EventType = "generating"
	EventScript         EventType = "script"
	EventGenerateFailed EventType = "generate_failed"
	EventAudio          EventType = "audio"
	EventDeleted        EventType = "deleted"
)

// Event is published whenever a session changes.
type Event struct {
	SessionID   string         `json:"sessionId"`
	Type        EventType      `json:"type"`
	Status      session.Status `json:"status,omitempty"`
	AudioStatus audio.Status   `json:"audioStatus,omitempty"`
	Message     string         `json:"message,omitempty"`
	Time        time.Time      `json:"time"`
}

// Publisher receives session events.
type Publisher interface {
	Publish(Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

// Broker fans events out to subscribers. Slow subscribers miss events rather
// than block publishers.
type Broker struct {
	mu   sync.Mutex
	next int
	subs map[int]subscription
}

type subscription struct {
	sessionID string
	ch        chan Event
}

// NewBroker returns an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]subscription)}
}

// Publish delivers ev to every subscriber watching its session or all sessions.
func (b *Broker) Publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if sub.sessionID != "" && sub.sessionID != ev.SessionID {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Subscribe registers for events of sessionID, or of every session when it is
// empty. The returned cancel function closes the channel.
func (b *Broker) Subscribe(sessionID string, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = subscription{sessionID: sessionID, ch: ch}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers reports the number of active subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
