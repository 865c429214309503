package memory

import (
	"context"
	"slices"
	"sync"

	audit "bankapi/pkg/platform/audit"
)

const DefaultCapacity = 10_000

// InMemoryStore keeps the newest events in arrival order, evicting the
// oldest once capacity is reached. Used by tests and by the server when no
// durable sink is configured.
type InMemoryStore struct {
	mu       sync.RWMutex
	capacity int
	events   []audit.Event
	head     int // index of the oldest event once the ring is full
}

type Option func(*InMemoryStore)

// WithCapacity bounds how many events are retained. n <= 0 keeps the default.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.head = 0
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.Trail = slices.Clone(event.Trail)
	if len(s.events) < s.capacity {
		s.events = append(s.events, event)
		return nil
	}
	s.events[s.head] = event
	s.head = (s.head + 1) % s.capacity
	return nil
}

func (s *InMemoryStore) ListByOperation(_ context.Context, op audit.Operation) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []audit.Event
	for _, e := range s.ordered() {
		if e.Operation == op {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns the last limit events, oldest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.ordered()
	start := max(len(events)-limit, 0)
	return slices.Clone(events[start:]), nil
}

// Len reports how many events are retained.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// ordered returns the retained events oldest first. Callers hold mu.
func (s *InMemoryStore) ordered() []audit.Event {
	if s.head == 0 {
		return s.events
	}
	return slices.Concat(s.events[s.head:], s.events[:s.head])
}
