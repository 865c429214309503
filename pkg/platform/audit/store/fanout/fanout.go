// Package fanout appends audit events to a queryable primary store and
// mirrors them to streaming sinks such as Kafka.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	audit "bankapi/pkg/platform/audit"
	"bankapi/pkg/platform/circuit"
)

var ErrPrimaryNotQueryable = errors.New("primary audit store does not support listing")

type Store struct {
	primary audit.Store
	mirrors []audit.Store
}

func New(primary audit.Store, mirrors ...audit.Store) *Store {
	return &Store{primary: primary, mirrors: mirrors}
}

// Append writes to the primary first. Mirrors are attempted even when one of
// them fails; their errors are joined.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if err := s.primary.Append(ctx, event); err != nil {
		return err
	}
	var errs []error
	for i, m := range s.mirrors {
		if err := m.Append(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("audit mirror %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) ListByOperation(ctx context.Context, op audit.Operation) ([]audit.Event, error) {
	lister, ok := s.primary.(audit.Lister)
	if !ok {
		return nil, ErrPrimaryNotQueryable
	}
	return lister.ListByOperation(ctx, op)
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	lister, ok := s.primary.(audit.Lister)
	if !ok {
		return nil, ErrPrimaryNotQueryable
	}
	return lister.ListRecent(ctx, limit)
}

const (
	defaultMirrorTimeout = 2 * time.Second
	defaultRetryInterval = 10 * time.Second
)

type guarded struct {
	next    audit.Store
	breaker *circuit.Breaker
	logger  *slog.Logger
	now     func() time.Time

	timeout       time.Duration
	retryInterval time.Duration

	mu        sync.Mutex
	lastRetry time.Time
}

type GuardOption func(*guarded)

// WithMirrorTimeout caps a single mirror write. The caller's deadline still
// applies when it is shorter.
func WithMirrorTimeout(d time.Duration) GuardOption {
	return func(g *guarded) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRetryInterval sets how often an open mirror is retried. Zero retries
// on every event.
func WithRetryInterval(d time.Duration) GuardOption {
	return func(g *guarded) {
		if d >= 0 {
			g.retryInterval = d
		}
	}
}

func WithGuardLogger(logger *slog.Logger) GuardOption {
	return func(g *guarded) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func WithGuardClock(now func() time.Time) GuardOption {
	return func(g *guarded) {
		g.now = now
	}
}

// Guard wraps a mirror with a circuit breaker and a per-write timeout. While
// the circuit is open events skip the mirror, except for one retry write per
// interval, and retry errors are dropped so a dead sink logs once.
func Guard(mirror audit.Store, breaker *circuit.Breaker, opts ...GuardOption) audit.Store {
	g := &guarded{
		next:          mirror,
		breaker:       breaker,
		logger:        slog.Default(),
		now:           time.Now,
		timeout:       defaultMirrorTimeout,
		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *guarded) Append(ctx context.Context, event audit.Event) error {
	if g.breaker.IsOpen() && !g.takeRetry() {
		return nil
	}

	writeCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	err := g.next.Append(writeCtx, event)
	if err == nil {
		if _, change := g.breaker.RecordSuccess(); change.Closed {
			g.logger.InfoContext(ctx, "audit mirror recovered", "mirror", g.breaker.Name())
		}
		return nil
	}

	useFallback, change := g.breaker.RecordFailure()
	if change.Opened {
		g.markRetry()
		g.logger.WarnContext(ctx, "audit mirror circuit opened",
			"mirror", g.breaker.Name(),
			"error", err,
		)
	}
	if useFallback {
		return nil
	}
	return err
}

// takeRetry reports whether this event may be written to the open mirror.
func (g *guarded) takeRetry() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	if now.Sub(g.lastRetry) < g.retryInterval {
		return false
	}
	g.lastRetry = now
	return true
}

func (g *guarded) markRetry() {
	g.mu.Lock()
	g.lastRetry = g.now()
	g.mu.Unlock()
}
