package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	audit "bankapi/pkg/platform/audit"
	"bankapi/pkg/platform/audit/store/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	event := audit.Event{
		Operation: audit.OperationWithdraw,
		Kind:      "success",
		Trail:     []string{"PRE_VALIDATION", "RESULT_SUCCESS"},
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := store.ListByOperation(context.Background(), audit.OperationWithdraw)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "success", events[0].Kind)
	assert.NotEqual(t, uuid.Nil, events[0].ID, "emit should assign an id")
	assert.Equal(t, []string{"PRE_VALIDATION", "RESULT_SUCCESS"}, events[0].Trail)
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Event{
		Operation: audit.OperationDeposit,
		Kind:      "invalid_input",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		events, err := store.ListByOperation(context.Background(), audit.OperationDeposit)
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		err := pub.Emit(context.Background(), audit.Event{
			Operation: audit.OperationTransfer,
			Kind:      "failure",
		})
		require.NoError(t, err)
	}

	// Close should drain all events
	pub.Close()

	events, err := store.ListByOperation(context.Background(), audit.OperationTransfer)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	pub.Close()
	pub.Close()

	err := pub.Emit(context.Background(), audit.Event{Operation: audit.OperationLookup})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pub.Emit(context.Background(), audit.Event{Operation: audit.OperationLookup})
			if err != nil {
				assert.ErrorIs(t, err, ErrBufferFull)
			}
		}()
	}
	wg.Wait()
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	pub := NewPublisher(store, WithClock(func() time.Time { return fixed }))
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Event{Operation: audit.OperationCreate})
	require.NoError(t, err)

	events, err := store.ListByOperation(context.Background(), audit.OperationCreate)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	err := pub.Emit(context.Background(), audit.Event{
		Operation: audit.OperationCreate,
		Timestamp: customTime,
	})
	require.NoError(t, err)

	events, err := store.ListByOperation(context.Background(), audit.OperationCreate)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_ContextCancellation(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.Emit(ctx, audit.Event{Operation: audit.OperationLookup})
	assert.True(t, errors.Is(err, context.Canceled), "expected context.Canceled, got: %v", err)
}

func TestPublisher_MultipleOperations(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	require.NoError(t, pub.Emit(context.Background(), audit.Event{Operation: audit.OperationLookup, Kind: "empty_result"}))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Operation: audit.OperationWithdraw, Kind: "failure"}))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Operation: audit.OperationLookup, Kind: "success"}))

	lookups, err := store.ListByOperation(context.Background(), audit.OperationLookup)
	require.NoError(t, err)
	require.Len(t, lookups, 2)
	assert.Equal(t, "empty_result", lookups[0].Kind)
	assert.Equal(t, "success", lookups[1].Kind)

	recent, err := store.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, audit.OperationWithdraw, recent[0].Operation)
}

func TestEvent_Category(t *testing.T) {
	tests := []struct {
		name  string
		event audit.Event
		want  audit.EventCategory
	}{
		{"successful withdrawal", audit.Event{Operation: audit.OperationWithdraw, Kind: "success"}, audit.CategoryCompliance},
		{"successful creation", audit.Event{Operation: audit.OperationCreate, Kind: "success"}, audit.CategoryCompliance},
		{"failed transfer", audit.Event{Operation: audit.OperationTransfer, Kind: "failure"}, audit.CategoryOperations},
		{"successful lookup", audit.Event{Operation: audit.OperationLookup, Kind: "success"}, audit.CategoryOperations},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Category())
		})
	}
}

// stuckStore never returns from Append until released, whatever ctx says.
type stuckStore struct{ release chan struct{} }

func (s stuckStore) Append(context.Context, audit.Event) error {
	<-s.release
	return nil
}

// waitingStore blocks until the write's context ends.
type waitingStore struct{}

func (waitingStore) Append(ctx context.Context, _ audit.Event) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestPublisher_CloseIsBoundedByDrainTimeout(t *testing.T) {
	t.Run("store ignoring cancellation", func(t *testing.T) {
		store := stuckStore{release: make(chan struct{})}
		t.Cleanup(func() { close(store.release) })
		pub := NewPublisher(store, WithAsyncBuffer(10), WithDrainTimeout(50*time.Millisecond))

		for range 5 {
			require.NoError(t, pub.Emit(context.Background(), audit.Event{Operation: audit.OperationDeposit}))
		}

		closed := make(chan struct{})
		go func() {
			pub.Close()
			close(closed)
		}()
		select {
		case <-closed:
		case <-time.After(2 * time.Second):
			t.Fatal("Close blocked on a stuck store")
		}
	})

	t.Run("store honouring cancellation", func(t *testing.T) {
		pub := NewPublisher(waitingStore{}, WithAsyncBuffer(10), WithDrainTimeout(50*time.Millisecond))
		require.NoError(t, pub.Emit(context.Background(), audit.Event{Operation: audit.OperationLookup}))
		require.NoError(t, pub.Emit(context.Background(), audit.Event{Operation: audit.OperationLookup}))

		pub.Close()

		select {
		case <-pub.done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker kept running after the drain timeout")
		}
	})
}
