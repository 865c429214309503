package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their retention needs.
type EventCategory string

const (
	// CategoryCompliance covers evaluations that moved money or created an
	// account. These must be kept for regulatory review.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers lookups and rejected requests. Useful for
	// debugging and can be retained for a shorter period.
	CategoryOperations EventCategory = "operations"
)

// Operation names the workflow that produced an outcome.
type Operation string

const (
	OperationLookup   Operation = "lookup"
	OperationCreate   Operation = "create"
	OperationTransfer Operation = "transfer"
	OperationWithdraw Operation = "withdraw"
	OperationDeposit  Operation = "deposit"
)

// mutating operations are those whose success changes persisted state.
var mutating = map[Operation]bool{
	OperationCreate:   true,
	OperationTransfer: true,
	OperationWithdraw: true,
	OperationDeposit:  true,
}

// Event records one evaluated outcome. Keep it transport-agnostic so stores
// and sinks can fan out.
type Event struct {
	ID        uuid.UUID
	Timestamp time.Time
	RequestID string
	Operation Operation
	Kind      string
	Status    int
	Message   string
	Trail     []string
}

// Category derives the retention category from the operation and kind.
func (e Event) Category() EventCategory {
	if e.Kind == "success" && mutating[e.Operation] {
		return CategoryCompliance
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Lister is implemented by stores that can be queried back.
type Lister interface {
	ListByOperation(ctx context.Context, op Operation) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
