package admin

import (
	"time"

	"github.com/google/uuid"

	audit "bankapi/pkg/platform/audit"
)

// OutcomeEventResponse is the HTTP view of one audited outcome.
type OutcomeEventResponse struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Operation string    `json:"operation"`
	Category  string    `json:"category"`
	Kind      string    `json:"kind"`
	Status    int       `json:"status"`
	Message   string    `json:"message,omitempty"`
	Trail     []string  `json:"trail"`
}

// OutcomeListResponse wraps a list of audited outcomes.
type OutcomeListResponse struct {
	Events []*OutcomeEventResponse `json:"events"`
	Total  int                     `json:"total"`
}

func toListResponse(events []audit.Event) *OutcomeListResponse {
	out := &OutcomeListResponse{
		Events: make([]*OutcomeEventResponse, 0, len(events)),
		Total:  len(events),
	}
	for _, e := range events {
		trail := e.Trail
		if trail == nil {
			trail = []string{}
		}
		out.Events = append(out.Events, &OutcomeEventResponse{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			RequestID: e.RequestID,
			Operation: string(e.Operation),
			Category:  string(e.Category()),
			Kind:      e.Kind,
			Status:    e.Status,
			Message:   e.Message,
			Trail:     trail,
		})
	}
	return out
}
