package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	audit "bankapi/pkg/platform/audit"
)

// Decode parses a record value produced by Append.
func Decode(value []byte) (audit.Event, error) {
	var p Payload
	if err := json.Unmarshal(value, &p); err != nil {
		return audit.Event{}, fmt.Errorf("unmarshal audit payload: %w", err)
	}
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return audit.Event{}, fmt.Errorf("parse audit event id: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, p.Timestamp)
	if err != nil {
		return audit.Event{}, fmt.Errorf("parse audit timestamp: %w", err)
	}
	return audit.Event{
		ID:        id,
		Timestamp: ts,
		RequestID: p.RequestID,
		Operation: audit.Operation(p.Operation),
		Kind:      p.Kind,
		Status:    p.Status,
		Message:   p.Message,
		Trail:     p.Trail,
	}, nil
}
