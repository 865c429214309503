package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	audit "bankapi/pkg/platform/audit"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Store publishes audit events to a Kafka topic. Records are keyed by
// operation so events for one workflow stay ordered within a partition.
type Store struct {
	client *kgo.Client
	topic  string
}

func New(client *kgo.Client, topic string) *Store {
	return &Store{client: client, topic: topic}
}

// Payload is the JSON structure published to Kafka.
type Payload struct {
	ID        string   `json:"id"`
	Category  string   `json:"category"`
	Timestamp string   `json:"timestamp"`
	RequestID string   `json:"request_id,omitempty"`
	Operation string   `json:"operation"`
	Kind      string   `json:"kind"`
	Status    int      `json:"status"`
	Message   string   `json:"message,omitempty"`
	Trail     []string `json:"trail"`
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	body, err := json.Marshal(Encode(event))
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	rec := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Operation),
		Value: body,
		Headers: []kgo.RecordHeader{
			{Key: "category", Value: []byte(event.Category())},
		},
	}
	if err := s.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Encode converts an event to its wire representation.
func Encode(event audit.Event) Payload {
	trail := event.Trail
	if trail == nil {
		trail = []string{}
	}
	return Payload{
		ID:        event.ID.String(),
		Category:  string(event.Category()),
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
		RequestID: event.RequestID,
		Operation: string(event.Operation),
		Kind:      event.Kind,
		Status:    event.Status,
		Message:   event.Message,
		Trail:     trail,
	}
}
