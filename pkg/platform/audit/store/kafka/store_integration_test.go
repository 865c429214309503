//go:build integration

package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"bankapi/internal/platform/config"
	platformkafka "bankapi/internal/platform/kafka"
	audit "bankapi/pkg/platform/audit"
	"bankapi/pkg/platform/audit/store/kafka"
	"bankapi/pkg/testutil/containers"
)

type KafkaStoreSuite struct {
	suite.Suite
	broker *containers.RedpandaContainer
	client *kgo.Client
}

func TestKafkaStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	s.broker = containers.GetManager().GetRedpanda(s.T())
	client, err := platformkafka.New(context.Background(), config.KafkaConfig{Brokers: s.broker.Brokers})
	s.Require().NoError(err)
	s.client = client
}

func (s *KafkaStoreSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *KafkaStoreSuite) TestEnsureTopicIsIdempotent() {
	ctx := context.Background()
	topic := "bankapi.test." + uuid.NewString()

	s.Require().NoError(platformkafka.EnsureTopic(ctx, s.client, topic, 1))
	s.Require().NoError(platformkafka.EnsureTopic(ctx, s.client, topic, 1))
}

func (s *KafkaStoreSuite) TestAppendPublishesDecodableRecord() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "bankapi.test." + uuid.NewString()
	s.Require().NoError(platformkafka.EnsureTopic(ctx, s.client, topic, 1))

	event := audit.Event{
		ID:        uuid.New(),
		Timestamp: time.Date(2025, 7, 1, 8, 30, 0, 0, time.UTC),
		RequestID: "req-1",
		Operation: audit.OperationTransfer,
		Kind:      "success",
		Status:    200,
		Trail:     []string{"PRE_VALIDATION", "AMOUNT_VALIDATION", "TRANSFER_COMPLETED", "RESULT_SUCCESS"},
	}
	s.Require().NoError(kafka.New(s.client, topic).Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	var record *kgo.Record
	for record == nil {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "no record before deadline")
		fetches.EachRecord(func(r *kgo.Record) {
			if record == nil {
				record = r
			}
		})
	}

	s.Equal("transfer", string(record.Key))
	s.Require().Len(record.Headers, 1)
	s.Equal("compliance", string(record.Headers[0].Value))

	decoded, err := kafka.Decode(record.Value)
	s.Require().NoError(err)
	s.Equal(event.ID, decoded.ID)
	s.Equal(event.Trail, decoded.Trail)
	s.True(event.Timestamp.Equal(decoded.Timestamp))
}
