package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink publishes audit events to a Kafka topic for downstream
// consumers. Publishing is asynchronous and fail-open: a broker outage is
// logged and never blocks or fails the workflow operation that emitted the
// event.
type KafkaSink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafkaSink connects a producer to the given brokers.
func NewKafkaSink(brokers []string, topic string, logger *slog.Logger) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaSink{client: client, topic: topic, logger: logger}, nil
}

// Publish produces the event keyed by application ID so per-application
// ordering survives partitioning.
func (s *KafkaSink) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("encode audit event", "error", err, "action", event.Action)
		return
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.ApplicationID.String()),
		Value: payload,
	}
	s.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			s.logger.Error("publish audit event",
				"error", err,
				"action", event.Action,
				"application_id", event.ApplicationID.String(),
			)
		}
	})
}

// Close flushes pending records and releases the producer.
func (s *KafkaSink) Close() {
	s.client.Close()
}
