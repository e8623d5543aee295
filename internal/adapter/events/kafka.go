package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"mesa-boost/internal/core/domain"
)

// NewSaramaConfig returns producer settings for lifecycle events: every
// in-sync replica acknowledges, and sends are idempotent.
func NewSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_3_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	// idempotent producers require a single in-flight request
	cfg.Net.MaxOpenRequests = 1
	return cfg
}

// Kafka publishes events as JSON to a single topic keyed by profile id,
// so a consumer sees one profile's events in order.
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

func NewKafka(producer sarama.SyncProducer, topic string, logger *slog.Logger) *Kafka {
	return &Kafka{producer: producer, topic: topic, logger: logger}
}

// Dial connects a synchronous producer to brokers.
func Dial(brokers []string, topic string, logger *slog.Logger) (*Kafka, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewKafka(producer, topic, logger), nil
}

// Publish implements port.EventPublisher.
func (k *Kafka) Publish(ctx context.Context, ev domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}
	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(ev.ProfileID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(ev.Type)},
		},
		Timestamp: ev.OccurredAt,
	}
	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Type, err)
	}
	k.logger.Debug("event published",
		slog.String("type", string(ev.Type)),
		slog.String("profile_id", ev.ProfileID),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset))
	return nil
}

func (k *Kafka) Close() error {
	return k.producer.Close()
}
