package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-boost/internal/core/domain"
)

func TestKafkaPublish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()

	ev := domain.Event{
		Type:       domain.EventPurchased,
		BoostID:    "b1",
		ProfileID:  "p1",
		PackageID:  "boost-72h",
		Amount:     9234,
		LedgerRef:  "k#1",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got domain.Event
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Type != ev.Type || got.BoostID != ev.BoostID || got.Amount != ev.Amount ||
			got.LedgerRef != ev.LedgerRef || !got.OccurredAt.Equal(ev.OccurredAt) {
			return errors.New("event mismatch")
		}
		return nil
	})

	k := NewKafka(producer, "boost.events", slog.New(slog.DiscardHandler))
	require.NoError(t, k.Publish(context.Background(), ev))
}

func TestKafkaPublishError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { _ = producer.Close() }()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	k := NewKafka(producer, "boost.events", slog.New(slog.DiscardHandler))
	err := k.Publish(context.Background(), domain.Event{Type: domain.EventExpired, ProfileID: "p1"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}
