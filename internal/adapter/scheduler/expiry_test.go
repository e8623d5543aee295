package scheduler

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mesa-boost/internal/adapter/memory"
	"mesa-boost/internal/adapter/usecase"
	"mesa-boost/internal/core/domain"
	"mesa-boost/internal/core/port/mocks"
)

func boostEnding(id, profileID string, end time.Time) domain.Boost {
	start := end.Add(-time.Hour)
	return domain.Boost{
		ID: id, ProfileID: profileID, PackageID: "pkg", StartAt: start, EndAt: end,
		PurchasePrice: 500, Status: domain.StatusActive, LedgerRef: id + "#1", CreatedAt: start, UpdatedAt: start,
	}
}

func newExpirer(store *memory.Store, locker *mocks.MockLocker, events *mocks.MockEventPublisher, batch int) *Expirer {
	return NewExpirer(store, locker, events, usecase.NopMetrics{}, slog.New(slog.DiscardHandler),
		Config{Interval: time.Second, BatchSize: batch, LeaseTTL: time.Second})
}

func TestSweepExpiresDueBoosts(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	store.PutBoost(boostEnding("due-1", "p1", now.Add(-time.Second)))
	store.PutBoost(boostEnding("due-2", "p2", now.Add(-time.Hour)))
	store.PutBoost(boostEnding("due-3", "p3", now))
	store.PutBoost(boostEnding("live", "p4", now.Add(time.Second)))

	events := mocks.NewMockEventPublisher(t)
	events.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(ev domain.Event) bool { return ev.Type == domain.EventExpired })).
		Return(nil).Times(3)

	// batch of two forces a second round
	e := newExpirer(store, mocks.NewMockLocker(t), events, 2)
	n, err := e.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, id := range []string{"due-1", "due-2", "due-3"} {
		b, err := store.GetBoost(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusExpired, b.Status, id)
	}
	live, err := store.GetBoost(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, live.Status)

	// the end time is kept, not replaced by the sweep time
	b, err := store.GetBoost(context.Background(), "due-2")
	require.NoError(t, err)
	assert.True(t, b.EndAt.Equal(now.Add(-time.Hour)))

	// nothing left to do
	n, err = e.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweepSkipsCancelledBoost(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	b := boostEnding("b1", "p1", now.Add(-time.Minute))
	b.Status = domain.StatusCancelled
	store.PutBoost(b)

	e := newExpirer(store, mocks.NewMockLocker(t), mocks.NewMockEventPublisher(t), 10)
	n, err := e.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := store.GetBoost(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
}

func TestTickTakesLease(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	store.PutBoost(boostEnding("b1", "p1", now.Add(-time.Minute)))

	released := false
	locker := mocks.NewMockLocker(t)
	locker.EXPECT().TryAcquire(mock.Anything, LeaseName, time.Second).
		Return(func(context.Context) error { released = true; return nil }, true, nil).Once()
	events := mocks.NewMockEventPublisher(t)
	events.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	e := newExpirer(store, locker, events, 10)
	require.NoError(t, e.Tick(context.Background()))
	assert.True(t, released)

	got, err := store.GetBoost(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, got.Status)
}

func TestTickSkipsWhenLeaseHeld(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	store.PutBoost(boostEnding("b1", "p1", now.Add(-time.Minute)))

	locker := mocks.NewMockLocker(t)
	locker.EXPECT().TryAcquire(mock.Anything, LeaseName, time.Second).Return(nil, false, nil).Once()

	e := newExpirer(store, locker, mocks.NewMockEventPublisher(t), 10)
	require.NoError(t, e.Tick(context.Background()))

	got, err := store.GetBoost(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status)
}
