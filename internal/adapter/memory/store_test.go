package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-boost/internal/core/domain"
	"mesa-boost/internal/core/port"
)

func activeBoost(id, profileID string, start time.Time) *domain.Boost {
	return &domain.Boost{
		ID: id, ProfileID: profileID, StartAt: start, EndAt: start.Add(time.Hour),
		PurchasePrice: 100, Status: domain.StatusActive, CreatedAt: start, UpdatedAt: start,
	}
}

func TestSecondActiveBoostConflicts(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.InProfileTx(ctx, "p1", func(ctx context.Context, tx port.BoostTx) error {
		return tx.InsertBoost(ctx, activeBoost("b1", "p1", now))
	}))
	err := s.InProfileTx(ctx, "p1", func(ctx context.Context, tx port.BoostTx) error {
		return tx.InsertBoost(ctx, activeBoost("b2", "p1", now))
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentPurchaseConflict)

	// another profile is unaffected
	require.NoError(t, s.InProfileTx(ctx, "p2", func(ctx context.Context, tx port.BoostTx) error {
		return tx.InsertBoost(ctx, activeBoost("b3", "p2", now))
	}))
}

func TestTerminateThenInsertInOneTx(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()
	s.PutBoost(*activeBoost("old", "p1", now.Add(-time.Minute)))

	require.NoError(t, s.InProfileTx(ctx, "p1", func(ctx context.Context, tx port.BoostTx) error {
		ok, err := tx.Terminate(ctx, "old", domain.StatusCancelled, now)
		if err != nil || !ok {
			return errors.New("terminate failed")
		}
		return tx.InsertBoost(ctx, activeBoost("new", "p1", now))
	}))

	active, err := s.ActiveBoost(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "new", active.ID)

	old, err := s.GetBoost(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, old.Status)
	assert.True(t, old.EndAt.Equal(now))
}

func TestFailedTxDiscardsWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()
	s.PutBoost(*activeBoost("b1", "p1", now))
	boom := errors.New("boom")

	err := s.InProfileTx(ctx, "p1", func(ctx context.Context, tx port.BoostTx) error {
		if _, err := tx.Terminate(ctx, "b1", domain.StatusCancelled, now); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	s.CommitHook = func(string) error { return domain.ErrConcurrentPurchaseConflict }
	err = s.InProfileTx(ctx, "p1", func(ctx context.Context, tx port.BoostTx) error {
		_, err := tx.Terminate(ctx, "b1", domain.StatusExpired, now)
		return err
	})
	require.ErrorIs(t, err, domain.ErrConcurrentPurchaseConflict)

	b, err := s.GetBoost(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, b.Status)
}

func TestTerminateIsGuarded(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()
	b := activeBoost("b1", "p1", now)
	b.Status = domain.StatusExpired
	s.PutBoost(*b)

	require.NoError(t, s.InProfileTx(ctx, "p1", func(ctx context.Context, tx port.BoostTx) error {
		ok, err := tx.Terminate(ctx, "b1", domain.StatusCancelled, now)
		assert.False(t, ok, "terminal rows never transition again")
		if err != nil {
			return err
		}
		_, err = tx.Terminate(ctx, "b1", domain.StatusActive, now)
		assert.Error(t, err)
		return nil
	}))
}

func TestClaimPurchase(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	rec, created, err := s.ClaimPurchase(ctx, "k", "p1", "pkg", time.Time{})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, rec.Attempt)

	_, created, err = s.ClaimPurchase(ctx, "k", "p1", "pkg", time.Time{})
	require.NoError(t, err)
	assert.False(t, created, "pending key is owned by the first caller")

	require.NoError(t, s.ReleasePurchase(ctx, "k"))
	rec, created, err = s.ClaimPurchase(ctx, "k", "p1", "pkg", time.Time{})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, rec.Attempt)

	require.NoError(t, s.FailPurchase(ctx, "k", domain.CodeConflict, ""))
	rec, created, err = s.ClaimPurchase(ctx, "k", "p1", "pkg", time.Time{})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, domain.PurchaseCompleted, rec.State)
	assert.Equal(t, domain.CodeConflict, rec.ErrorCode)
}

func TestClaimAbandonedPurchase(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	rec, created, err := s.ClaimPurchase(ctx, "k", "p1", "pkg", time.Time{})
	require.NoError(t, err)
	require.True(t, created)
	require.NoError(t, s.RecordCharge(ctx, "k", rec.Attempt, "k#1", 900))

	_, created, err = s.ClaimPurchase(ctx, "k", "p1", "pkg", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, created, "recent pending key is still owned")

	_, created, err = s.ClaimPurchase(ctx, "k", "p2", "pkg", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, created, "other profile cannot take the key")

	rec, created, err = s.ClaimPurchase(ctx, "k", "p1", "pkg", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, rec.Attempt)
	assert.Equal(t, "k#1", rec.ChargeRef)
	assert.Equal(t, int64(900), rec.Charge)

	assert.Error(t, s.RecordCharge(ctx, "k", 1, "k#1", 900), "superseded attempt")
	require.NoError(t, s.RecordCharge(ctx, "k", 2, "k#2", 950))
}

func TestListLiveSkipsSuspended(t *testing.T) {
	s := NewStore()
	now := time.Now().UTC()
	s.PutProfile(domain.Profile{ID: "ok", Category: "c"})
	s.PutProfile(domain.Profile{ID: "banned", Category: "c", Suspended: true})
	for _, id := range []string{"ok", "banned"} {
		s.PutBoost(domain.Boost{ID: "b-" + id, ProfileID: id, Status: domain.StatusActive,
			StartAt: now.Add(-time.Minute), EndAt: now.Add(time.Hour)})
	}

	live, err := s.ListLive(context.Background(), "c", "", now)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, "ok", live[0].ProfileID)
}

func TestListProfilesOrder(t *testing.T) {
	s := NewStore()
	s.PutProfile(domain.Profile{ID: "b", Category: "c", ListingScore: 5})
	s.PutProfile(domain.Profile{ID: "a", Category: "c", ListingScore: 5})
	s.PutProfile(domain.Profile{ID: "z", Category: "c", ListingScore: 9})
	s.PutProfile(domain.Profile{ID: "x", Category: "c", ListingScore: 99, Suspended: true})
	s.PutProfile(domain.Profile{ID: "y", Category: "other", ListingScore: 99})

	ids, err := s.ListProfiles(context.Background(), "c", "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "b"}, ids)
}
