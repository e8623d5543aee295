package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-boost/internal/adapter/memory"
	"mesa-boost/internal/core/domain"
	"mesa-boost/internal/core/port/mocks"
)

func newRanking(t *testing.T, store *memory.Store, ttl time.Duration) *RankingUseCase {
	t.Helper()
	u, err := NewRankingUseCase(store, store, nil, nil, RankingOptions{CacheSize: 16, CacheTTL: ttl, DefaultLimit: 50})
	require.NoError(t, err)
	return u
}

func liveBoost(id, profileID string, price int64, start, end time.Time) domain.Boost {
	return domain.Boost{
		ID: id, ProfileID: profileID, PackageID: "pkg", StartAt: start, EndAt: end,
		PurchasePrice: price, Status: domain.StatusActive, CreatedAt: start, UpdatedAt: start,
	}
}

func profileIDs(ranked []domain.RankedProfile) []string {
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ProfileID
	}
	return ids
}

func seedListing(store *memory.Store) {
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		store.PutProfile(domain.Profile{
			ID: id, Completeness: 90, Category: "tutors", Region: "north",
			ListingScore: float64(100 - i),
		})
	}
	store.PutProfile(domain.Profile{ID: "elsewhere", Category: "tutors", Region: "south", ListingScore: 1000})
}

func TestRankBoostedFirst(t *testing.T) {
	store := memory.NewStore()
	seedListing(store)
	now := time.Now().UTC()
	store.PutBoost(liveBoost("b1", "d", 5000, now.Add(-2*time.Hour), now.Add(time.Hour)))
	store.PutBoost(liveBoost("b2", "e", 9000, now.Add(-time.Hour), now.Add(time.Hour)))
	store.PutBoost(liveBoost("b3", "c", 5000, now.Add(-3*time.Hour), now.Add(time.Hour)))
	store.PutBoost(liveBoost("b4", "elsewhere", 99999, now.Add(-time.Hour), now.Add(time.Hour)))

	u := newRanking(t, store, 0)
	ranked, err := u.RankForListing(context.Background(), domain.ListingContext{Category: "tutors", Region: "north"})
	require.NoError(t, err)

	// price desc, then earlier start first
	assert.Equal(t, []string{"e", "c", "d", "a", "b"}, profileIDs(ranked))
	assert.True(t, ranked[0].Boosted)
	assert.Equal(t, "b2", ranked[0].BoostID)
	assert.InDelta(t, 3600, ranked[0].RemainingSeconds, 2)
	assert.False(t, ranked[3].Boosted)
}

// TestRankExcludesLapsedBoost covers a row still marked active whose end
// time has just passed: it must not be ranked as boosted.
func TestRankExcludesLapsedBoost(t *testing.T) {
	store := memory.NewStore()
	seedListing(store)
	now := time.Now().UTC()
	store.PutBoost(liveBoost("gone", "e", 9000, now.Add(-time.Hour), now.Add(-time.Second)))

	u := newRanking(t, store, 0)
	ranked, err := u.RankForListing(context.Background(), domain.ListingContext{Category: "tutors", Region: "north"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, profileIDs(ranked))
	for _, r := range ranked {
		assert.False(t, r.Boosted, r.ProfileID)
	}
}

func TestRankCandidates(t *testing.T) {
	store := memory.NewStore()
	seedListing(store)
	now := time.Now().UTC()
	store.PutBoost(liveBoost("b1", "c", 5000, now.Add(-time.Hour), now.Add(time.Hour)))
	store.PutBoost(liveBoost("b2", "e", 9000, now.Add(-time.Hour), now.Add(time.Hour)))

	u := newRanking(t, store, 0)
	ranked, err := u.RankForListing(context.Background(), domain.ListingContext{
		Category:   "tutors",
		Region:     "north",
		Candidates: []string{"b", "c", "a"},
		Limit:      2,
	})
	require.NoError(t, err)

	// e is boosted but not a candidate
	assert.Equal(t, []string{"c", "b"}, profileIDs(ranked))
}

func TestRankCandidatesSkipsBaselineRead(t *testing.T) {
	store := memory.NewStore()
	seedListing(store)
	now := time.Now().UTC()
	store.PutBoost(liveBoost("b1", "c", 5000, now.Add(-time.Hour), now.Add(time.Hour)))

	// no expectations: a ListProfiles call fails the test
	profiles := mocks.NewMockProfileReader(t)
	u, err := NewRankingUseCase(store, profiles, nil, nil, RankingOptions{CacheTTL: time.Minute})
	require.NoError(t, err)

	lc := domain.ListingContext{Category: "tutors", Region: "north", Candidates: []string{"a", "c"}}
	for i := 0; i < 2; i++ {
		ranked, err := u.RankForListing(context.Background(), lc)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, profileIDs(ranked))
	}
}

func TestRankSkipsSuspendedBoostedProfile(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	store.PutProfile(domain.Profile{ID: "ok", Category: "tutors", ListingScore: 10})
	store.PutProfile(domain.Profile{ID: "banned", Category: "tutors", ListingScore: 50, Suspended: true})
	store.PutBoost(liveBoost("b1", "banned", 9000, now.Add(-time.Hour), now.Add(time.Hour)))

	ranked, err := newRanking(t, store, 0).RankForListing(context.Background(), domain.ListingContext{Category: "tutors"})
	require.NoError(t, err)
	assert.Equal(t, []domain.RankedProfile{{ProfileID: "ok"}}, ranked)
}

func TestRankCacheKeepsExpiryFresh(t *testing.T) {
	store := memory.NewStore()
	seedListing(store)
	now := time.Now().UTC()
	store.PutBoost(liveBoost("b1", "e", 9000, now.Add(-time.Hour), now.Add(time.Minute)))

	u := newRanking(t, store, time.Hour)
	clock := now
	u.now = func() time.Time { return clock }

	ctx := context.Background()
	lc := domain.ListingContext{Category: "tutors", Region: "north"}
	ranked, err := u.RankForListing(ctx, lc)
	require.NoError(t, err)
	assert.Equal(t, "e", ranked[0].ProfileID)

	// a new boost is not visible until the entry is refreshed
	store.PutBoost(liveBoost("b2", "a", 20000, now, now.Add(time.Hour)))
	ranked, err = u.RankForListing(ctx, lc)
	require.NoError(t, err)
	assert.Equal(t, "e", ranked[0].ProfileID)

	// but a cached boost drops out as soon as it ends
	clock = now.Add(2 * time.Minute)
	ranked, err = u.RankForListing(ctx, lc)
	require.NoError(t, err)
	assert.False(t, ranked[0].Boosted)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, profileIDs(ranked))
}
