package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"mesa-boost/internal/core/domain"
	"mesa-boost/internal/core/port"
)

// RankingOptions configures the ranking read path.
type RankingOptions struct {
	CacheSize    int
	CacheTTL     time.Duration
	DefaultLimit int
}

// RankingUseCase orders profiles for listing surfaces: live boosts first,
// then the baseline relevance order.
type RankingUseCase struct {
	repo     port.BoostRepository
	profiles port.ProfileReader
	metrics  port.Metrics
	logger   *slog.Logger
	opts     RankingOptions
	cache    *lru.Cache
	now      func() time.Time
}

type cachedListing struct {
	boosts    []domain.Boost
	baseline  []string
	fetchedAt time.Time
}

// NewRankingUseCase creates the ranking service. A CacheTTL of zero
// disables caching.
func NewRankingUseCase(repo port.BoostRepository, profiles port.ProfileReader, metrics port.Metrics, logger *slog.Logger, opts RankingOptions) (*RankingUseCase, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1024
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 100
	}
	cache, err := lru.New(opts.CacheSize)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RankingUseCase{
		repo:     repo,
		profiles: profiles,
		metrics:  metrics,
		logger:   logger,
		opts:     opts,
		cache:    cache,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// RankForListing returns the ordered profiles for lc. Boosted profiles
// rank by purchase price (higher first), then by start time (earlier
// first) so cancelling and re-buying never jumps the queue, then by boost
// id for a total order. Boost end times are checked against the current
// time on every call, cached or not.
func (u *RankingUseCase) RankForListing(ctx context.Context, lc domain.ListingContext) ([]domain.RankedProfile, error) {
	limit := lc.Limit
	if limit <= 0 {
		limit = u.opts.DefaultLimit
	}
	listing, err := u.load(ctx, lc.Category, lc.Region, limit, len(lc.Candidates) == 0)
	if err != nil {
		return nil, err
	}

	baseline := lc.Candidates
	if len(baseline) == 0 {
		baseline = listing.baseline
	}
	inBaseline := make(map[string]struct{}, len(baseline))
	for _, id := range baseline {
		inBaseline[id] = struct{}{}
	}

	now := u.now()
	live := make([]domain.Boost, 0, len(listing.boosts))
	for _, b := range listing.boosts {
		if !b.LiveAt(now) {
			continue
		}
		if len(lc.Candidates) > 0 {
			if _, ok := inBaseline[b.ProfileID]; !ok {
				continue
			}
		}
		live = append(live, b)
	}
	sort.Slice(live, func(i, j int) bool {
		a, b := live[i], live[j]
		if a.PurchasePrice != b.PurchasePrice {
			return a.PurchasePrice > b.PurchasePrice
		}
		if !a.StartAt.Equal(b.StartAt) {
			return a.StartAt.Before(b.StartAt)
		}
		return a.ID < b.ID
	})

	out := make([]domain.RankedProfile, 0, min(limit, len(live)+len(baseline)))
	seen := make(map[string]struct{}, len(live))
	for _, b := range live {
		if len(out) == limit {
			return out, nil
		}
		if _, dup := seen[b.ProfileID]; dup {
			// two live rows for one profile break the storage constraint
			u.logger.Error("multiple active boosts for profile", slog.String("profile_id", b.ProfileID))
			continue
		}
		seen[b.ProfileID] = struct{}{}
		out = append(out, domain.RankedProfile{
			ProfileID:        b.ProfileID,
			Boosted:          true,
			BoostID:          b.ID,
			RemainingSeconds: int64(b.Remaining(now) / time.Second),
		})
	}
	for _, id := range baseline {
		if len(out) == limit {
			break
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, domain.RankedProfile{ProfileID: id})
	}
	return out, nil
}

// load fetches the live boosts of a listing and, when withBaseline is set,
// its baseline order.
func (u *RankingUseCase) load(ctx context.Context, category, region string, limit int, withBaseline bool) (*cachedListing, error) {
	key := fmt.Sprintf("%s\x00%s\x00live", category, region)
	if withBaseline {
		key = fmt.Sprintf("%s\x00%s\x00%d", category, region, limit)
	}
	if u.opts.CacheTTL > 0 {
		if v, ok := u.cache.Get(key); ok {
			cl := v.(*cachedListing)
			if u.now().Sub(cl.fetchedAt) < u.opts.CacheTTL {
				u.metrics.RankingCache(true)
				return cl, nil
			}
		}
		u.metrics.RankingCache(false)
	}

	now := u.now()
	boosts, err := u.repo.ListLive(ctx, category, region, now)
	if err != nil {
		return nil, fmt.Errorf("list live boosts: %w", err)
	}
	var baseline []string
	if withBaseline {
		baseline, err = u.profiles.ListProfiles(ctx, category, region, limit)
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
	}
	cl := &cachedListing{boosts: boosts, baseline: baseline, fetchedAt: now}
	if u.opts.CacheTTL > 0 {
		u.cache.Add(key, cl)
	}
	return cl, nil
}
