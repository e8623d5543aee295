package port

import (
	"context"
	"time"

	"mesa-boost/internal/core/domain"
)

// EventPublisher delivers boost lifecycle events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

// Locker provides a named lease shared by replicas. TryAcquire returns
// ok=false without error when another holder owns the lease.
type Locker interface {
	TryAcquire(ctx context.Context, name string, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}

// Metrics records engine measurements.
type Metrics interface {
	PurchaseOutcome(outcome string)
	PurchasePrice(packageID string, price int64)
	Compensation()
	Cancelled()
	Expired(n int)
	SweepDuration(d time.Duration)
	SweepFailure()
	RankingCache(hit bool)
}
