package port

import (
	"context"
	"time"

	"mesa-boost/internal/core/domain"
)

// BoostRepository is the Boost Store. It is the only shared mutable state
// of the engine and the owner of the one-active-boost-per-profile
// constraint. Implementations must be safe for concurrent use.
type BoostRepository interface {
	// InProfileTx runs fn inside a transaction that holds an exclusive lock
	// on the profile's boost slot. Calls for the same profile are totally
	// ordered; calls for different profiles do not block each other. If fn
	// returns an error the transaction is rolled back and that error is
	// returned unchanged. Commit failures caused by a concurrent writer are
	// reported as domain.ErrConcurrentPurchaseConflict.
	InProfileTx(ctx context.Context, profileID string, fn func(ctx context.Context, tx BoostTx) error) error

	// ClaimPurchase registers an idempotency key. created is true when the
	// caller now owns the key: a new record, a released one, or a pending
	// one last touched before staleBefore whose owner is gone. A claimed
	// existing record has Attempt incremented and keeps its ChargeRef.
	// Otherwise the existing record is returned untouched.
	ClaimPurchase(ctx context.Context, key, profileID, packageID string, staleBefore time.Time) (rec *domain.PurchaseRecord, created bool, err error)
	// RecordCharge notes the debit the pending attempt is about to make.
	RecordCharge(ctx context.Context, key string, attempt int, ref string, amount int64) error
	// GetPurchase returns the record for key or nil when unknown.
	GetPurchase(ctx context.Context, key string) (*domain.PurchaseRecord, error)
	// FailPurchase completes a pending record with a terminal error code.
	FailPurchase(ctx context.Context, key, code, reason string) error
	// ReleasePurchase gives a pending key back so a retry re-executes.
	ReleasePurchase(ctx context.Context, key string) error

	// GetBoost returns a boost by id or nil when unknown.
	GetBoost(ctx context.Context, id string) (*domain.Boost, error)
	// ActiveBoost returns the profile's active row, or nil.
	ActiveBoost(ctx context.Context, profileID string) (*domain.Boost, error)
	// CountPurchasesSince counts boosts bought by the profile after since,
	// whatever their current status.
	CountPurchasesSince(ctx context.Context, profileID string, since time.Time) (int, error)
	// History returns the profile's boosts newest first and the total count.
	History(ctx context.Context, profileID string, offset, limit int) ([]domain.Boost, int, error)
	// ListDue returns up to limit active boosts whose EndAt is not after now.
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Boost, error)
	// ListLive returns boosts that are active and not yet ended at now for
	// unsuspended profiles matching the listing category and region (empty
	// matches all).
	ListLive(ctx context.Context, category, region string, now time.Time) ([]domain.Boost, error)
}

// BoostTx is the view of the store available inside InProfileTx. All
// methods act on the locked profile.
type BoostTx interface {
	ActiveBoost(ctx context.Context) (*domain.Boost, error)
	CountPurchasesSince(ctx context.Context, since time.Time) (int, error)
	// InsertBoost stores a new boost row. Violating the one-active-boost
	// constraint yields domain.ErrConcurrentPurchaseConflict.
	InsertBoost(ctx context.Context, b *domain.Boost) error
	// Terminate moves the given active boost to a terminal status. It
	// reports false without error when the row is not active anymore.
	Terminate(ctx context.Context, boostID string, status domain.Status, endAt time.Time) (bool, error)
	// CompletePurchase marks the idempotency key as completed with boostID.
	CompletePurchase(ctx context.Context, key, boostID string) error
}
