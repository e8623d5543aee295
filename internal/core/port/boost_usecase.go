package port

import (
	"context"
	"time"

	"mesa-boost/internal/core/domain"
)

// BoostUseCase defines the operations exposed by the admission engine to
// the HTTP layer. Mock implementations can be generated from this
// interface for testing.
type BoostUseCase interface {
	// Eligibility runs the advisory eligibility check. The answer may be
	// stale by the time a purchase executes; Purchase re-checks it
	// atomically.
	Eligibility(ctx context.Context, profileID string) (*domain.Eligibility, error)

	// Purchase buys a boost package for a profile. Repeating a call with
	// the same idempotency key returns the same boost or the same error
	// and charges the ledger at most once.
	Purchase(ctx context.Context, req PurchaseReq) (*domain.Boost, error)

	// Cancel terminates the profile's active boost immediately. It returns
	// domain.ErrNoActiveBoost when there is nothing to cancel.
	Cancel(ctx context.Context, profileID string) error

	// Status describes the profile's current boost.
	Status(ctx context.Context, profileID string) (*StatusResp, error)

	// History returns one page of the profile's boosts, newest first.
	History(ctx context.Context, req HistoryReq) (*HistoryResp, error)

	// Packages lists the boost catalog.
	Packages(ctx context.Context) ([]domain.Package, error)
}

// RankingUseCase is the read path used by listing surfaces.
type RankingUseCase interface {
	RankForListing(ctx context.Context, lc domain.ListingContext) ([]domain.RankedProfile, error)
}

type PurchaseReq struct {
	ProfileID      string `json:"profile_id" validate:"required,max=64"`
	PackageID      string `json:"package_id" validate:"required,max=64"`
	IdempotencyKey string `json:"idempotency_key" validate:"required,max=128"`
}

// StatusResp is the current boost state of a profile. When IsActive is
// false the remaining fields are zero.
type StatusResp struct {
	IsActive         bool       `json:"is_active"`
	BoostID          string     `json:"boost_id,omitempty"`
	Package          string     `json:"package,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	RemainingSeconds int64      `json:"remaining_seconds"`
	ProgressPercent  float64    `json:"progress_percent"`
}

type HistoryReq struct {
	ProfileID string
	Page      int
	PageSize  int
}

type HistoryResp struct {
	Items    []domain.Boost `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int            `json:"total"`
}
