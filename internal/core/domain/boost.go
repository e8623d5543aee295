package domain

import "time"

// Status is the lifecycle state of a boost row. Active is the only
// non-terminal state; once a boost is Cancelled or Expired the row is never
// written again.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Terminal reports whether no transition may leave s.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

// Boost is one purchased, time-boxed visibility elevation. Package terms
// and the pricing inputs are copied into the row at purchase time so the
// record stays auditable after catalog or profile changes.
// Prices are stored in integer minor units (e.g. cents).
type Boost struct {
	ID             string        `json:"id"`
	ProfileID      string        `json:"profile_id"`
	PackageID      string        `json:"package_id"`
	PackageName    string        `json:"package_name"`
	Duration       time.Duration `json:"-"`
	StartAt        time.Time     `json:"start_at"`
	EndAt          time.Time     `json:"end_at"`
	PurchasePrice  int64         `json:"purchase_price"`
	Pricing        PriceQuote    `json:"pricing"`
	Status         Status        `json:"status"`
	IdempotencyKey string        `json:"-"`
	LedgerRef      string        `json:"ledger_ref"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Remaining returns the time left until EndAt, or zero once it has passed.
func (b *Boost) Remaining(now time.Time) time.Duration {
	if d := b.EndAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// LiveAt reports whether the boost should be treated as active at now. A row
// still persisted as active but past its end time is not live; the expiry
// sweep may lag behind by up to one tick.
func (b *Boost) LiveAt(now time.Time) bool {
	return b.Status == StatusActive && b.Remaining(now) > 0
}

// Progress returns elapsed share of the boost window in percent, in [0,100].
func (b *Boost) Progress(now time.Time) float64 {
	total := b.EndAt.Sub(b.StartAt)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(b.StartAt)
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= total:
		return 100
	}
	return float64(elapsed) / float64(total) * 100
}
