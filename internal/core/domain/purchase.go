package domain

import "time"

// PurchaseState is the state of an idempotency claim.
type PurchaseState string

const (
	PurchasePending   PurchaseState = "pending"
	PurchaseCompleted PurchaseState = "completed"
	PurchaseReleased  PurchaseState = "released"
)

// PurchaseRecord tracks one idempotency key. A completed record replays
// either the boost it produced or the error code it failed with. Attempt
// increases every time a released key is claimed again and is part of the
// ledger reference, so a re-executed purchase never collides with an
// earlier debit. ChargeRef and Charge name the last debit an attempt was
// about to make; a later attempt reverses it before charging again.
type PurchaseRecord struct {
	Key       string
	ProfileID string
	PackageID string
	State     PurchaseState
	Attempt   int
	BoostID   string
	ErrorCode string
	Reason    string
	ChargeRef string
	Charge    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
