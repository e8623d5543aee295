package domain

import (
	"time"
)

// EventType names a boost lifecycle event.
type EventType string

const (
	EventPurchased   EventType = "boost.purchased"
	EventCancelled   EventType = "boost.cancelled"
	EventExpired     EventType = "boost.expired"
	EventCompensated EventType = "boost.compensated"
)

// Event is published after a lifecycle transition commits. Ledger
// consumers use cancelled events to apply refund policy.
type Event struct {
	Type             EventType `json:"type"`
	BoostID          string    `json:"boost_id,omitempty"`
	ProfileID        string    `json:"profile_id"`
	PackageID        string    `json:"package_id"`
	Amount           int64     `json:"amount"`
	LedgerRef        string    `json:"ledger_ref,omitempty"`
	RemainingSeconds int64     `json:"remaining_seconds,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}
