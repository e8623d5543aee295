package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientBalance        = errors.New("insufficient balance")
	ErrConcurrentPurchaseConflict = errors.New("concurrent purchase conflict")
	ErrTimeout                    = errors.New("operation timed out")
	ErrNoActiveBoost              = errors.New("no active boost")
	ErrPackageNotFound            = errors.New("package not found")
	ErrProfileNotFound            = errors.New("profile not found")
	ErrIdempotencyKeyReused       = errors.New("idempotency key reused with different request")
	ErrInvalidRequest             = errors.New("invalid request")
)

// IneligibleError is returned when a purchase fails an eligibility check.
// Reason is one of the Reason* constants and is safe to show to users.
type IneligibleError struct {
	Reason string
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("ineligible: %s", e.Reason)
}

// Error codes persisted with completed purchase records so a replay
// returns the same typed error.
const (
	CodeIneligible          = "ineligible"
	CodeInsufficientBalance = "insufficient_balance"
	CodeConflict            = "conflict"
	CodePackageNotFound     = "package_not_found"
	CodeProfileNotFound     = "profile_not_found"
)

// ErrorCode maps a terminal purchase error to its persisted code and
// reason. ok is false for errors that must not be recorded (timeouts,
// internal failures and a boost waiting for expiry), which leaves the key
// free for a retry.
func ErrorCode(err error) (code, reason string, ok bool) {
	var ie *IneligibleError
	switch {
	case errors.As(err, &ie) && ie.Reason == ReasonBoostEnding:
		return "", "", false
	case errors.As(err, &ie):
		return CodeIneligible, ie.Reason, true
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance, "", true
	case errors.Is(err, ErrConcurrentPurchaseConflict):
		return CodeConflict, "", true
	case errors.Is(err, ErrPackageNotFound):
		return CodePackageNotFound, "", true
	case errors.Is(err, ErrProfileNotFound):
		return CodeProfileNotFound, "", true
	}
	return "", "", false
}

// ErrorFromCode is the inverse of ErrorCode.
func ErrorFromCode(code, reason string) error {
	switch code {
	case CodeIneligible:
		return &IneligibleError{Reason: reason}
	case CodeInsufficientBalance:
		return ErrInsufficientBalance
	case CodeConflict:
		return ErrConcurrentPurchaseConflict
	case CodePackageNotFound:
		return ErrPackageNotFound
	case CodeProfileNotFound:
		return ErrProfileNotFound
	}
	return fmt.Errorf("unknown purchase error code %q", code)
}
