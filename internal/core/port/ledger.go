package port

import "context"

// Ledger is the external balance ledger. Both calls are idempotent on their
// reference: repeating a debit with the same ref charges once, and a credit
// for the same reversal ref is applied once. Debit returns
// domain.ErrInsufficientBalance when funds are short.
type Ledger interface {
	Debit(ctx context.Context, profileID string, amount int64, ref string) error
	Credit(ctx context.Context, profileID string, amount int64, reversalOf string) error
}
