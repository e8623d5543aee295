package memory

import (
	"context"
	"fmt"
	"sync"

	"mesa-boost/internal/core/domain"
)

// Entry is one applied ledger movement.
type Entry struct {
	Ref        string
	ProfileID  string
	Amount     int64
	ReversalOf string
}

// Ledger is an idempotent in-memory wallet ledger.
type Ledger struct {
	mu       sync.Mutex
	balances map[string]int64
	debits   map[string]Entry
	credits  map[string]Entry
}

func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[string]int64),
		debits:   make(map[string]Entry),
		credits:  make(map[string]Entry),
	}
}

// Fund sets a wallet balance.
func (l *Ledger) Fund(profileID string, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[profileID] = amount
}

func (l *Ledger) Balance(profileID string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[profileID]
}

// Debits returns every applied debit.
func (l *Ledger) Debits() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, 0, len(l.debits))
	for _, e := range l.debits {
		out = append(out, e)
	}
	return out
}

// Credits returns every applied reversal.
func (l *Ledger) Credits() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, 0, len(l.credits))
	for _, e := range l.credits {
		out = append(out, e)
	}
	return out
}

func (l *Ledger) Debit(ctx context.Context, profileID string, amount int64, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.debits[ref]; ok {
		return nil
	}
	if l.balances[profileID] < amount {
		return domain.ErrInsufficientBalance
	}
	l.balances[profileID] -= amount
	l.debits[ref] = Entry{Ref: ref, ProfileID: profileID, Amount: amount}
	return nil
}

func (l *Ledger) Credit(ctx context.Context, profileID string, amount int64, reversalOf string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.debits[reversalOf]
	if !ok {
		return nil
	}
	if d.ProfileID != profileID || d.Amount != amount {
		return fmt.Errorf("credit %d for %s does not match debit %d for %s", amount, profileID, d.Amount, d.ProfileID)
	}
	if _, done := l.credits[reversalOf]; done {
		return nil
	}
	l.balances[profileID] += amount
	l.credits[reversalOf] = Entry{Ref: reversalOf + ":reversal", ProfileID: profileID, Amount: amount, ReversalOf: reversalOf}
	return nil
}
