package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-boost/internal/core/domain"
)

func TestLedgerIdempotent(t *testing.T) {
	l := NewLedger()
	l.Fund("p1", 1000)
	ctx := context.Background()

	require.NoError(t, l.Debit(ctx, "p1", 400, "k#1"))
	require.NoError(t, l.Debit(ctx, "p1", 400, "k#1"))
	assert.Equal(t, int64(600), l.Balance("p1"))

	require.NoError(t, l.Credit(ctx, "p1", 400, "k#1"))
	require.NoError(t, l.Credit(ctx, "p1", 400, "k#1"))
	assert.Equal(t, int64(1000), l.Balance("p1"))
	assert.Len(t, l.Credits(), 1)

	// reversing a debit that never happened is a no-op
	require.NoError(t, l.Credit(ctx, "p1", 400, "k#2"))
	assert.Equal(t, int64(1000), l.Balance("p1"))

	assert.Error(t, l.Credit(ctx, "p1", 1, "k#1"), "amount must match the debit")
}

func TestLedgerInsufficientBalance(t *testing.T) {
	l := NewLedger()
	l.Fund("p1", 99)

	err := l.Debit(context.Background(), "p1", 100, "k#1")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Empty(t, l.Debits())
	assert.Equal(t, int64(99), l.Balance("p1"))
}
