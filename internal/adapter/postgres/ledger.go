package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-boost/internal/core/domain"
)

// Ledger is a wallet ledger kept in the same database. It stands in for an
// external wallet service and honours the same contract: each ref is
// applied at most once and runs in its own transaction, independent of
// the boost store's transactions.
type Ledger struct {
	pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// Debit charges amount to the profile's wallet under ref.
func (l *Ledger) Debit(ctx context.Context, profileID string, amount int64, ref string) (err error) {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `INSERT INTO ledger_entries (ref, profile_id, amount, kind)
        VALUES ($1, $2, $3, 'debit') ON CONFLICT (ref) DO NOTHING`, ref, profileID, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// already applied
		return nil
	}
	tag, err = tx.Exec(ctx, `UPDATE wallets SET balance = balance - $1, updated_at = now()
        WHERE profile_id = $2 AND balance >= $1`, amount, profileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// Credit reverses the debit recorded under reversalOf. The amount must
// match the original debit.
func (l *Ledger) Credit(ctx context.Context, profileID string, amount int64, reversalOf string) (err error) {
	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var debited int64
	err = tx.QueryRow(ctx, `SELECT amount FROM ledger_entries
        WHERE ref = $1 AND profile_id = $2 AND kind = 'debit' FOR UPDATE`, reversalOf, profileID).Scan(&debited)
	if errors.Is(err, pgx.ErrNoRows) {
		// nothing was charged under this ref
		return nil
	}
	if err != nil {
		return err
	}
	if debited != amount {
		return fmt.Errorf("credit %d does not match debit %d for %s", amount, debited, reversalOf)
	}
	tag, err := tx.Exec(ctx, `INSERT INTO ledger_entries (ref, profile_id, amount, kind, reversal_of)
        VALUES ($1, $2, $3, 'credit', $4) ON CONFLICT DO NOTHING`, reversalOf+":reversal", profileID, amount, reversalOf)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return nil
	}
	_, err = tx.Exec(ctx, `UPDATE wallets SET balance = balance + $1, updated_at = now() WHERE profile_id = $2`, amount, profileID)
	return err
}
