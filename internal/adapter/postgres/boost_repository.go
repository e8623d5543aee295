package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-boost/internal/core/domain"
	"mesa-boost/internal/core/port"
)

const boostColumns = `id, profile_id, package_id, package_name, duration_seconds, start_at, end_at,
    purchase_price, pricing, status, idempotency_key, ledger_ref, created_at, updated_at`

const purchaseColumns = `idempotency_key, profile_id, package_id, state, attempt,
    COALESCE(boost_id, ''), error_code, reason, charge_ref, charge, created_at, updated_at`

// BoostRepository implements port.BoostRepository using pgxpool for
// PostgreSQL. The one-active-boost invariant is enforced by the partial
// unique index ux_boosts_one_active; per-profile ordering comes from a
// row lock on profile_slots.
type BoostRepository struct {
	pool *pgxpool.Pool
	// lockRetry bounds retries while acquiring a profile slot.
	lockRetry time.Duration
}

// NewBoostRepository returns a new repository instance.
func NewBoostRepository(pool *pgxpool.Pool) *BoostRepository {
	return &BoostRepository{pool: pool, lockRetry: 2 * time.Second}
}

// InProfileTx locks the profile slot and runs fn in the same transaction.
// The transaction runs at read committed so statements after the lock see
// rows committed by the previous holder.
func (r *BoostRepository) InProfileTx(ctx context.Context, profileID string, fn func(ctx context.Context, tx port.BoostTx) error) error {
	var tx pgx.Tx
	acquire := func() error {
		var err error
		tx, err = r.lockSlot(ctx, profileID)
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Millisecond
	bo.MaxElapsedTime = r.lockRetry
	if err := backoff.Retry(acquire, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("lock profile slot: %w", err)
	}

	if err := fn(ctx, &boostTx{tx: tx, profileID: profileID}); err != nil {
		_ = tx.Rollback(context.WithoutCancel(ctx))
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(context.WithoutCancel(ctx))
		if isConflict(err) {
			return domain.ErrConcurrentPurchaseConflict
		}
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *BoostRepository) lockSlot(ctx context.Context, profileID string) (pgx.Tx, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, err
	}
	if _, err = tx.Exec(ctx, `INSERT INTO profile_slots (profile_id) VALUES ($1) ON CONFLICT DO NOTHING`, profileID); err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	var locked string
	err = tx.QueryRow(ctx, `SELECT profile_id FROM profile_slots WHERE profile_id = $1 FOR UPDATE`, profileID).Scan(&locked)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	return tx, nil
}

// ClaimPurchase inserts a pending record, or re-claims a released or
// abandoned pending one for the same profile and package.
func (r *BoostRepository) ClaimPurchase(ctx context.Context, key, profileID, packageID string, staleBefore time.Time) (*domain.PurchaseRecord, bool, error) {
	rec, err := scanPurchase(r.pool.QueryRow(ctx, `
        INSERT INTO purchase_requests (idempotency_key, profile_id, package_id, state, attempt)
        VALUES ($1, $2, $3, 'pending', 1)
        ON CONFLICT (idempotency_key) DO UPDATE
            SET state = 'pending', attempt = purchase_requests.attempt + 1, updated_at = now()
            WHERE (purchase_requests.state = 'released'
                   OR (purchase_requests.state = 'pending' AND purchase_requests.updated_at < $4))
              AND purchase_requests.profile_id = EXCLUDED.profile_id
              AND purchase_requests.package_id = EXCLUDED.package_id
        RETURNING `+purchaseColumns, key, profileID, packageID, staleBefore))
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}
	rec, err = r.GetPurchase(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		return nil, false, fmt.Errorf("purchase request %s vanished during claim", key)
	}
	return rec, false, nil
}

// RecordCharge stores the debit reference of the current pending attempt.
func (r *BoostRepository) RecordCharge(ctx context.Context, key string, attempt int, ref string, amount int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE purchase_requests
        SET charge_ref = $3, charge = $4, updated_at = now()
        WHERE idempotency_key = $1 AND attempt = $2 AND state = 'pending'`, key, attempt, ref, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("purchase request %s attempt %d is not pending", key, attempt)
	}
	return nil
}

// GetPurchase returns the record for key or nil when unknown.
func (r *BoostRepository) GetPurchase(ctx context.Context, key string) (*domain.PurchaseRecord, error) {
	rec, err := scanPurchase(r.pool.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchase_requests WHERE idempotency_key = $1`, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FailPurchase completes a pending record with an error code.
func (r *BoostRepository) FailPurchase(ctx context.Context, key, code, reason string) error {
	_, err := r.pool.Exec(ctx, `UPDATE purchase_requests
        SET state = 'completed', error_code = $2, reason = $3, updated_at = now()
        WHERE idempotency_key = $1 AND state = 'pending'`, key, code, reason)
	return err
}

// ReleasePurchase hands a pending key back for a retry.
func (r *BoostRepository) ReleasePurchase(ctx context.Context, key string) error {
	_, err := r.pool.Exec(ctx, `UPDATE purchase_requests SET state = 'released', updated_at = now()
        WHERE idempotency_key = $1 AND state = 'pending'`, key)
	return err
}

// GetBoost returns a boost by id.
func (r *BoostRepository) GetBoost(ctx context.Context, id string) (*domain.Boost, error) {
	return oneBoost(r.pool.QueryRow(ctx, `SELECT `+boostColumns+` FROM boosts WHERE id = $1`, id))
}

// ActiveBoost returns the profile's active boost.
func (r *BoostRepository) ActiveBoost(ctx context.Context, profileID string) (*domain.Boost, error) {
	return activeBoost(ctx, r.pool, profileID)
}

// CountPurchasesSince counts purchases by created_at.
func (r *BoostRepository) CountPurchasesSince(ctx context.Context, profileID string, since time.Time) (int, error) {
	return countSince(ctx, r.pool, profileID, since)
}

// History returns a page of boosts, newest first.
func (r *BoostRepository) History(ctx context.Context, profileID string, offset, limit int) ([]domain.Boost, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM boosts WHERE profile_id = $1`, profileID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+boostColumns+` FROM boosts WHERE profile_id = $1
        ORDER BY created_at DESC, id DESC OFFSET $2 LIMIT $3`, profileID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectBoosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListDue returns active boosts that have reached their end time.
func (r *BoostRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Boost, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+boostColumns+` FROM boosts
        WHERE status = 'active' AND end_at <= $1 ORDER BY end_at LIMIT $2`, now, limit)
	if err != nil {
		return nil, err
	}
	return collectBoosts(rows)
}

// ListLive returns active, unexpired boosts for a listing surface.
func (r *BoostRepository) ListLive(ctx context.Context, category, region string, now time.Time) ([]domain.Boost, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+prefixed("b")+` FROM boosts b
        JOIN profiles p ON p.id = b.profile_id
        WHERE b.status = 'active' AND b.end_at > $1
          AND NOT p.suspended
          AND ($2 = '' OR p.category = $2)
          AND ($3 = '' OR p.region = $3)`, now, category, region)
	if err != nil {
		return nil, err
	}
	return collectBoosts(rows)
}

// boostTx implements port.BoostTx on a locked transaction.
type boostTx struct {
	tx        pgx.Tx
	profileID string
}

func (t *boostTx) ActiveBoost(ctx context.Context) (*domain.Boost, error) {
	return activeBoost(ctx, t.tx, t.profileID)
}

func (t *boostTx) CountPurchasesSince(ctx context.Context, since time.Time) (int, error) {
	return countSince(ctx, t.tx, t.profileID, since)
}

func (t *boostTx) InsertBoost(ctx context.Context, b *domain.Boost) error {
	if b.ProfileID != t.profileID {
		return fmt.Errorf("insert boost for %s inside slot of %s", b.ProfileID, t.profileID)
	}
	pricing, err := json.Marshal(b.Pricing)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, `INSERT INTO boosts (`+boostColumns+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		b.ID, b.ProfileID, b.PackageID, b.PackageName, int64(b.Duration/time.Second), b.StartAt, b.EndAt,
		b.PurchasePrice, pricing, string(b.Status), b.IdempotencyKey, b.LedgerRef, b.CreatedAt, b.UpdatedAt)
	if isConflict(err) {
		return domain.ErrConcurrentPurchaseConflict
	}
	return err
}

func (t *boostTx) Terminate(ctx context.Context, boostID string, status domain.Status, endAt time.Time) (bool, error) {
	if !status.Terminal() {
		return false, fmt.Errorf("status %q is not terminal", status)
	}
	tag, err := t.tx.Exec(ctx, `UPDATE boosts SET status = $1, end_at = $2, updated_at = now()
        WHERE id = $3 AND profile_id = $4 AND status = 'active'`, string(status), endAt, boostID, t.profileID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (t *boostTx) CompletePurchase(ctx context.Context, key, boostID string) error {
	tag, err := t.tx.Exec(ctx, `UPDATE purchase_requests
        SET state = 'completed', boost_id = $2, updated_at = now()
        WHERE idempotency_key = $1 AND state = 'pending'`, key, boostID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("purchase request %s is not pending", key)
	}
	return nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func activeBoost(ctx context.Context, q querier, profileID string) (*domain.Boost, error) {
	return oneBoost(q.QueryRow(ctx, `SELECT `+boostColumns+` FROM boosts WHERE profile_id = $1 AND status = 'active'`, profileID))
}

func countSince(ctx context.Context, q querier, profileID string, since time.Time) (int, error) {
	var n int
	err := q.QueryRow(ctx, `SELECT count(*) FROM boosts WHERE profile_id = $1 AND created_at > $2`, profileID, since).Scan(&n)
	return n, err
}

func oneBoost(row pgx.Row) (*domain.Boost, error) {
	b, err := scanBoost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBoosts(rows pgx.Rows) ([]domain.Boost, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Boost, error) {
		return scanBoost(row)
	})
}

func scanBoost(row pgx.Row) (domain.Boost, error) {
	var (
		b       domain.Boost
		seconds int64
		status  string
		pricing []byte
	)
	err := row.Scan(
		&b.ID,
		&b.ProfileID,
		&b.PackageID,
		&b.PackageName,
		&seconds,
		&b.StartAt,
		&b.EndAt,
		&b.PurchasePrice,
		&pricing,
		&status,
		&b.IdempotencyKey,
		&b.LedgerRef,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return b, err
	}
	b.Duration = time.Duration(seconds) * time.Second
	b.Status = domain.Status(status)
	if err = json.Unmarshal(pricing, &b.Pricing); err != nil {
		return b, fmt.Errorf("decode pricing of boost %s: %w", b.ID, err)
	}
	return b, nil
}

func scanPurchase(row pgx.Row) (*domain.PurchaseRecord, error) {
	var (
		rec   domain.PurchaseRecord
		state string
	)
	err := row.Scan(&rec.Key, &rec.ProfileID, &rec.PackageID, &state, &rec.Attempt,
		&rec.BoostID, &rec.ErrorCode, &rec.Reason, &rec.ChargeRef, &rec.Charge, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.State = domain.PurchaseState(state)
	return &rec, nil
}

func prefixed(alias string) string {
	return alias + `.id, ` + alias + `.profile_id, ` + alias + `.package_id, ` + alias + `.package_name, ` +
		alias + `.duration_seconds, ` + alias + `.start_at, ` + alias + `.end_at, ` + alias + `.purchase_price, ` +
		alias + `.pricing, ` + alias + `.status, ` + alias + `.idempotency_key, ` + alias + `.ledger_ref, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}
