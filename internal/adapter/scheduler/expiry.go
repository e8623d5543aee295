package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mesa-boost/internal/core/domain"
	"mesa-boost/internal/core/port"
)

// LeaseName is the lease replicas contend for before sweeping.
const LeaseName = "boost-expiry"

// Config controls the sweep cadence.
type Config struct {
	Interval  time.Duration
	BatchSize int
	LeaseTTL  time.Duration
}

// Expirer moves active boosts past their end time to expired. Any number of
// replicas may run it; the lease keeps sweeps from overlapping and the
// guarded transition makes a duplicate sweep harmless.
type Expirer struct {
	repo    port.BoostRepository
	locker  port.Locker
	events  port.EventPublisher
	metrics port.Metrics
	logger  *slog.Logger
	cfg     Config
	now     func() time.Time
}

func NewExpirer(repo port.BoostRepository, locker port.Locker, events port.EventPublisher, metrics port.Metrics, logger *slog.Logger, cfg Config) *Expirer {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = cfg.Interval
	}
	return &Expirer{
		repo:    repo,
		locker:  locker,
		events:  events,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "expirer")),
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps on every tick until ctx is cancelled.
func (e *Expirer) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	e.logger.Info("expiry scheduler started", slog.Duration("interval", e.cfg.Interval))
	for {
		if err := e.Tick(ctx); err != nil && !errors.Is(err, context.Canceled) {
			e.logger.Error("sweep", slog.Any("error", err))
		}
		select {
		case <-ctx.Done():
			e.logger.Info("expiry scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick takes the lease and runs one sweep. It is a no-op when another
// replica holds the lease.
func (e *Expirer) Tick(ctx context.Context) error {
	release, ok, err := e.locker.TryAcquire(ctx, LeaseName, e.cfg.LeaseTTL)
	if err != nil {
		return fmt.Errorf("acquire lease: %w", err)
	}
	if !ok {
		e.logger.Debug("lease held elsewhere, skipping sweep")
		return nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			e.logger.Warn("release lease", slog.Any("error", err))
		}
	}()

	// bound the sweep by the lease so it never outlives its ownership
	sctx, cancel := context.WithTimeout(ctx, e.cfg.LeaseTTL)
	defer cancel()
	_, err = e.Sweep(sctx, e.now())
	return err
}

// Sweep expires every boost due at now, batch by batch, and returns how
// many it expired. A row that fails is logged and left for the next sweep.
func (e *Expirer) Sweep(ctx context.Context, now time.Time) (int, error) {
	started := time.Now()
	defer func() { e.metrics.SweepDuration(time.Since(started)) }()

	total := 0
	for {
		due, err := e.repo.ListDue(ctx, now, e.cfg.BatchSize)
		if err != nil {
			return total, fmt.Errorf("list due boosts: %w", err)
		}
		expired := 0
		for _, b := range due {
			ok, err := e.expire(ctx, b, now)
			if err != nil {
				if ctx.Err() != nil {
					return total, ctx.Err()
				}
				e.metrics.SweepFailure()
				e.logger.Error("expire boost",
					slog.String("boost_id", b.ID),
					slog.String("profile_id", b.ProfileID),
					slog.Any("error", err))
				continue
			}
			if ok {
				expired++
			}
		}
		total += expired
		e.metrics.Expired(expired)

		// A short batch is the last one. A full batch with no progress means
		// every row is failing; stop instead of spinning on it.
		if len(due) < e.cfg.BatchSize || expired == 0 {
			break
		}
	}
	if total > 0 {
		e.logger.Info("boosts expired", slog.Int("count", total))
	}
	return total, nil
}

func (e *Expirer) expire(ctx context.Context, due domain.Boost, now time.Time) (bool, error) {
	var done bool
	err := e.repo.InProfileTx(ctx, due.ProfileID, func(ctx context.Context, tx port.BoostTx) error {
		active, err := tx.ActiveBoost(ctx)
		if err != nil {
			return err
		}
		// cancelled or replaced since it was listed
		if active == nil || active.ID != due.ID || active.EndAt.After(now) {
			return nil
		}
		done, err = tx.Terminate(ctx, active.ID, domain.StatusExpired, active.EndAt)
		return err
	})
	if err != nil || !done {
		return false, err
	}
	if err := e.events.Publish(ctx, domain.Event{
		Type:       domain.EventExpired,
		BoostID:    due.ID,
		ProfileID:  due.ProfileID,
		PackageID:  due.PackageID,
		Amount:     due.PurchasePrice,
		LedgerRef:  due.LedgerRef,
		OccurredAt: due.EndAt,
	}); err != nil {
		e.logger.Error("publish event", slog.String("type", string(domain.EventExpired)), slog.Any("error", err))
	}
	return true, nil
}
