package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"mesa-boost/internal/core/domain"
	"mesa-boost/internal/core/eligibility"
	"mesa-boost/internal/core/port"
	"mesa-boost/internal/core/pricing"
)

const (
	quotaWindow     = 24 * time.Hour
	defaultPageSize = 20
	maxPageSize     = 100
)

var (
	errStillPending     = errors.New("purchase still pending")
	errAbandonedAttempt = errors.New("purchase attempt abandoned")
)

// charge identifies one debit made on behalf of a purchase attempt.
type charge struct {
	key       string
	attempt   int
	profileID string
	packageID string
	ref       string
	amount    int64
}

// Deps groups the collaborators of BoostUseCase. Events and Metrics are
// optional.
type Deps struct {
	Repo     port.BoostRepository
	Profiles port.ProfileReader
	Catalog  port.Catalog
	Ledger   port.Ledger
	Events   port.EventPublisher
	Metrics  port.Metrics
	Pricing  *pricing.Calculator
	Logger   *slog.Logger
}

// Options tunes admission policy and timeouts.
type Options struct {
	Rules               eligibility.Rules
	PurchaseTimeout     time.Duration
	CompensationTimeout time.Duration
}

// BoostUseCase is the admission service. It is the only writer of purchase
// and cancel transitions.
type BoostUseCase struct {
	repo     port.BoostRepository
	profiles port.ProfileReader
	catalog  port.Catalog
	ledger   port.Ledger
	events   port.EventPublisher
	metrics  port.Metrics
	calc     *pricing.Calculator
	logger   *slog.Logger
	opts     Options

	// inflight collapses concurrent calls with the same idempotency key
	// inside this process.
	inflight singleflight.Group
	now      func() time.Time
}

// NewBoostUseCase wires the admission service.
func NewBoostUseCase(d Deps, opts Options) *BoostUseCase {
	if opts.PurchaseTimeout <= 0 {
		opts.PurchaseTimeout = 5 * time.Second
	}
	if opts.CompensationTimeout <= 0 {
		opts.CompensationTimeout = 10 * time.Second
	}
	u := &BoostUseCase{
		repo:     d.Repo,
		profiles: d.Profiles,
		catalog:  d.Catalog,
		ledger:   d.Ledger,
		events:   d.Events,
		metrics:  d.Metrics,
		calc:     d.Pricing,
		logger:   d.Logger,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
	if u.events == nil {
		u.events = nopPublisher{}
	}
	if u.metrics == nil {
		u.metrics = NopMetrics{}
	}
	if u.logger == nil {
		u.logger = slog.New(slog.DiscardHandler)
	}
	return u
}

// Eligibility answers the advisory pre-check from current persisted state.
// An active row past its end time that the sweep has not expired yet
// reports domain.ReasonBoostEnding, while Status already shows it inactive.
func (u *BoostUseCase) Eligibility(ctx context.Context, profileID string) (*domain.Eligibility, error) {
	profile, err := u.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	active, err := u.repo.ActiveBoost(ctx, profileID)
	if err != nil {
		return nil, err
	}
	now := u.now()
	count, err := u.repo.CountPurchasesSince(ctx, profileID, now.Add(-quotaWindow))
	if err != nil {
		return nil, err
	}
	el := eligibility.Evaluate(u.opts.Rules, eligibility.Input{
		Profile:        *profile,
		HasActiveBoost: active != nil,
		BoostLapsed:    active != nil && !active.LiveAt(now),
		PurchasesToday: count,
	})
	return &el, nil
}

// Purchase buys a boost. See port.BoostUseCase.
func (u *BoostUseCase) Purchase(ctx context.Context, req port.PurchaseReq) (*domain.Boost, error) {
	if req.ProfileID == "" || req.PackageID == "" || req.IdempotencyKey == "" {
		return nil, fmt.Errorf("%w: profile, package and idempotency key are required", domain.ErrInvalidRequest)
	}
	ctx, cancel := context.WithTimeout(ctx, u.opts.PurchaseTimeout)
	defer cancel()

	flightKey := req.IdempotencyKey + "\x00" + req.ProfileID + "\x00" + req.PackageID
	v, err, _ := u.inflight.Do(flightKey, func() (any, error) {
		return u.purchase(ctx, req)
	})
	if err != nil {
		err = u.classify(ctx, err)
		u.metrics.PurchaseOutcome(outcome(err))
		return nil, err
	}
	u.metrics.PurchaseOutcome(outcome(nil))
	b := *v.(*domain.Boost)
	return &b, nil
}

// staleAfter is how long a pending key may go untouched before another call
// takes it over. It outlasts every step a live owner can still run.
func (u *BoostUseCase) staleAfter() time.Duration {
	return u.opts.PurchaseTimeout + 3*u.opts.CompensationTimeout
}

func (u *BoostUseCase) purchase(ctx context.Context, req port.PurchaseReq) (*domain.Boost, error) {
	staleBefore := u.now().Add(-u.staleAfter())
	rec, created, err := u.repo.ClaimPurchase(ctx, req.IdempotencyKey, req.ProfileID, req.PackageID, staleBefore)
	if err != nil {
		return nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if !created {
		if rec.ProfileID != req.ProfileID || rec.PackageID != req.PackageID {
			return nil, domain.ErrIdempotencyKeyReused
		}
		return u.awaitOutcome(ctx, req.IdempotencyKey)
	}

	// An earlier attempt died between its debit and its outcome.
	if rec.ChargeRef != "" {
		prev := charge{
			key:       rec.Key,
			attempt:   rec.Attempt,
			profileID: rec.ProfileID,
			packageID: rec.PackageID,
			ref:       rec.ChargeRef,
			amount:    rec.Charge,
		}
		if err = u.compensate(ctx, prev, errAbandonedAttempt); err != nil {
			err = fmt.Errorf("reverse abandoned charge %s: %w", rec.ChargeRef, err)
			u.settle(ctx, req.IdempotencyKey, err)
			return nil, err
		}
	}

	boost, err := u.admit(ctx, req, rec.Attempt)
	u.settle(ctx, req.IdempotencyKey, err)
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.Event{
		Type:       domain.EventPurchased,
		BoostID:    boost.ID,
		ProfileID:  boost.ProfileID,
		PackageID:  boost.PackageID,
		Amount:     boost.PurchasePrice,
		LedgerRef:  boost.LedgerRef,
		OccurredAt: boost.StartAt,
	})
	u.metrics.PurchasePrice(boost.PackageID, boost.PurchasePrice)
	u.logger.Info("boost purchased",
		slog.String("profile_id", boost.ProfileID),
		slog.String("boost_id", boost.ID),
		slog.String("package_id", boost.PackageID),
		slog.Int64("price", boost.PurchasePrice))
	return boost, nil
}

// admit runs the authoritative check, charge and activation for one
// claimed attempt.
func (u *BoostUseCase) admit(ctx context.Context, req port.PurchaseReq, attempt int) (*domain.Boost, error) {
	pkg, err := u.catalog.GetPackage(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("get package: %w", err)
	}
	if pkg == nil {
		return nil, domain.ErrPackageNotFound
	}

	var (
		ledgerRef = fmt.Sprintf("%s#%d", req.IdempotencyKey, attempt)
		charged   bool
		candidate *domain.Boost
	)
	err = u.repo.InProfileTx(ctx, req.ProfileID, func(ctx context.Context, tx port.BoostTx) error {
		profile, err := u.profiles.GetProfile(ctx, req.ProfileID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		if profile == nil {
			return domain.ErrProfileNotFound
		}
		now := u.now()
		active, err := tx.ActiveBoost(ctx)
		if err != nil {
			return err
		}
		count, err := tx.CountPurchasesSince(ctx, now.Add(-quotaWindow))
		if err != nil {
			return err
		}
		el := eligibility.Evaluate(u.opts.Rules, eligibility.Input{
			Profile:        *profile,
			HasActiveBoost: active != nil,
			BoostLapsed:    active != nil && !active.LiveAt(now),
			PurchasesToday: count,
		})
		if !el.Eligible {
			return &domain.IneligibleError{Reason: el.Reason}
		}

		quote, err := u.calc.Compute(*profile, *pkg)
		if err != nil {
			return err
		}
		candidate = &domain.Boost{
			ID:             uuid.NewString(),
			ProfileID:      req.ProfileID,
			PackageID:      pkg.ID,
			PackageName:    pkg.Name,
			Duration:       pkg.Duration,
			StartAt:        now,
			EndAt:          now.Add(pkg.Duration),
			PurchasePrice:  quote.Price,
			Pricing:        quote,
			Status:         domain.StatusActive,
			IdempotencyKey: req.IdempotencyKey,
			LedgerRef:      ledgerRef,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err = u.repo.RecordCharge(ctx, req.IdempotencyKey, attempt, ledgerRef, quote.Price); err != nil {
			return fmt.Errorf("record charge: %w", err)
		}
		// From here on any failure may leave money taken, so it must be
		// reversed.
		charged = true
		if err = u.ledger.Debit(ctx, req.ProfileID, quote.Price, ledgerRef); err != nil {
			if errors.Is(err, domain.ErrInsufficientBalance) {
				charged = false
			}
			return err
		}
		if err = tx.InsertBoost(ctx, candidate); err != nil {
			return err
		}
		return tx.CompletePurchase(ctx, req.IdempotencyKey, candidate.ID)
	})
	if err == nil {
		return candidate, nil
	}
	if !charged {
		return nil, err
	}

	// A commit interrupted by the deadline may still have landed.
	if committed := u.lookupCommitted(ctx, candidate.ID); committed != nil {
		return committed, nil
	}
	_ = u.compensate(ctx, charge{
		key:       req.IdempotencyKey,
		attempt:   attempt,
		profileID: candidate.ProfileID,
		packageID: candidate.PackageID,
		ref:       ledgerRef,
		amount:    candidate.PurchasePrice,
	}, err)
	return nil, err
}

func (u *BoostUseCase) lookupCommitted(ctx context.Context, boostID string) *domain.Boost {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.CompensationTimeout)
	defer cancel()
	b, err := u.repo.GetBoost(cctx, boostID)
	if err != nil {
		u.logger.Warn("lookup after failed commit", slog.String("boost_id", boostID), slog.Any("error", err))
		return nil
	}
	return b
}

// compensate reverses a debit and clears it from the purchase record. It
// runs detached from the caller's deadline and retries until
// CompensationTimeout. A failed reversal stays on the record so the next
// claim of the key tries again.
func (u *BoostUseCase) compensate(ctx context.Context, c charge, cause error) error {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.CompensationTimeout)
	defer cancel()

	credit := func() error {
		return u.ledger.Credit(cctx, c.profileID, c.amount, c.ref)
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	if err := backoff.Retry(credit, backoff.WithContext(bo, cctx)); err != nil {
		// Money is held without a boost. This needs an operator.
		u.logger.Error("compensating credit failed",
			slog.String("profile_id", c.profileID),
			slog.String("ledger_ref", c.ref),
			slog.Int64("amount", c.amount),
			slog.Any("cause", cause),
			slog.Any("error", err))
		return err
	}
	if err := u.repo.RecordCharge(cctx, c.key, c.attempt, "", 0); err != nil {
		u.logger.Warn("clear reversed charge", slog.String("key", c.key), slog.Any("error", err))
	}
	u.metrics.Compensation()
	u.logger.Warn("purchase compensated",
		slog.String("profile_id", c.profileID),
		slog.String("ledger_ref", c.ref),
		slog.Int64("amount", c.amount),
		slog.Any("cause", cause))
	u.publish(cctx, domain.Event{
		Type:       domain.EventCompensated,
		ProfileID:  c.profileID,
		PackageID:  c.packageID,
		Amount:     c.amount,
		LedgerRef:  c.ref,
		OccurredAt: u.now(),
	})
	return nil
}

// settle records the outcome of an owned attempt. Terminal failures are
// stored for replay; timeouts and internal errors release the key.
func (u *BoostUseCase) settle(ctx context.Context, key string, err error) {
	if err == nil {
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.CompensationTimeout)
	defer cancel()

	var serr error
	if code, reason, ok := domain.ErrorCode(err); ok && ctx.Err() == nil {
		serr = u.repo.FailPurchase(cctx, key, code, reason)
	} else {
		serr = u.repo.ReleasePurchase(cctx, key)
	}
	if serr != nil {
		u.logger.Error("settle purchase request", slog.String("key", key), slog.Any("error", serr))
	}
}

// awaitOutcome waits for another execution of the same key to finish.
func (u *BoostUseCase) awaitOutcome(ctx context.Context, key string) (*domain.Boost, error) {
	poll := func() (*domain.Boost, error) {
		rec, err := u.repo.GetPurchase(ctx, key)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if rec == nil {
			return nil, backoff.Permanent(fmt.Errorf("purchase request %s disappeared", key))
		}
		switch rec.State {
		case domain.PurchaseCompleted:
			b, err := u.replay(ctx, rec)
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			return b, nil
		case domain.PurchaseReleased:
			return nil, backoff.Permanent(domain.ErrTimeout)
		}
		return nil, errStillPending
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 25 * time.Millisecond
	bo.MaxInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 0
	return backoff.RetryWithData(poll, backoff.WithContext(bo, ctx))
}

func (u *BoostUseCase) replay(ctx context.Context, rec *domain.PurchaseRecord) (*domain.Boost, error) {
	if rec.ErrorCode != "" {
		return nil, domain.ErrorFromCode(rec.ErrorCode, rec.Reason)
	}
	b, err := u.repo.GetBoost(ctx, rec.BoostID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("boost %s of completed purchase %s not found", rec.BoostID, rec.Key)
	}
	return b, nil
}

// Cancel terminates the active boost of a profile.
func (u *BoostUseCase) Cancel(ctx context.Context, profileID string) error {
	var (
		cancelled domain.Boost
		remaining time.Duration
	)
	err := u.repo.InProfileTx(ctx, profileID, func(ctx context.Context, tx port.BoostTx) error {
		active, err := tx.ActiveBoost(ctx)
		if err != nil {
			return err
		}
		now := u.now()
		// A boost past its end is already over for readers; the sweep
		// owns that transition.
		if active == nil || !active.LiveAt(now) {
			return domain.ErrNoActiveBoost
		}
		ok, err := tx.Terminate(ctx, active.ID, domain.StatusCancelled, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNoActiveBoost
		}
		remaining = active.Remaining(now)
		cancelled = *active
		cancelled.Status = domain.StatusCancelled
		cancelled.EndAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveBoost) {
			return err
		}
		return u.classify(ctx, err)
	}

	u.metrics.Cancelled()
	u.logger.Info("boost cancelled",
		slog.String("profile_id", profileID),
		slog.String("boost_id", cancelled.ID),
		slog.Duration("remaining", remaining))
	u.publish(ctx, domain.Event{
		Type:             domain.EventCancelled,
		BoostID:          cancelled.ID,
		ProfileID:        cancelled.ProfileID,
		PackageID:        cancelled.PackageID,
		Amount:           cancelled.PurchasePrice,
		LedgerRef:        cancelled.LedgerRef,
		RemainingSeconds: int64(remaining / time.Second),
		OccurredAt:       cancelled.EndAt,
	})
	return nil
}

// Status reports the live boost of a profile. A row past its end time is
// reported as inactive even before the sweep has expired it.
func (u *BoostUseCase) Status(ctx context.Context, profileID string) (*port.StatusResp, error) {
	active, err := u.repo.ActiveBoost(ctx, profileID)
	if err != nil {
		return nil, err
	}
	now := u.now()
	if active == nil || !active.LiveAt(now) {
		return &port.StatusResp{}, nil
	}
	expires := active.EndAt
	return &port.StatusResp{
		IsActive:         true,
		BoostID:          active.ID,
		Package:          active.PackageName,
		ExpiresAt:        &expires,
		RemainingSeconds: int64(active.Remaining(now) / time.Second),
		ProgressPercent:  active.Progress(now),
	}, nil
}

// History returns a page of the profile's boosts.
func (u *BoostUseCase) History(ctx context.Context, req port.HistoryReq) (*port.HistoryResp, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}
	req.PageSize = min(req.PageSize, maxPageSize)

	items, total, err := u.repo.History(ctx, req.ProfileID, (req.Page-1)*req.PageSize, req.PageSize)
	if err != nil {
		return nil, err
	}
	return &port.HistoryResp{Items: items, Page: req.Page, PageSize: req.PageSize, Total: total}, nil
}

// Packages lists the catalog.
func (u *BoostUseCase) Packages(ctx context.Context) ([]domain.Package, error) {
	return u.catalog.ListPackages(ctx)
}

func (u *BoostUseCase) publish(ctx context.Context, ev domain.Event) {
	// TODO: move to a transactional outbox so events survive a crash
	// between commit and publish.
	if err := u.events.Publish(ctx, ev); err != nil {
		u.logger.Error("publish event", slog.String("type", string(ev.Type)), slog.Any("error", err))
	}
}

// classify maps deadline errors to domain.ErrTimeout and leaves typed
// domain errors untouched.
func (u *BoostUseCase) classify(ctx context.Context, err error) error {
	if _, _, ok := domain.ErrorCode(err); ok {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrTimeout),
		errors.Is(err, domain.ErrNoActiveBoost),
		errors.Is(err, domain.ErrIdempotencyKeyReused),
		errors.Is(err, domain.ErrInvalidRequest):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return domain.ErrTimeout
	}
	return err
}

func outcome(err error) string {
	var ie *domain.IneligibleError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &ie):
		return "ineligible"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrConcurrentPurchaseConflict):
		return "conflict"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrPackageNotFound), errors.Is(err, domain.ErrProfileNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrIdempotencyKeyReused), errors.Is(err, domain.ErrInvalidRequest):
		return "invalid"
	}
	return "error"
}
