// Package memory holds process-local adapters for the engine's ports. They
// back the dev mode (BOOST_STORE_DRIVER=memory) and the concurrency tests;
// the semantics mirror the PostgreSQL adapters.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"mesa-boost/internal/core/domain"
	"mesa-boost/internal/core/port"
)

// Store implements port.BoostRepository, port.ProfileReader and
// port.Catalog.
type Store struct {
	mu       sync.RWMutex
	boosts   map[string]domain.Boost
	requests map[string]domain.PurchaseRecord
	profiles map[string]domain.Profile
	packages map[string]domain.Package

	slotsMu sync.Mutex
	slots   map[string]*sync.Mutex

	// CommitHook, when set, runs before a profile transaction commits. A
	// non-nil error aborts the commit as a concurrent writer would.
	CommitHook func(profileID string) error
}

func NewStore() *Store {
	return &Store{
		boosts:   make(map[string]domain.Boost),
		requests: make(map[string]domain.PurchaseRecord),
		profiles: make(map[string]domain.Profile),
		packages: make(map[string]domain.Package),
		slots:    make(map[string]*sync.Mutex),
	}
}

// PutProfile creates or replaces a profile.
func (s *Store) PutProfile(p domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
}

// PutPackage creates or replaces a catalog entry.
func (s *Store) PutPackage(p domain.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[p.ID] = p
}

// PutBoost stores a boost row as is. It bypasses the slot lock and is
// meant for fixtures.
func (s *Store) PutBoost(b domain.Boost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boosts[b.ID] = b
}

func (s *Store) slot(profileID string) *sync.Mutex {
	s.slotsMu.Lock()
	defer s.slotsMu.Unlock()
	m, ok := s.slots[profileID]
	if !ok {
		m = &sync.Mutex{}
		s.slots[profileID] = m
	}
	return m
}

// InProfileTx serialises fn per profile. Writes are staged and applied at
// commit; an error from fn or from the commit discards them.
func (s *Store) InProfileTx(ctx context.Context, profileID string, fn func(ctx context.Context, tx port.BoostTx) error) error {
	m := s.slot(profileID)
	m.Lock()
	defer m.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &storeTx{s: s, profileID: profileID}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if s.CommitHook != nil {
		if err := s.CommitHook(profileID); err != nil {
			return err
		}
	}
	return tx.commit()
}

func (s *Store) ClaimPurchase(_ context.Context, key, profileID, packageID string, staleBefore time.Time) (*domain.PurchaseRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	rec, ok := s.requests[key]
	switch {
	case !ok:
		rec = domain.PurchaseRecord{Key: key, ProfileID: profileID, PackageID: packageID,
			State: domain.PurchasePending, Attempt: 1, CreatedAt: now, UpdatedAt: now}
	case reclaimable(rec, staleBefore) && rec.ProfileID == profileID && rec.PackageID == packageID:
		rec.State = domain.PurchasePending
		rec.Attempt++
		rec.UpdatedAt = now
	default:
		return &rec, false, nil
	}
	s.requests[key] = rec
	return &rec, true, nil
}

func reclaimable(rec domain.PurchaseRecord, staleBefore time.Time) bool {
	return rec.State == domain.PurchaseReleased ||
		rec.State == domain.PurchasePending && rec.UpdatedAt.Before(staleBefore)
}

func (s *Store) RecordCharge(_ context.Context, key string, attempt int, ref string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.requests[key]
	if !ok || rec.State != domain.PurchasePending || rec.Attempt != attempt {
		return fmt.Errorf("purchase request %s attempt %d is not pending", key, attempt)
	}
	rec.ChargeRef = ref
	rec.Charge = amount
	rec.UpdatedAt = time.Now().UTC()
	s.requests[key] = rec
	return nil
}

func (s *Store) GetPurchase(_ context.Context, key string) (*domain.PurchaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.requests[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *Store) FailPurchase(_ context.Context, key, code, reason string) error {
	return s.updatePending(key, func(rec *domain.PurchaseRecord) {
		rec.State = domain.PurchaseCompleted
		rec.ErrorCode = code
		rec.Reason = reason
	})
}

func (s *Store) ReleasePurchase(_ context.Context, key string) error {
	return s.updatePending(key, func(rec *domain.PurchaseRecord) {
		rec.State = domain.PurchaseReleased
	})
}

func (s *Store) updatePending(key string, apply func(*domain.PurchaseRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.requests[key]
	if !ok || rec.State != domain.PurchasePending {
		return nil
	}
	apply(&rec)
	rec.UpdatedAt = time.Now().UTC()
	s.requests[key] = rec
	return nil
}

func (s *Store) GetBoost(_ context.Context, id string) (*domain.Boost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boosts[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *Store) ActiveBoost(_ context.Context, profileID string) (*domain.Boost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked(profileID), nil
}

func (s *Store) activeLocked(profileID string) *domain.Boost {
	for _, b := range s.boosts {
		if b.ProfileID == profileID && b.Status == domain.StatusActive {
			return &b
		}
	}
	return nil
}

func (s *Store) CountPurchasesSince(_ context.Context, profileID string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked(profileID, since), nil
}

func (s *Store) countLocked(profileID string, since time.Time) int {
	n := 0
	for _, b := range s.boosts {
		if b.ProfileID == profileID && b.CreatedAt.After(since) {
			n++
		}
	}
	return n
}

func (s *Store) History(_ context.Context, profileID string, offset, limit int) ([]domain.Boost, int, error) {
	s.mu.RLock()
	var all []domain.Boost
	for _, b := range s.boosts {
		if b.ProfileID == profileID {
			all = append(all, b)
		}
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	total := len(all)
	if offset >= total {
		return []domain.Boost{}, total, nil
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (s *Store) ListDue(_ context.Context, now time.Time, limit int) ([]domain.Boost, error) {
	s.mu.RLock()
	var due []domain.Boost
	for _, b := range s.boosts {
		if b.Status == domain.StatusActive && !b.EndAt.After(now) {
			due = append(due, b)
		}
	}
	s.mu.RUnlock()

	sort.Slice(due, func(i, j int) bool { return due[i].EndAt.Before(due[j].EndAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *Store) ListLive(_ context.Context, category, region string, now time.Time) ([]domain.Boost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var live []domain.Boost
	for _, b := range s.boosts {
		if b.Status != domain.StatusActive || !b.EndAt.After(now) {
			continue
		}
		p, ok := s.profiles[b.ProfileID]
		if !ok || p.Suspended || !matches(p, category, region) {
			continue
		}
		live = append(live, b)
	}
	return live, nil
}

func (s *Store) GetProfile(_ context.Context, id string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) ListProfiles(_ context.Context, category, region string, limit int) ([]string, error) {
	s.mu.RLock()
	var list []domain.Profile
	for _, p := range s.profiles {
		if !p.Suspended && matches(p, category, region) {
			list = append(list, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].ListingScore != list[j].ListingScore {
			return list[i].ListingScore > list[j].ListingScore
		}
		return list[i].ID < list[j].ID
	})
	if len(list) > limit {
		list = list[:limit]
	}
	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	return ids, nil
}

func (s *Store) GetPackage(_ context.Context, id string) (*domain.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.packages[id]
	if !ok {
		return nil, nil
	}
	p.Features = slices.Clone(p.Features)
	return &p, nil
}

func (s *Store) ListPackages(_ context.Context) ([]domain.Package, error) {
	s.mu.RLock()
	out := make([]domain.Package, 0, len(s.packages))
	for _, p := range s.packages {
		p.Features = slices.Clone(p.Features)
		out = append(out, p)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].BasePrice != out[j].BasePrice {
			return out[i].BasePrice < out[j].BasePrice
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func matches(p domain.Profile, category, region string) bool {
	return (category == "" || p.Category == category) && (region == "" || p.Region == region)
}

type terminal struct {
	boostID string
	status  domain.Status
	endAt   time.Time
}

// storeTx stages writes for one locked profile.
type storeTx struct {
	s          *Store
	profileID  string
	inserts    []domain.Boost
	terminals  []terminal
	completion *[2]string
}

func (t *storeTx) ActiveBoost(context.Context) (*domain.Boost, error) {
	for i := range t.inserts {
		if t.inserts[i].Status == domain.StatusActive {
			b := t.inserts[i]
			return &b, nil
		}
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	b := t.s.activeLocked(t.profileID)
	if b != nil && slices.ContainsFunc(t.terminals, func(x terminal) bool { return x.boostID == b.ID }) {
		return nil, nil
	}
	return b, nil
}

func (t *storeTx) CountPurchasesSince(_ context.Context, since time.Time) (int, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	return t.s.countLocked(t.profileID, since) + len(t.inserts), nil
}

func (t *storeTx) InsertBoost(ctx context.Context, b *domain.Boost) error {
	if b.ProfileID != t.profileID {
		return fmt.Errorf("insert boost for %s inside slot of %s", b.ProfileID, t.profileID)
	}
	if b.Status == domain.StatusActive {
		active, _ := t.ActiveBoost(ctx)
		if active != nil {
			return domain.ErrConcurrentPurchaseConflict
		}
	}
	t.inserts = append(t.inserts, *b)
	return nil
}

func (t *storeTx) Terminate(_ context.Context, boostID string, status domain.Status, endAt time.Time) (bool, error) {
	if !status.Terminal() {
		return false, fmt.Errorf("status %q is not terminal", status)
	}
	t.s.mu.RLock()
	b, ok := t.s.boosts[boostID]
	t.s.mu.RUnlock()
	if !ok || b.ProfileID != t.profileID || b.Status != domain.StatusActive {
		return false, nil
	}
	t.terminals = append(t.terminals, terminal{boostID: boostID, status: status, endAt: endAt})
	return true, nil
}

func (t *storeTx) CompletePurchase(_ context.Context, key, boostID string) error {
	t.s.mu.RLock()
	rec, ok := t.s.requests[key]
	t.s.mu.RUnlock()
	if !ok || rec.State != domain.PurchasePending {
		return fmt.Errorf("purchase request %s is not pending", key)
	}
	t.completion = &[2]string{key, boostID}
	return nil
}

func (t *storeTx) commit() error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range t.inserts {
		if b.Status != domain.StatusActive {
			continue
		}
		active := s.activeLocked(b.ProfileID)
		if active != nil && !slices.ContainsFunc(t.terminals, func(x terminal) bool { return x.boostID == active.ID }) {
			return domain.ErrConcurrentPurchaseConflict
		}
	}

	now := time.Now().UTC()
	for _, x := range t.terminals {
		b := s.boosts[x.boostID]
		if b.Status != domain.StatusActive {
			continue
		}
		b.Status = x.status
		b.EndAt = x.endAt
		b.UpdatedAt = now
		s.boosts[x.boostID] = b
	}
	for _, b := range t.inserts {
		s.boosts[b.ID] = b
	}
	if t.completion != nil {
		rec := s.requests[t.completion[0]]
		rec.State = domain.PurchaseCompleted
		rec.BoostID = t.completion[1]
		rec.UpdatedAt = now
		s.requests[t.completion[0]] = rec
	}
	return nil
}
