package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-boost/internal/core/domain"
)

// DemoData is a small catalog with profiles and funded wallets for local
// runs.
type DemoData struct {
	Packages []domain.Package
	Profiles []domain.Profile
	Balances map[string]int64
}

// Demo generates the demo dataset. Profiles are random but reproducible for
// a given seed.
func Demo(seed int64) DemoData {
	r := rand.New(rand.NewSource(seed))
	d := DemoData{
		Packages: []domain.Package{
			{ID: "boost-24h", Name: "Spotlight 24h", Duration: 24 * time.Hour, BasePrice: 5000,
				Features: []string{"top of listings", "highlight badge"}},
			{ID: "boost-72h", Name: "Spotlight 72h", Duration: 72 * time.Hour, BasePrice: 12000,
				Features: []string{"top of listings", "highlight badge", "category banner"}},
			{ID: "boost-7d", Name: "Spotlight 7 days", Duration: 7 * 24 * time.Hour, BasePrice: 25000,
				Features: []string{"top of listings", "highlight badge", "category banner", "priority support"}},
		},
		Balances: make(map[string]int64),
	}

	countries := []string{"US", "DE", "IN", "BR", "KE"}
	roles := []domain.Role{domain.RoleRegular, domain.RoleVerified, domain.RoleAI}
	categories := []string{"tutors", "designers", "developers"}
	regions := []string{"north", "south"}
	for i := 1; i <= 50; i++ {
		p := domain.Profile{
			ID:           fmt.Sprintf("profile-%d", i),
			Completeness: 40 + r.Intn(61),
			Rating:       float64(r.Intn(51)) / 10,
			Country:      countries[r.Intn(len(countries))],
			Role:         roles[r.Intn(len(roles))],
			Suspended:    i%25 == 0,
			Category:     categories[r.Intn(len(categories))],
			Region:       regions[r.Intn(len(regions))],
			ListingScore: r.Float64() * 100,
		}
		d.Profiles = append(d.Profiles, p)
		d.Balances[p.ID] = int64(50000 + r.Intn(100000))
	}
	return d
}

// Seed inserts d in one transaction. Existing rows are left untouched, so it
// is safe to run more than once.
func Seed(ctx context.Context, db *pgxpool.Pool, d DemoData) error {
	return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		for _, p := range d.Packages {
			features, err := json.Marshal(p.Features)
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx, `INSERT INTO boost_packages (id, name, duration_seconds, base_price, features)
VALUES ($1,$2,$3,$4,$5) ON CONFLICT DO NOTHING`,
				p.ID, p.Name, int64(p.Duration/time.Second), p.BasePrice, features)
			if err != nil {
				return fmt.Errorf("seed package %s: %w", p.ID, err)
			}
		}
		for _, p := range d.Profiles {
			_, err := tx.Exec(ctx, `INSERT INTO profiles
    (id, completeness, rating, country, role, suspended, category, region, listing_score)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) ON CONFLICT DO NOTHING`,
				p.ID, p.Completeness, p.Rating, p.Country, string(p.Role), p.Suspended, p.Category, p.Region, p.ListingScore)
			if err != nil {
				return fmt.Errorf("seed profile %s: %w", p.ID, err)
			}
			_, err = tx.Exec(ctx, `INSERT INTO wallets (profile_id, balance) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				p.ID, d.Balances[p.ID])
			if err != nil {
				return fmt.Errorf("seed wallet %s: %w", p.ID, err)
			}
		}
		return nil
	})
}
