package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-boost/internal/core/domain"
)

// ProfileRepository reads profile attributes.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// GetProfile returns a profile by id.
func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	var (
		p    domain.Profile
		role string
	)
	err := r.pool.QueryRow(ctx, `SELECT id, completeness, rating, country, role, suspended, category, region, listing_score
        FROM profiles WHERE id = $1`, id).
		Scan(&p.ID, &p.Completeness, &p.Rating, &p.Country, &role, &p.Suspended, &p.Category, &p.Region, &p.ListingScore)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Role = domain.Role(role)
	return &p, nil
}

// ListProfiles returns profile ids in baseline listing order.
func (r *ProfileRepository) ListProfiles(ctx context.Context, category, region string, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM profiles
        WHERE NOT suspended
          AND ($1 = '' OR category = $1)
          AND ($2 = '' OR region = $2)
        ORDER BY listing_score DESC, id
        LIMIT $3`, category, region, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
