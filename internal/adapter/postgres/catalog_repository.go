package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-boost/internal/core/domain"
)

// CatalogRepository reads boost packages.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// GetPackage returns a package by id.
func (r *CatalogRepository) GetPackage(ctx context.Context, id string) (*domain.Package, error) {
	p, err := scanPackage(r.pool.QueryRow(ctx, `SELECT id, name, duration_seconds, base_price, features, created_at, updated_at
        FROM boost_packages WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPackages returns the catalog ordered by price.
func (r *CatalogRepository) ListPackages(ctx context.Context) ([]domain.Package, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, duration_seconds, base_price, features, created_at, updated_at
        FROM boost_packages ORDER BY base_price, id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Package, error) {
		return scanPackage(row)
	})
}

func scanPackage(row pgx.Row) (domain.Package, error) {
	var (
		p        domain.Package
		seconds  int64
		features []byte
	)
	err := row.Scan(&p.ID, &p.Name, &seconds, &p.BasePrice, &features, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.Duration = time.Duration(seconds) * time.Second
	if err = json.Unmarshal(features, &p.Features); err != nil {
		// tolerate malformed feature lists
		p.Features = nil
	}
	return p, nil
}
