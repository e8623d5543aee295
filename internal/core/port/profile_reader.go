package port

import (
	"context"

	"mesa-boost/internal/core/domain"
)

// ProfileReader reads profile attributes owned by the profile service.
type ProfileReader interface {
	// GetProfile returns the profile or nil when unknown.
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	// ListProfiles returns profiles for a listing surface in baseline
	// relevance order. Empty category or region matches all.
	ListProfiles(ctx context.Context, category, region string, limit int) ([]string, error)
}

// Catalog reads boost package definitions.
type Catalog interface {
	// GetPackage returns the package or nil when unknown.
	GetPackage(ctx context.Context, id string) (*domain.Package, error)
	ListPackages(ctx context.Context) ([]domain.Package, error)
}
