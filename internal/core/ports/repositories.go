package ports

import (
	"context"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// PostalLookup maps a postal code to its centroid. Implementations are built
// once at startup and are read-only afterwards.
type PostalLookup interface {
	Lookup(code string) (domain.PostalCode, bool)
	Len() int
}

// PostalCodeRepository persists the postal code table.
type PostalCodeRepository interface {
	UpsertBatch(ctx context.Context, codes []domain.PostalCode) error
	GetByCode(ctx context.Context, code string) (*domain.PostalCode, error)
	All(ctx context.Context) ([]domain.PostalCode, error)
}

// DirectoryProvider queries the restroom directory.
type DirectoryProvider interface {
	// FindByLocation returns records nearest first. Only the accessible and
	// unisex filters are applied by the provider.
	FindByLocation(ctx context.Context, at domain.ResolvedCoordinate, filters domain.SearchFilters) ([]domain.RestroomRecord, error)
}
