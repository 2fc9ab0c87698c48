package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/ports"
)

// restroomCacheTTL is how long directory results are cached, in seconds.
const restroomCacheTTL = 300

// RestroomService handles directory queries and result post-processing.
type RestroomService struct {
	directory ports.DirectoryProvider
	cache     ports.CacheService
}

// NewRestroomService creates a new RestroomService.
func NewRestroomService(directory ports.DirectoryProvider, cache ports.CacheService) *RestroomService {
	return &RestroomService{directory: directory, cache: cache}
}

// Search returns restrooms near at, nearest first. The changing-table filter
// is applied here since the directory does not support it. Distances are
// rounded to hundredths of a mile and ratings are annotated.
func (s *RestroomService) Search(ctx context.Context, at domain.ResolvedCoordinate, filters domain.SearchFilters) ([]domain.RestroomRecord, error) {
	// Try cache
	cacheKey := fmt.Sprintf("restrooms:%.4f:%.4f:%t:%t:%t",
		at.Latitude, at.Longitude, filters.Accessible, filters.Unisex, filters.ChangingTable)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var records []domain.RestroomRecord
			if err := json.Unmarshal(data, &records); err == nil {
				return records, nil
			}
		}
	}

	records, err := s.directory.FindByLocation(ctx, at, filters)
	if err != nil {
		return nil, fmt.Errorf("directory search: %w", err)
	}

	out := make([]domain.RestroomRecord, 0, len(records))
	for _, r := range records {
		if filters.ChangingTable && !r.ChangingTable {
			continue
		}
		if r.Distance != nil {
			d := RoundDistance(*r.Distance)
			r.Distance = &d
		}
		r.PositiveRatingPercent = PercentPositive(r.Upvotes, r.Downvotes)
		out = append(out, r)
	}

	// Cache for 5 minutes
	if s.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, restroomCacheTTL)
		}
	}

	return out, nil
}

// RoundDistance rounds half-up to two decimal places, so 2.345 is 2.35.
func RoundDistance(miles float64) float64 {
	return math.Round((miles+1e-9)*100) / 100
}
