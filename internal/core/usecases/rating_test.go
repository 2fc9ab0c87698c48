package usecases_test

import (
	"testing"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
)

func TestPercentPositive(t *testing.T) {
	tests := []struct {
		name     string
		up, down *int
		want     *int
	}{
		{"all positive", intPtr(10), intPtr(0), intPtr(100)},
		{"floored", intPtr(13), intPtr(6), intPtr(68)},
		{"even split", intPtr(23), intPtr(23), intPtr(50)},
		{"all negative", intPtr(0), intPtr(10), intPtr(0)},
		{"tiny fraction", intPtr(1), intPtr(999), intPtr(0)},
		{"no votes", intPtr(0), intPtr(0), nil},
		{"missing upvotes", nil, intPtr(0), nil},
		{"missing downvotes", intPtr(3), nil, nil},
		{"negative count", intPtr(-1), intPtr(4), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecases.PercentPositive(tt.up, tt.down)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("expected nil, got %d", *got)
			case tt.want != nil && got == nil:
				t.Errorf("expected %d, got nil", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("expected %d, got %d", *tt.want, *got)
			}
		})
	}
}

func TestIsPositivelyRated_Boundary(t *testing.T) {
	if usecases.IsPositivelyRated(domain.RestroomRecord{PositiveRatingPercent: intPtr(69)}) {
		t.Error("69 should not be positively rated")
	}
	if !usecases.IsPositivelyRated(domain.RestroomRecord{PositiveRatingPercent: intPtr(70)}) {
		t.Error("70 should be positively rated")
	}
	if usecases.IsPositivelyRated(domain.RestroomRecord{}) {
		t.Error("unrated record should not be positively rated")
	}
}
