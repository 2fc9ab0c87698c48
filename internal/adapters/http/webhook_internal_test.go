package http

import (
	"reflect"
	"testing"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

func TestSearchTokens(t *testing.T) {
	stored := make([]string, 1, 4)
	stored[0] = domain.FilterAccessible
	pending := &domain.PendingSearch{Filters: stored}

	got := searchTokens(pending, "changing table")
	want := []string{domain.FilterAccessible, domain.FilterChangingTable}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("searchTokens = %v, want %v", got, want)
	}

	got[0] = "MUTATED"
	if spare := stored[:2]; spare[0] != domain.FilterAccessible || spare[1] != "" {
		t.Errorf("stored filters were written through: %v", spare)
	}

	if got := searchTokens(nil, ""); len(got) != 0 {
		t.Errorf("expected no tokens, got %v", got)
	}
	if got := searchTokens(nil, "unisex"); !reflect.DeepEqual(got, []string{domain.FilterUnisex}) {
		t.Errorf("unexpected tokens %v", got)
	}
}
