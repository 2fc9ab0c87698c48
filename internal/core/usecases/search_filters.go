package usecases

import (
	"strings"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// filterSynonyms maps spoken filter values to canonical filter tokens.
var filterSynonyms = map[string]string{
	"accessible":            domain.FilterAccessible,
	"ada":                   domain.FilterAccessible,
	"ada accessible":        domain.FilterAccessible,
	"handicap":              domain.FilterAccessible,
	"handicap accessible":   domain.FilterAccessible,
	"handicapped":           domain.FilterAccessible,
	"wheelchair":            domain.FilterAccessible,
	"wheelchair accessible": domain.FilterAccessible,
	"unisex":                domain.FilterUnisex,
	"gender neutral":        domain.FilterUnisex,
	"all gender":            domain.FilterUnisex,
	"gender inclusive":      domain.FilterUnisex,
	"family":                domain.FilterUnisex,
	"changing table":        domain.FilterChangingTable,
	"changing_table":        domain.FilterChangingTable,
	"changing station":      domain.FilterChangingTable,
	"baby changing":         domain.FilterChangingTable,
	"diaper changing":       domain.FilterChangingTable,
}

// ResolveFilterSynonyms maps raw spoken values to canonical tokens, dropping
// unknown values and duplicates. Order of first appearance is kept.
func ResolveFilterSynonyms(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		token, ok := filterSynonyms[strings.ToLower(strings.TrimSpace(v))]
		if !ok || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}

// TranslateFilters converts canonical filter tokens to SearchFilters.
// Unknown tokens are ignored.
func TranslateFilters(tokens []string) domain.SearchFilters {
	var f domain.SearchFilters
	for _, t := range tokens {
		switch t {
		case domain.FilterAccessible:
			f.Accessible = true
		case domain.FilterUnisex:
			f.Unisex = true
		case domain.FilterChangingTable:
			f.ChangingTable = true
		}
	}
	return f
}

// FilterTokens is the inverse of TranslateFilters.
func FilterTokens(f domain.SearchFilters) []string {
	var out []string
	if f.Accessible {
		out = append(out, domain.FilterAccessible)
	}
	if f.Unisex {
		out = append(out, domain.FilterUnisex)
	}
	if f.ChangingTable {
		out = append(out, domain.FilterChangingTable)
	}
	return out
}
