// Package postal loads the postal code table used to resolve zip codes to
// coordinates.
package postal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/ports"
)

// Table implements ports.PostalLookup over an in-memory map. It is built once
// and never mutated, so concurrent lookups need no locking.
type Table struct {
	codes map[string]domain.PostalCode
}

// NewTable builds a Table from codes. Later duplicates replace earlier ones.
func NewTable(codes []domain.PostalCode) *Table {
	m := make(map[string]domain.PostalCode, len(codes))
	for _, c := range codes {
		m[c.Code] = c
	}
	return &Table{codes: m}
}

// Lookup returns the entry for code. Codes are matched exactly.
func (t *Table) Lookup(code string) (domain.PostalCode, bool) {
	p, ok := t.codes[code]
	return p, ok
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.codes) }

// LoadFile reads a JSON array of postal code entries from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open postal table: %w", err)
	}
	defer f.Close()

	codes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return NewTable(codes), nil
}

// LoadRepository reads the whole table from repo.
func LoadRepository(ctx context.Context, repo ports.PostalCodeRepository) (*Table, error) {
	codes, err := repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load postal table: %w", err)
	}
	return NewTable(codes), nil
}

// entry is one record of the published zip code dataset. Coordinates appear
// both as numbers and as strings across dataset versions.
type entry struct {
	Zip       string     `json:"zip"`
	City      string     `json:"city"`
	State     string     `json:"state"`
	Latitude  coordinate `json:"latitude"`
	Longitude coordinate `json:"longitude"`
}

type coordinate float64

func (c *coordinate) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		return fmt.Errorf("missing coordinate")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("coordinate %q: %w", s, err)
	}
	*c = coordinate(f)
	return nil
}

// Decode parses a JSON array of entries. Entries without a zip or with
// out-of-range coordinates are rejected.
func Decode(r io.Reader) ([]domain.PostalCode, error) {
	var entries []entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}

	codes := make([]domain.PostalCode, 0, len(entries))
	for i, e := range entries {
		zip := strings.TrimSpace(e.Zip)
		if zip == "" {
			return nil, fmt.Errorf("entry %d: missing zip", i)
		}
		p := domain.PostalCode{
			Code:      zip,
			Latitude:  float64(e.Latitude),
			Longitude: float64(e.Longitude),
			City:      e.City,
			State:     e.State,
		}
		if !p.Point().Valid() {
			return nil, fmt.Errorf("entry %d (%s): coordinate out of range", i, zip)
		}
		codes = append(codes, p)
	}
	return codes, nil
}
