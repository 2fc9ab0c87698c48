package postal_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samirrijal/restroomfinder/internal/adapters/postal"
	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

const sample = `[
	{"zip": "98109", "city": "Seattle", "state": "WA", "latitude": 47.6318, "longitude": -122.3447},
	{"zip": "00601", "city": "Adjuntas", "state": "PR", "latitude": "18.180555", "longitude": "-66.749961"}
]`

func TestDecode(t *testing.T) {
	codes, err := postal.Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected 2 codes, got %d", len(codes))
	}
	if codes[1].Code != "00601" || codes[1].Latitude != 18.180555 {
		t.Errorf("string coordinates not parsed: %+v", codes[1])
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := map[string]string{
		"missing zip":    `[{"latitude": 1, "longitude": 2}]`,
		"out of range":   `[{"zip": "1", "latitude": 91, "longitude": 0}]`,
		"bad coordinate": `[{"zip": "1", "latitude": "north", "longitude": 0}]`,
		"not an array":   `{"zip": "1"}`,
	}
	for name, input := range tests {
		if _, err := postal.Decode(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestTable_Lookup(t *testing.T) {
	table := postal.NewTable([]domain.PostalCode{{Code: "98109", Latitude: 47.63, Longitude: -122.34}})

	if table.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", table.Len())
	}
	p, ok := table.Lookup("98109")
	if !ok || p.Latitude != 47.63 {
		t.Errorf("unexpected lookup %+v %v", p, ok)
	}
	if _, ok := table.Lookup("98109-1234"); ok {
		t.Error("lookups must match exactly")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zips.json")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	table, err := postal.LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", table.Len())
	}

	if _, err := postal.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

type mockRepo struct {
	codes []domain.PostalCode
	err   error
}

func (m *mockRepo) UpsertBatch(ctx context.Context, codes []domain.PostalCode) error { return nil }
func (m *mockRepo) GetByCode(ctx context.Context, code string) (*domain.PostalCode, error) {
	return nil, domain.ErrPostalCodeNotFound
}
func (m *mockRepo) All(ctx context.Context) ([]domain.PostalCode, error) { return m.codes, m.err }

func TestLoadRepository(t *testing.T) {
	repo := &mockRepo{codes: []domain.PostalCode{{Code: "10001", Latitude: 40.75, Longitude: -73.99}}}
	table, err := postal.LoadRepository(context.Background(), repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := table.Lookup("10001"); !ok {
		t.Error("expected 10001 to be loaded")
	}

	boom := errors.New("db down")
	if _, err := postal.LoadRepository(context.Background(), &mockRepo{err: boom}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped repo error, got %v", err)
	}
}
