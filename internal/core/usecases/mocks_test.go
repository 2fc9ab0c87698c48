package usecases_test

import (
	"context"
	"net/mail"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// --- Mock Geocoder ---

type mockGeocoder struct {
	geocodeFn func(ctx context.Context, q domain.GeocodeQuery) (domain.GeoPoint, error)
	calls     []domain.GeocodeQuery
}

func (m *mockGeocoder) Geocode(ctx context.Context, q domain.GeocodeQuery) (domain.GeoPoint, error) {
	m.calls = append(m.calls, q)
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, q)
	}
	return domain.GeoPoint{}, domain.ErrNoGeocodeResults
}

// --- Mock DeviceAddressProvider ---

type mockDevices struct {
	addressFn func(ctx context.Context, device domain.DeviceContext) (domain.DeviceAddress, error)
	calls     int
}

func (m *mockDevices) DeviceAddress(ctx context.Context, device domain.DeviceContext) (domain.DeviceAddress, error) {
	m.calls++
	if m.addressFn != nil {
		return m.addressFn(ctx, device)
	}
	return domain.DeviceAddress{}, domain.ErrConsentRequired
}

// --- Mock PostalLookup ---

type mockPostal map[string]domain.PostalCode

func (m mockPostal) Lookup(code string) (domain.PostalCode, bool) {
	pc, ok := m[code]
	return pc, ok
}

func (m mockPostal) Len() int { return len(m) }

// --- Mock DirectoryProvider ---

type mockDirectory struct {
	findFn func(ctx context.Context, at domain.ResolvedCoordinate, f domain.SearchFilters) ([]domain.RestroomRecord, error)
	calls  int
}

func (m *mockDirectory) FindByLocation(ctx context.Context, at domain.ResolvedCoordinate, f domain.SearchFilters) ([]domain.RestroomRecord, error) {
	m.calls++
	if m.findFn != nil {
		return m.findFn(ctx, at, f)
	}
	return nil, nil
}

// --- Mock ContactProvider ---

type mockContacts struct {
	email string
	err   error
	calls int
}

func (m *mockContacts) Email(ctx context.Context, device domain.DeviceContext) (string, error) {
	m.calls++
	return m.email, m.err
}

// --- Mock ResultsMailer ---

type mockMailer struct {
	err  error
	sent []domain.ResultsEmail
}

func (m *mockMailer) SendResults(ctx context.Context, msg domain.ResultsEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// --- Mock EventPublisher ---

type mockEvents struct {
	events []domain.SearchEvent
}

func (m *mockEvents) PublishSearch(ctx context.Context, ev *domain.SearchEvent) error {
	m.events = append(m.events, *ev)
	return nil
}

// --- Mock CacheService ---

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, context.Canceled
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl int) error {
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// --- Contact validator ---

type mailValidator struct{}

func (mailValidator) ValidEmail(addr string) bool {
	if addr == "" {
		return false
	}
	a, err := mail.ParseAddress(addr)
	return err == nil && a.Address == addr
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
