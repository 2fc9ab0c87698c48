package ports

import (
	"context"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// Geocoder resolves free-text addresses. It returns domain.ErrNoGeocodeResults
// when the provider finds nothing.
type Geocoder interface {
	Geocode(ctx context.Context, q domain.GeocodeQuery) (domain.GeoPoint, error)
}

// DeviceAddressProvider returns the country and postal code registered for a
// device. It returns domain.ErrConsentRequired when the host refuses access.
type DeviceAddressProvider interface {
	DeviceAddress(ctx context.Context, device domain.DeviceContext) (domain.DeviceAddress, error)
}

// ContactProvider returns the caller's email address, or "" when there is none.
type ContactProvider interface {
	Email(ctx context.Context, device domain.DeviceContext) (string, error)
}

// ResultsMailer delivers a results email.
type ResultsMailer interface {
	SendResults(ctx context.Context, msg domain.ResultsEmail) error
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishSearch(ctx context.Context, ev *domain.SearchEvent) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// ContactValidator decides whether a contact address is usable.
type ContactValidator interface {
	ValidEmail(addr string) bool
}
