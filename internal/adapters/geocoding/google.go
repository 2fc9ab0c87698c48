// Package geocoding resolves free-text US addresses with the Google Geocoding API.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/ports"
	"github.com/samirrijal/restroomfinder/internal/pkg/logging"
	"github.com/samirrijal/restroomfinder/internal/pkg/metrics"
	"github.com/samirrijal/restroomfinder/internal/pkg/telemetry"
)

// DefaultBaseURL is the Google Maps Platform host.
const DefaultBaseURL = "https://maps.googleapis.com"

const (
	providerName     = "google_geocode"
	statusNoResults  = "ZERO_RESULTS"
	geocodeCacheTTL  = 24 * 60 * 60
	restrictCountry  = "US"
	defaultRateBurst = 5
)

var tracer = otel.Tracer("github.com/samirrijal/restroomfinder/internal/adapters/geocoding")

// Options configures a Google geocoder.
type Options struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	// Cache is optional; results are cached per address and bounds.
	Cache ports.CacheService
}

// Google implements ports.Geocoder on the Google Maps Platform client.
type Google struct {
	client  *maps.Client
	initErr error
	limiter *rate.Limiter
	cache   ports.CacheService
}

// NewGoogle creates a new Google geocoder. An empty API key is accepted;
// every Geocode call then fails with domain.ErrMissingAPIKey.
func NewGoogle(opts Options) *Google {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second
	}
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	g := &Google{
		limiter: rate.NewLimiter(limit, defaultRateBurst),
		cache:   opts.Cache,
	}
	if opts.APIKey == "" {
		g.initErr = domain.ErrMissingAPIKey
		return g
	}
	g.client, g.initErr = maps.NewClient(
		maps.WithAPIKey(opts.APIKey),
		maps.WithBaseURL(strings.TrimSuffix(opts.BaseURL, "/")),
		maps.WithHTTPClient(&http.Client{Timeout: opts.Timeout}),
	)
	if g.initErr != nil {
		g.initErr = fmt.Errorf("geocode client: %w", g.initErr)
	}
	return g
}

// Geocode returns the first match for q.Address, restricted to the US and
// biased toward q.Bounds when set.
func (g *Google) Geocode(ctx context.Context, q domain.GeocodeQuery) (domain.GeoPoint, error) {
	if g.initErr != nil {
		return domain.GeoPoint{}, g.initErr
	}

	ctx, span := tracer.Start(ctx, "Google.Geocode")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrProvider, providerName))

	// Try cache
	cacheKey := "geocode:" + strings.ToLower(q.Address) + ":" + boundsParam(q.Bounds)
	if g.cache != nil {
		if data, err := g.cache.Get(ctx, cacheKey); err == nil {
			var p domain.GeoPoint
			if err := json.Unmarshal(data, &p); err == nil {
				return p, nil
			}
		}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode rate limit: %w", err)
	}

	start := time.Now()
	p, err := g.fetch(ctx, q)
	metrics.ObserveProvider(providerName, start, err)
	if err != nil {
		span.RecordError(err)
		return domain.GeoPoint{}, err
	}

	if g.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			_ = g.cache.Set(ctx, cacheKey, data, geocodeCacheTTL)
		}
	}
	return p, nil
}

func (g *Google) fetch(ctx context.Context, q domain.GeocodeQuery) (domain.GeoPoint, error) {
	req := &maps.GeocodingRequest{
		Address:    q.Address,
		Components: map[maps.Component]string{maps.ComponentCountry: restrictCountry},
	}
	if b := q.Bounds; b != nil {
		req.Bounds = &maps.LatLngBounds{
			NorthEast: maps.LatLng{Lat: b.MaxLat, Lng: b.MaxLon},
			SouthWest: maps.LatLng{Lat: b.MinLat, Lng: b.MinLon},
		}
	}

	results, err := g.client.Geocode(ctx, req)
	if err != nil {
		if isZeroResults(err) {
			return domain.GeoPoint{}, domain.ErrNoGeocodeResults
		}
		return domain.GeoPoint{}, fmt.Errorf("geocode request: %w", err)
	}
	if len(results) == 0 {
		return domain.GeoPoint{}, domain.ErrNoGeocodeResults
	}

	first := results[0]
	if first.PartialMatch {
		logging.FromContext(ctx).Debug("partial geocode match",
			"address", q.Address, "formatted", first.FormattedAddress)
	}
	p := domain.GeoPoint{Lat: first.Geometry.Location.Lat, Lon: first.Geometry.Location.Lng}
	if !p.Valid() {
		return domain.GeoPoint{}, fmt.Errorf("geocode returned invalid coordinate %v,%v", p.Lat, p.Lon)
	}
	return p, nil
}

// isZeroResults reports whether err is the client's ZERO_RESULTS status.
func isZeroResults(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return strings.Contains(err.Error(), statusNoResults)
}

// boundsParam renders b as "south,west|north,east" for cache keys, or "" when b is nil.
func boundsParam(b *domain.Bounds) string {
	if b == nil {
		return ""
	}
	return formatCoord(b.MinLat) + "," + formatCoord(b.MinLon) + "|" +
		formatCoord(b.MaxLat) + "," + formatCoord(b.MaxLon)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
