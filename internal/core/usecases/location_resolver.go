package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/ports"
	"github.com/samirrijal/restroomfinder/internal/pkg/geospatial"
	"github.com/samirrijal/restroomfinder/internal/pkg/logging"
)

// supportedCountry is the only country the postal table and directory cover.
const supportedCountry = "US"

type modalityResolver func(ctx context.Context, in domain.LocationInput, rc domain.RequestContext) (domain.ResolvedCoordinate, error)

// LocationResolver turns a raw location input into a coordinate.
type LocationResolver struct {
	geocoder     ports.Geocoder
	devices      ports.DeviceAddressProvider
	postal       ports.PostalLookup
	boundsRadius float64
	resolvers    map[domain.Modality]modalityResolver
}

// NewLocationResolver creates a new LocationResolver. boundsRadiusMeters
// widens the geocoding bias around a bounding hint; zero biases to the point.
func NewLocationResolver(
	geocoder ports.Geocoder,
	devices ports.DeviceAddressProvider,
	postal ports.PostalLookup,
	boundsRadiusMeters float64,
) *LocationResolver {
	r := &LocationResolver{
		geocoder:     geocoder,
		devices:      devices,
		postal:       postal,
		boundsRadius: boundsRadiusMeters,
	}
	r.resolvers = map[domain.Modality]modalityResolver{
		domain.ModalityGeoCoordinate:    r.resolveGeo,
		domain.ModalityDevicePostalCode: r.resolveDevicePostalCode,
		domain.ModalitySpokenAddress:    r.resolveSpokenAddress,
		domain.ModalityExplicitZip:      r.resolveExplicitZip,
	}
	return r
}

// Resolve returns the coordinate for in. Anticipated failures are returned as
// *domain.LocationError; anything else is a provider failure.
func (r *LocationResolver) Resolve(ctx context.Context, in domain.LocationInput, rc domain.RequestContext) (domain.ResolvedCoordinate, error) {
	if in == nil {
		return domain.ResolvedCoordinate{}, fmt.Errorf("resolve location: no input")
	}
	resolve, ok := r.resolvers[in.Modality()]
	if !ok {
		return domain.ResolvedCoordinate{}, fmt.Errorf("resolve location: unsupported modality %q", in.Modality())
	}
	return resolve(ctx, in, rc)
}

func (r *LocationResolver) resolveGeo(_ context.Context, in domain.LocationInput, rc domain.RequestContext) (domain.ResolvedCoordinate, error) {
	geo := in.(domain.GeoCoordinate)
	if !rc.Permissions.HasGeoConsent {
		return domain.ResolvedCoordinate{}, &domain.LocationError{
			Reason:   domain.ReasonMissingConsent,
			Modality: domain.ModalityGeoCoordinate,
			Scope:    domain.ScopeGeolocation,
		}
	}
	if geo.Reported && !geo.ServicesEnabled {
		return domain.ResolvedCoordinate{}, &domain.LocationError{
			Reason:   domain.ReasonDeviceLocationUnavailable,
			Modality: domain.ModalityGeoCoordinate,
			Detail:   domain.DetailServicesDisabled,
		}
	}
	if !geo.Reported || geo.Point == nil {
		return domain.ResolvedCoordinate{}, &domain.LocationError{
			Reason:   domain.ReasonDeviceLocationUnavailable,
			Modality: domain.ModalityGeoCoordinate,
			Detail:   domain.DetailNoCoordinate,
		}
	}
	coord, err := domain.NewResolvedCoordinate(geo.Point.Lat, geo.Point.Lon)
	if err != nil {
		return domain.ResolvedCoordinate{}, &domain.LocationError{
			Reason:   domain.ReasonDeviceLocationUnavailable,
			Modality: domain.ModalityGeoCoordinate,
			Detail:   domain.DetailNoCoordinate,
			Err:      err,
		}
	}
	return coord, nil
}

func (r *LocationResolver) resolveDevicePostalCode(ctx context.Context, in domain.LocationInput, rc domain.RequestContext) (domain.ResolvedCoordinate, error) {
	dev := in.(domain.DevicePostalCode)
	missingConsent := &domain.LocationError{
		Reason:   domain.ReasonMissingConsent,
		Modality: domain.ModalityDevicePostalCode,
		Scope:    domain.ScopeDeviceAddress,
	}
	if !rc.Permissions.HasAddressConsent {
		return domain.ResolvedCoordinate{}, missingConsent
	}

	if r.devices == nil {
		return domain.ResolvedCoordinate{}, fmt.Errorf("device address: no provider configured")
	}
	device := rc.Device
	if dev.DeviceID != "" {
		device.DeviceID = dev.DeviceID
	}
	addr, err := r.devices.DeviceAddress(ctx, device)
	if err != nil {
		if errors.Is(err, domain.ErrConsentRequired) {
			missingConsent.Err = err
			return domain.ResolvedCoordinate{}, missingConsent
		}
		return domain.ResolvedCoordinate{}, fmt.Errorf("device address: %w", err)
	}

	if addr.CountryCode != supportedCountry {
		return domain.ResolvedCoordinate{}, &domain.LocationError{
			Reason:   domain.ReasonUnsupportedCountry,
			Modality: domain.ModalityDevicePostalCode,
			Detail:   addr.CountryCode,
		}
	}
	if addr.PostalCode == nil || *addr.PostalCode == "" {
		return domain.ResolvedCoordinate{}, &domain.LocationError{
			Reason:   domain.ReasonInvalidPostalCode,
			Modality: domain.ModalityDevicePostalCode,
		}
	}
	return r.lookupPostalCode(domain.ModalityDevicePostalCode, *addr.PostalCode)
}

func (r *LocationResolver) resolveExplicitZip(_ context.Context, in domain.LocationInput, _ domain.RequestContext) (domain.ResolvedCoordinate, error) {
	zip := in.(domain.ExplicitZip)
	return r.lookupPostalCode(domain.ModalityExplicitZip, strings.TrimSpace(zip.Code))
}

func (r *LocationResolver) lookupPostalCode(m domain.Modality, code string) (domain.ResolvedCoordinate, error) {
	invalid := &domain.LocationError{
		Reason:   domain.ReasonInvalidPostalCode,
		Modality: m,
		Detail:   code,
	}
	if code == "" || r.postal == nil {
		return domain.ResolvedCoordinate{}, invalid
	}
	pc, ok := r.postal.Lookup(code)
	if !ok {
		invalid.Err = domain.ErrPostalCodeNotFound
		return domain.ResolvedCoordinate{}, invalid
	}
	coord, err := domain.NewResolvedCoordinate(pc.Latitude, pc.Longitude)
	if err != nil {
		invalid.Err = err
		return domain.ResolvedCoordinate{}, invalid
	}
	return coord, nil
}

func (r *LocationResolver) resolveSpokenAddress(ctx context.Context, in domain.LocationInput, rc domain.RequestContext) (domain.ResolvedCoordinate, error) {
	addr := in.(domain.SpokenAddress)

	normalized, err := NormalizeAddress(addr.Street)
	if err != nil {
		var unparseable *domain.UnparseableAddressError
		if errors.As(err, &unparseable) {
			return domain.ResolvedCoordinate{}, &domain.LocationError{
				Reason:   domain.ReasonAmbiguousAddress,
				Modality: domain.ModalitySpokenAddress,
				Err:      err,
			}
		}
		return domain.ResolvedCoordinate{}, err
	}
	if normalized.Text == "" {
		return domain.ResolvedCoordinate{}, &domain.LocationError{
			Reason:   domain.ReasonAddressNotFound,
			Modality: domain.ModalitySpokenAddress,
		}
	}

	q := domain.GeocodeQuery{Address: joinAddress(normalized.Text, addr.City, addr.State)}
	if !addr.HasLocality() {
		if hint, ok := r.boundingHint(ctx, rc); ok {
			minLat, minLon, maxLat, maxLon := geospatial.BoundingBox(hint.Latitude, hint.Longitude, r.boundsRadius)
			q.Bounds = &domain.Bounds{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}
		}
	}

	point, err := r.geocoder.Geocode(ctx, q)
	if err != nil {
		if errors.Is(err, domain.ErrNoGeocodeResults) {
			return domain.ResolvedCoordinate{}, &domain.LocationError{
				Reason:   domain.ReasonAddressNotFound,
				Modality: domain.ModalitySpokenAddress,
				Err:      err,
			}
		}
		return domain.ResolvedCoordinate{}, fmt.Errorf("geocode address: %w", err)
	}

	coord, err := domain.NewResolvedCoordinate(point.Lat, point.Lon)
	if err != nil {
		return domain.ResolvedCoordinate{}, &domain.LocationError{
			Reason:   domain.ReasonAddressNotFound,
			Modality: domain.ModalitySpokenAddress,
			Err:      err,
		}
	}
	return coord, nil
}

// boundingHint tries the live geolocation, then the device postal code.
// It never fails; ok is false when neither is available.
func (r *LocationResolver) boundingHint(ctx context.Context, rc domain.RequestContext) (domain.BoundingHint, bool) {
	log := logging.FromContext(ctx)

	coord, err := r.resolveGeo(ctx, rc.Geolocation, rc)
	if err == nil {
		return domain.BoundingHint{Latitude: coord.Latitude, Longitude: coord.Longitude}, true
	}
	log.Debug("bounding hint: geolocation unavailable", "error", err)

	coord, err = r.resolveDevicePostalCode(ctx, domain.DevicePostalCode{DeviceID: rc.Device.DeviceID}, rc)
	if err != nil {
		log.Debug("bounding hint: device postal code unavailable", "error", err)
		return domain.BoundingHint{}, false
	}
	return domain.BoundingHint{Latitude: coord.Latitude, Longitude: coord.Longitude}, true
}

func joinAddress(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
