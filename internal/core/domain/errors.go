package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSessionState is returned when a yes/no directions answer
	// arrives without a pending directions offer.
	ErrInvalidSessionState = errors.New("invalid session state")
	// ErrConsentRequired is returned by host API clients on HTTP 403.
	ErrConsentRequired = errors.New("consent required")
	// ErrNoGeocodeResults is returned by geocoders on a zero-result lookup.
	ErrNoGeocodeResults = errors.New("no geocode results")
	// ErrInvalidResponse is returned when a response mixes channels that cannot coexist.
	ErrInvalidResponse = errors.New("invalid response combination")
	// ErrMissingAPIKey is returned when the geocoder has no credentials configured.
	ErrMissingAPIKey = errors.New("Failed to fetch Google Maps API Key. Check environment variables configuration.")
	// ErrPostalCodeNotFound is returned by postal lookups for unknown codes.
	ErrPostalCodeNotFound = errors.New("postal code not found")
	// ErrUndeliverableEmail marks results emails that no retry can deliver.
	ErrUndeliverableEmail = errors.New("undeliverable results email")
)

// UnparseableAddressError means the spoken street could not be split into
// number and street name without guessing.
type UnparseableAddressError struct {
	Word string
}

func (e *UnparseableAddressError) Error() string {
	return fmt.Sprintf("unparseable address: ambiguous ordinal %q", e.Word)
}

// LocationReason classifies why a location could not be resolved.
type LocationReason string

const (
	ReasonMissingConsent            LocationReason = "missing_consent"
	ReasonInvalidPostalCode         LocationReason = "invalid_postal_code"
	ReasonUnsupportedCountry        LocationReason = "unsupported_country"
	ReasonAddressNotFound           LocationReason = "address_not_found"
	ReasonAmbiguousAddress          LocationReason = "ambiguous_address"
	ReasonDeviceLocationUnavailable LocationReason = "device_location_unavailable"
)

// Details for ReasonDeviceLocationUnavailable.
const (
	DetailServicesDisabled = "services_disabled"
	DetailNoCoordinate     = "no_coordinate"
)

// LocationError is returned by the resolver for every anticipated failure.
type LocationError struct {
	Reason   LocationReason
	Modality Modality
	// Scope is the permission to request when Reason is ReasonMissingConsent.
	Scope string
	// Detail is the offending postal code for ReasonInvalidPostalCode (empty
	// when the provider returned none) or one of the Detail* constants.
	Detail string
	Err    error
}

func (e *LocationError) Error() string {
	msg := fmt.Sprintf("unresolvable location (%s, %s)", e.Modality, e.Reason)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LocationError) Unwrap() error { return e.Err }

// AsLocationError extracts a *LocationError from err's chain.
func AsLocationError(err error) (*LocationError, bool) {
	var le *LocationError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
