package domain

import (
	"encoding/xml"
	"strings"
)

// Modality is one of the ways a location can be supplied.
type Modality string

const (
	ModalityGeoCoordinate    Modality = "geo_coordinate"
	ModalityDevicePostalCode Modality = "device_postal_code"
	ModalitySpokenAddress    Modality = "spoken_address"
	ModalityExplicitZip      Modality = "explicit_zip"
)

// LocationInput is the closed set of raw location inputs. Only the types in
// this package implement it.
type LocationInput interface {
	Modality() Modality
	isLocationInput()
}

// GeoCoordinate is a live geolocation reading reported by the device.
type GeoCoordinate struct {
	// Reported is false when the host sent no geolocation object at all.
	Reported bool `json:"reported"`
	// ServicesEnabled mirrors the device's location-services access flag.
	ServicesEnabled bool      `json:"services_enabled"`
	Point           *GeoPoint `json:"point,omitempty"`
}

// DevicePostalCode asks the device-address provider for the registered postal code.
type DevicePostalCode struct {
	DeviceID string `json:"device_id"`
}

// SpokenAddress is a street address as recognised from speech.
type SpokenAddress struct {
	Street string `json:"street"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
}

// HasLocality reports whether a city or state accompanies the street.
func (a SpokenAddress) HasLocality() bool {
	return a.City != "" || a.State != ""
}

// ExplicitZip is a postal code the user said out loud.
type ExplicitZip struct {
	Code string `json:"code"`
}

func (GeoCoordinate) Modality() Modality    { return ModalityGeoCoordinate }
func (DevicePostalCode) Modality() Modality { return ModalityDevicePostalCode }
func (SpokenAddress) Modality() Modality    { return ModalitySpokenAddress }
func (ExplicitZip) Modality() Modality      { return ModalityExplicitZip }

func (GeoCoordinate) isLocationInput()    {}
func (DevicePostalCode) isLocationInput() {}
func (SpokenAddress) isLocationInput()    {}
func (ExplicitZip) isLocationInput()      {}

// NormalizedAddress is free of spoken number words and of the ambiguous
// numbered-street phrasing that the normalizer rejects.
type NormalizedAddress struct {
	Text string `json:"text"`
}

// DeviceAddress is what the device-address provider returns.
type DeviceAddress struct {
	CountryCode string  `json:"countryCode"`
	PostalCode  *string `json:"postalCode"`
}

// SearchLabel describes how a search was located, for speech, cards and email.
type SearchLabel struct {
	Modality   Modality
	PostalCode string // only set for ModalityExplicitZip
}

// Spoken is the SSML phrase used in speech, e.g. "near you".
func (l SearchLabel) Spoken() string {
	switch l.Modality {
	case ModalityExplicitZip:
		return `at <say-as interpret-as="digits">` + EscapeSSML(l.PostalCode) + `</say-as>`
	case ModalitySpokenAddress:
		return "at given address"
	default:
		return "near you"
	}
}

// Visual is the plain-text phrase used on cards, directives and email.
func (l SearchLabel) Visual() string {
	switch l.Modality {
	case ModalityExplicitZip:
		return "at " + l.PostalCode
	case ModalitySpokenAddress:
		return "at given address"
	default:
		return "near you"
	}
}

// ShowsDistance is false for postal-code searches: that coordinate is a
// zip-code centroid, not the user's position.
func (l SearchLabel) ShowsDistance() bool {
	return l.Modality != ModalityDevicePostalCode && l.Modality != ModalityExplicitZip
}

// EscapeSSML escapes s for use as SSML character data.
func EscapeSSML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
