package domain

import (
	"fmt"
	"math"
)

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both fields are finite and within WGS 84 ranges.
func (p GeoPoint) Valid() bool {
	return isFinite(p.Lat) && isFinite(p.Lon) &&
		math.Abs(p.Lat) <= 90 && math.Abs(p.Lon) <= 180
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// BoundingHint biases a free-text geocode toward a plausible region.
// It is never itself a search result.
type BoundingHint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ResolvedCoordinate is the only input the directory query accepts.
type ResolvedCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewResolvedCoordinate validates lat/lon before building a ResolvedCoordinate.
func NewResolvedCoordinate(lat, lon float64) (ResolvedCoordinate, error) {
	if !(GeoPoint{Lat: lat, Lon: lon}).Valid() {
		return ResolvedCoordinate{}, fmt.Errorf("coordinate out of range: %v, %v", lat, lon)
	}
	return ResolvedCoordinate{Latitude: lat, Longitude: lon}, nil
}

// Point converts the coordinate to a GeoPoint.
func (c ResolvedCoordinate) Point() GeoPoint {
	return GeoPoint{Lat: c.Latitude, Lon: c.Longitude}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
