package domain

// PostalCode is one row of the postal-code-to-coordinate table.
type PostalCode struct {
	Code      string  `json:"zip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
}

// Point returns the postal code's centroid.
func (p PostalCode) Point() GeoPoint {
	return GeoPoint{Lat: p.Latitude, Lon: p.Longitude}
}

// GeocodeQuery is a free-text address lookup, optionally biased to Bounds.
type GeocodeQuery struct {
	Address string  `json:"address"`
	Bounds  *Bounds `json:"bounds,omitempty"`
}
