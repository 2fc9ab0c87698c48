package domain

// Canonical search filter tokens.
const (
	FilterAccessible    = "ACCESSIBLE"
	FilterUnisex        = "UNISEX"
	FilterChangingTable = "CHANGING_TABLE"
)

// SearchFilters are the boolean filters applied to a directory query.
type SearchFilters struct {
	Accessible    bool `json:"accessible"`
	Unisex        bool `json:"unisex"`
	ChangingTable bool `json:"changing_table"`
}

// RestroomRecord is a directory entity. Only PositiveRatingPercent is derived here.
type RestroomRecord struct {
	ID            int      `json:"id,omitempty"`
	Name          string   `json:"name"`
	Street        string   `json:"street"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Distance      *float64 `json:"distance,omitempty"` // miles
	Unisex        bool     `json:"unisex"`
	Accessible    bool     `json:"accessible"`
	ChangingTable bool     `json:"changing_table"`
	Directions    string   `json:"directions,omitempty"`
	Comment       string   `json:"comment,omitempty"`
	Upvotes       *int     `json:"upvote,omitempty"`
	Downvotes     *int     `json:"downvote,omitempty"`

	PositiveRatingPercent *int `json:"positive_rating,omitempty"`
}

// Location returns the record's coordinate.
func (r RestroomRecord) Location() GeoPoint {
	return GeoPoint{Lat: r.Latitude, Lon: r.Longitude}
}

// HasCoordinates reports whether the record carries a usable, non-null-island coordinate.
func (r RestroomRecord) HasCoordinates() bool {
	if r.Latitude == 0 && r.Longitude == 0 {
		return false
	}
	return r.Location().Valid()
}
