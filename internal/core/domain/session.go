package domain

// DialogState tracks the offer-directions follow-up across two requests.
type DialogState string

const (
	StateIdle                DialogState = ""
	StateOfferedDirections   DialogState = "OFFER_DIRECTIONS"
	StateLaunchedExternalApp DialogState = "LAUNCH_DIRECTIONS"
)

// DirectionsOffer is the coordinate offered for turn-by-turn directions.
type DirectionsOffer struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the offered coordinate can be handed to a map app.
func (o DirectionsOffer) Valid() bool {
	return GeoPoint{Lat: o.Latitude, Lon: o.Longitude}.Valid()
}

// PendingSearch is what a dialog delegation step stores for the delegated intent.
type PendingSearch struct {
	Filters []string `json:"filters,omitempty"`
	Street  string   `json:"street,omitempty"`
	City    string   `json:"city,omitempty"`
	State   string   `json:"state,omitempty"`
	ZipCode string   `json:"zipcode,omitempty"`
}

// Session is the typed session state owned by the host and round-tripped per request.
// State and Offer are only ever changed together through the methods below.
type Session struct {
	State  DialogState      `json:"state,omitempty"`
	Offer  *DirectionsOffer `json:"offer,omitempty"`
	Search *PendingSearch   `json:"search,omitempty"`
}

// OfferDirections moves to StateOfferedDirections with the given coordinate.
func (s *Session) OfferDirections(o DirectionsOffer) {
	s.State = StateOfferedDirections
	s.Offer = &o
}

// LaunchExternalApp moves to StateLaunchedExternalApp and drops the offer.
func (s *Session) LaunchExternalApp() {
	s.State = StateLaunchedExternalApp
	s.Offer = nil
}

// Reset returns to StateIdle.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Offer = nil
}

// PendingOffer returns the offer when the session is awaiting a yes/no answer.
func (s Session) PendingOffer() (DirectionsOffer, bool) {
	if s.State != StateOfferedDirections || s.Offer == nil {
		return DirectionsOffer{}, false
	}
	return *s.Offer, true
}
