package domain

// Permission scopes the host may grant.
const (
	ScopeDeviceAddress = "read::alexa:device:all:address:country_and_postal_code"
	ScopeEmail         = "alexa::profile:email:read"
	ScopeGeolocation   = "alexa::devices:all:geolocation:read"
)

// App-store catalog types an app-link capable device may report.
const (
	CatalogIOSAppStore     = "IOS_APP_STORE"
	CatalogGooglePlayStore = "GOOGLE_PLAY_STORE"
)

// PermissionContext is a read-only per-request snapshot of grants and capabilities.
type PermissionContext struct {
	HasEmailConsent          bool `json:"has_email_consent"`
	HasGeoConsent            bool `json:"has_geo_consent"`
	HasAddressConsent        bool `json:"has_address_consent"`
	SupportsGraphicalChannel bool `json:"supports_graphical_channel"`
	SupportsAppLink          bool `json:"supports_app_link"`
	SupportsGeolocation      bool `json:"supports_geolocation"`
}

// DeviceContext identifies the device and how to reach the host's APIs on its behalf.
type DeviceContext struct {
	DeviceID       string   `json:"device_id"`
	APIEndpoint    string   `json:"api_endpoint"`
	APIAccessToken string   `json:"-"`
	CatalogTypes   []string `json:"catalog_types,omitempty"`
}

// SupportsCatalog reports whether the device lists the given app-store catalog type.
func (d DeviceContext) SupportsCatalog(catalog string) bool {
	for _, c := range d.CatalogTypes {
		if c == catalog {
			return true
		}
	}
	return false
}

// RequestContext bundles everything the host tells us about the caller for one request.
type RequestContext struct {
	Permissions PermissionContext
	Device      DeviceContext
	Geolocation GeoCoordinate
}
