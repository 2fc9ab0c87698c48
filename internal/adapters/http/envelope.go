package http

import (
	"encoding/json"
	"strings"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
)

// Host request types.
const (
	RequestLaunch         = "LaunchRequest"
	RequestIntent         = "IntentRequest"
	RequestSessionEnded   = "SessionEndedRequest"
	RequestSessionResumed = "SessionResumedRequest"
	RequestAPIInvoked     = "Dialog.API.Invoked"
)

// Built-in intents.
const (
	IntentYes    = "AMAZON.YesIntent"
	IntentNo     = "AMAZON.NoIntent"
	IntentHelp   = "AMAZON.HelpIntent"
	IntentCancel = "AMAZON.CancelIntent"
	IntentStop   = "AMAZON.StopIntent"
)

// Device interfaces the host may advertise.
const (
	interfaceGeolocation = "Geolocation"
	interfaceAPL         = "Alexa.Presentation.APL"
	interfaceAppLink     = "AppLink"
)

const (
	scopeGranted  = "GRANTED"
	scopeDenied   = "DENIED"
	accessEnabled = "ENABLED"
	linkFailure   = "FAILURE"
)

// RequestEnvelope is the JSON body the voice host posts for every turn.
type RequestEnvelope struct {
	Version string          `json:"version" validate:"required"`
	Session *SessionPayload `json:"session,omitempty"`
	Context ContextPayload  `json:"context"`
	Request RequestPayload  `json:"request"`
}

// SessionPayload carries the attributes we round-trip between turns.
type SessionPayload struct {
	New        bool            `json:"new"`
	SessionID  string          `json:"sessionId"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

type ContextPayload struct {
	System      SystemPayload       `json:"System"`
	Geolocation *GeolocationPayload `json:"Geolocation,omitempty"`
	AppLink     *AppLinkPayload     `json:"AppLink,omitempty"`
}

type SystemPayload struct {
	Device         DevicePayload `json:"device"`
	User           UserPayload   `json:"user"`
	APIEndpoint    string        `json:"apiEndpoint"`
	APIAccessToken string        `json:"apiAccessToken"`
}

type DevicePayload struct {
	DeviceID            string                     `json:"deviceId"`
	SupportedInterfaces map[string]json.RawMessage `json:"supportedInterfaces"`
}

type UserPayload struct {
	UserID      string              `json:"userId"`
	Permissions *PermissionsPayload `json:"permissions,omitempty"`
}

type PermissionsPayload struct {
	ConsentToken string                 `json:"consentToken,omitempty"`
	Scopes       map[string]ScopeStatus `json:"scopes,omitempty"`
}

type ScopeStatus struct {
	Status string `json:"status"`
}

type GeolocationPayload struct {
	LocationServices *struct {
		Access string `json:"access"`
		Status string `json:"status"`
	} `json:"locationServices,omitempty"`
	Coordinate *struct {
		Latitude  float64 `json:"latitudeInDegrees"`
		Longitude float64 `json:"longitudeInDegrees"`
		Accuracy  float64 `json:"accuracyInMeters"`
	} `json:"coordinate,omitempty"`
}

type AppLinkPayload struct {
	SupportedCatalogTypes []string `json:"supportedCatalogTypes"`
}

// RequestPayload is the union of the request types we handle.
type RequestPayload struct {
	Type       string         `json:"type" validate:"required"`
	RequestID  string         `json:"requestId"`
	Locale     string         `json:"locale,omitempty"`
	Intent     *IntentPayload `json:"intent,omitempty"`
	APIRequest *APIRequest    `json:"apiRequest,omitempty"`
	Cause      *ResumeCause   `json:"cause,omitempty"`
	Reason     string         `json:"reason,omitempty"`
}

type IntentPayload struct {
	Name  string                 `json:"name"`
	Slots map[string]SlotPayload `json:"slots,omitempty"`
}

type SlotPayload struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// APIRequest is a dialog API invocation.
type APIRequest struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ResumeCause reports the outcome of an app-link connection.
type ResumeCause struct {
	Type   string `json:"type"`
	Result *struct {
		Primary  *linkStatus `json:"primary,omitempty"`
		Fallback *linkStatus `json:"fallback,omitempty"`
	} `json:"result,omitempty"`
}

type linkStatus struct {
	Status string `json:"status"`
}

// slot returns the trimmed value of the named intent slot.
func (r RequestPayload) slot(name string) string {
	if r.Intent == nil {
		return ""
	}
	return strings.TrimSpace(r.Intent.Slots[name].Value)
}

func (e *RequestEnvelope) supports(iface string) bool {
	_, ok := e.Context.System.Device.SupportedInterfaces[iface]
	return ok
}

func (e *RequestEnvelope) scopeStatus(scope string) string {
	p := e.Context.System.User.Permissions
	if p == nil {
		return ""
	}
	return p.Scopes[scope].Status
}

// RequestContext builds the per-request snapshot the core works from.
// Address and email consent are only refused up front when the host says so
// explicitly; otherwise the host API answers with 403.
func (e *RequestEnvelope) RequestContext() domain.RequestContext {
	sys := e.Context.System
	hasToken := sys.APIAccessToken != ""

	rc := domain.RequestContext{
		Permissions: domain.PermissionContext{
			HasEmailConsent:          hasToken && e.scopeStatus(domain.ScopeEmail) != scopeDenied,
			HasGeoConsent:            e.scopeStatus(domain.ScopeGeolocation) == scopeGranted,
			HasAddressConsent:        hasToken && e.scopeStatus(domain.ScopeDeviceAddress) != scopeDenied,
			SupportsGraphicalChannel: e.supports(interfaceAPL),
			SupportsAppLink:          e.supports(interfaceAppLink),
			SupportsGeolocation:      e.supports(interfaceGeolocation),
		},
		Device: domain.DeviceContext{
			DeviceID:       sys.Device.DeviceID,
			APIEndpoint:    sys.APIEndpoint,
			APIAccessToken: sys.APIAccessToken,
		},
	}
	if e.Context.AppLink != nil {
		rc.Device.CatalogTypes = e.Context.AppLink.SupportedCatalogTypes
	}

	if geo := e.Context.Geolocation; geo != nil {
		rc.Geolocation.Reported = true
		rc.Geolocation.ServicesEnabled = geo.LocationServices == nil || geo.LocationServices.Access == accessEnabled
		if geo.Coordinate != nil {
			rc.Geolocation.Point = &domain.GeoPoint{Lat: geo.Coordinate.Latitude, Lon: geo.Coordinate.Longitude}
		}
	}
	return rc
}

// LoadSession decodes the session attributes. Missing or malformed attributes
// yield an idle session.
func (e *RequestEnvelope) LoadSession() *domain.Session {
	s := &domain.Session{}
	if e.Session == nil || len(e.Session.Attributes) == 0 {
		return s
	}
	if err := json.Unmarshal(e.Session.Attributes, s); err != nil {
		return &domain.Session{}
	}
	return s
}

// appLinkResult is nil when the request carries no connection result.
func (r RequestPayload) appLinkResult() *usecases.AppLinkResult {
	if r.Cause == nil || r.Cause.Result == nil {
		return nil
	}
	res := r.Cause.Result
	return &usecases.AppLinkResult{
		PrimaryFailed:  res.Primary != nil && res.Primary.Status == linkFailure,
		FallbackFailed: res.Fallback != nil && res.Fallback.Status == linkFailure,
	}
}

// ResponseEnvelope is what we answer the host with.
type ResponseEnvelope struct {
	Version           string          `json:"version"`
	SessionAttributes *domain.Session `json:"sessionAttributes,omitempty"`
	Response          ResponseBody    `json:"response"`
}

type ResponseBody struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	Card             *CardPayload  `json:"card,omitempty"`
	Directives       []Directive   `json:"directives,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	SSML string `json:"ssml"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

type CardPayload struct {
	Type        string   `json:"type"`
	Title       string   `json:"title,omitempty"`
	Content     string   `json:"content,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// Directive is any host directive; only the fields of its type are set.
type Directive struct {
	Type           string          `json:"type"`
	Target         string          `json:"target,omitempty"`
	Period         *DirectivePhase `json:"period,omitempty"`
	UpdatedRequest *UpdatedRequest `json:"updatedRequest,omitempty"`
	URI            string          `json:"uri,omitempty"`
	Input          any             `json:"input,omitempty"`
	Token          string          `json:"token,omitempty"`
	Document       any             `json:"document,omitempty"`
	Datasources    any             `json:"datasources,omitempty"`
}

type DirectivePhase struct {
	Until string `json:"until"`
}

type UpdatedRequest struct {
	Type   string        `json:"type"`
	Intent IntentPayload `json:"intent"`
}

func ssml(text string) OutputSpeech {
	return OutputSpeech{Type: "SSML", SSML: "<speak>" + text + "</speak>"}
}
