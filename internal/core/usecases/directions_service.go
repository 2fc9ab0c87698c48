package usecases

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/pkg/telemetry"
)

// Map app identifiers per app-store catalog.
const (
	AppleMapsIdentifier  = "id915056765"
	GoogleMapsIdentifier = "com.google.android.apps.maps"
)

// AppLinkResult is the outcome of one app-link attempt reported on session resume.
type AppLinkResult struct {
	PrimaryFailed  bool
	FallbackFailed bool
}

// DirectionsService drives the offer-directions follow-up.
type DirectionsService struct{}

// NewDirectionsService creates a new DirectionsService.
func NewDirectionsService() *DirectionsService {
	return &DirectionsService{}
}

// Answer handles a yes/no reply to a directions offer. It fails with
// domain.ErrInvalidSessionState unless session holds a pending offer.
func (s *DirectionsService) Answer(ctx context.Context, yes bool, session *domain.Session, rc domain.RequestContext) (domain.ComposedResponse, error) {
	_, span := tracer.Start(ctx, "DirectionsService.Answer")
	defer span.End()
	span.SetAttributes(
		attribute.String(telemetry.AttrDialogState, string(session.State)),
		attribute.Bool("directions.accepted", yes),
	)

	offer, ok := session.PendingOffer()
	if !ok {
		return domain.ComposedResponse{}, fmt.Errorf("%w: state %q", domain.ErrInvalidSessionState, session.State)
	}

	if !yes {
		session.Reset()
		return domain.ComposedResponse{EndsInteraction: true}, nil
	}

	if !rc.Permissions.SupportsAppLink {
		return domain.ComposedResponse{}, fmt.Errorf("%w: app links not supported", domain.ErrInvalidSessionState)
	}
	if !offer.Valid() {
		return domain.ComposedResponse{}, fmt.Errorf("%w: invalid offered coordinate %v,%v",
			domain.ErrInvalidSessionState, offer.Latitude, offer.Longitude)
	}

	var directive *domain.AppLinkDirective
	switch {
	case rc.Device.SupportsCatalog(domain.CatalogGooglePlayStore):
		directive = &domain.AppLinkDirective{
			Catalog:    domain.CatalogGooglePlayStore,
			Identifier: GoogleMapsIdentifier,
			URL:        GoogleMapsDirectionsURL(offer.Latitude, offer.Longitude),
		}
	case rc.Device.SupportsCatalog(domain.CatalogIOSAppStore):
		directive = &domain.AppLinkDirective{
			Catalog:    domain.CatalogIOSAppStore,
			Identifier: AppleMapsIdentifier,
			URL:        fmt.Sprintf("https://maps.apple.com/?daddr=%v,%v", offer.Latitude, offer.Longitude),
		}
	default:
		return domain.ComposedResponse{}, fmt.Errorf("%w: no supported app catalog in %v",
			domain.ErrInvalidSessionState, rc.Device.CatalogTypes)
	}
	directive.OnAppLinkedPrompt = MsgAppLinked
	directive.OnScreenLockedPrompt = MsgScreenLocked

	session.LaunchExternalApp()
	return domain.ComposedResponse{AppLinkDirective: directive}, nil
}

// Resume handles the return from an app-link attempt.
func (s *DirectionsService) Resume(_ context.Context, result *AppLinkResult, session *domain.Session) domain.ComposedResponse {
	session.Reset()
	resp := domain.ComposedResponse{EndsInteraction: true}
	if result != nil && result.PrimaryFailed && result.FallbackFailed {
		resp.Speech = MsgDirectionsLoadFailed
	}
	return resp
}

// GoogleMapsDirectionsURL links to driving directions to lat,lon.
func GoogleMapsDirectionsURL(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%v,%v", lat, lon)
}
