package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
)

func offeredSession() *domain.Session {
	s := &domain.Session{}
	s.OfferDirections(domain.DirectionsOffer{Latitude: 47.61, Longitude: -122.33})
	return s
}

func appLinkContext(catalogs ...string) domain.RequestContext {
	return domain.RequestContext{
		Permissions: domain.PermissionContext{SupportsAppLink: true},
		Device:      domain.DeviceContext{DeviceID: "dev-1", CatalogTypes: catalogs},
	}
}

func TestDirectionsService_IdleRejectsYesAndNo(t *testing.T) {
	svc := usecases.NewDirectionsService()
	for _, yes := range []bool{true, false} {
		s := &domain.Session{}
		_, err := svc.Answer(context.Background(), yes, s, appLinkContext(domain.CatalogIOSAppStore))
		if !errors.Is(err, domain.ErrInvalidSessionState) {
			t.Errorf("yes=%v: expected ErrInvalidSessionState, got %v", yes, err)
		}
	}
}

func TestDirectionsService_No(t *testing.T) {
	svc := usecases.NewDirectionsService()
	s := offeredSession()

	resp, err := svc.Answer(context.Background(), false, s, appLinkContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.EndsInteraction {
		t.Error("expected interaction to end")
	}
	if s.State != domain.StateIdle || s.Offer != nil {
		t.Errorf("expected idle session, got %+v", s)
	}
}

func TestDirectionsService_YesAndroid(t *testing.T) {
	svc := usecases.NewDirectionsService()
	s := offeredSession()

	resp, err := svc.Answer(context.Background(), true, s, appLinkContext(domain.CatalogGooglePlayStore, domain.CatalogIOSAppStore))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := resp.AppLinkDirective
	if d == nil {
		t.Fatal("expected app link directive")
	}
	if d.Identifier != usecases.GoogleMapsIdentifier || d.Catalog != domain.CatalogGooglePlayStore {
		t.Errorf("unexpected directive %+v", d)
	}
	if d.URL != "https://www.google.com/maps/dir/?api=1&destination=47.61,-122.33" {
		t.Errorf("unexpected url %q", d.URL)
	}
	if d.OnAppLinkedPrompt != "Okay." || d.OnScreenLockedPrompt != "Please unlock your device to see the directions." {
		t.Errorf("unexpected prompts %+v", d)
	}
	if resp.EndsInteraction {
		t.Error("app link must not end the interaction")
	}
	if s.State != domain.StateLaunchedExternalApp || s.Offer != nil {
		t.Errorf("unexpected session %+v", s)
	}
	if err := resp.Validate(); err != nil {
		t.Errorf("unexpected invalid response: %v", err)
	}
}

func TestDirectionsService_YesIOS(t *testing.T) {
	svc := usecases.NewDirectionsService()
	resp, err := svc.Answer(context.Background(), true, offeredSession(), appLinkContext(domain.CatalogIOSAppStore))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AppLinkDirective.URL != "https://maps.apple.com/?daddr=47.61,-122.33" {
		t.Errorf("unexpected url %q", resp.AppLinkDirective.URL)
	}
	if resp.AppLinkDirective.Identifier != usecases.AppleMapsIdentifier {
		t.Errorf("unexpected identifier %q", resp.AppLinkDirective.Identifier)
	}
}

func TestDirectionsService_YesPreconditions(t *testing.T) {
	svc := usecases.NewDirectionsService()

	noAppLink := appLinkContext(domain.CatalogIOSAppStore)
	noAppLink.Permissions.SupportsAppLink = false
	if _, err := svc.Answer(context.Background(), true, offeredSession(), noAppLink); !errors.Is(err, domain.ErrInvalidSessionState) {
		t.Errorf("no app link: got %v", err)
	}

	if _, err := svc.Answer(context.Background(), true, offeredSession(), appLinkContext("AMAZON_APPSTORE")); !errors.Is(err, domain.ErrInvalidSessionState) {
		t.Errorf("unsupported catalog: got %v", err)
	}

	bad := &domain.Session{}
	bad.OfferDirections(domain.DirectionsOffer{Latitude: 123, Longitude: 0})
	if _, err := svc.Answer(context.Background(), true, bad, appLinkContext(domain.CatalogIOSAppStore)); !errors.Is(err, domain.ErrInvalidSessionState) {
		t.Errorf("invalid coordinate: got %v", err)
	}
}

func TestDirectionsService_Resume(t *testing.T) {
	svc := usecases.NewDirectionsService()

	s := &domain.Session{}
	s.LaunchExternalApp()
	resp := svc.Resume(context.Background(), &usecases.AppLinkResult{PrimaryFailed: true, FallbackFailed: true}, s)
	if resp.Speech != usecases.MsgDirectionsLoadFailed || !resp.EndsInteraction {
		t.Errorf("unexpected response %+v", resp)
	}
	if s.State != domain.StateIdle {
		t.Errorf("expected idle, got %q", s.State)
	}

	resp = svc.Resume(context.Background(), &usecases.AppLinkResult{PrimaryFailed: true}, offeredSession())
	if resp.Speech != "" || !resp.EndsInteraction {
		t.Errorf("unexpected response %+v", resp)
	}
}
