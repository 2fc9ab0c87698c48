package usecases_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
)

type finderFixture struct {
	dir      *mockDirectory
	devices  *mockDevices
	contacts *mockContacts
	mailer   *mockMailer
	events   *mockEvents
	svc      *usecases.FinderService
}

func newFinderFixture(records []domain.RestroomRecord) *finderFixture {
	f := &finderFixture{
		dir: &mockDirectory{
			findFn: func(ctx context.Context, at domain.ResolvedCoordinate, filters domain.SearchFilters) ([]domain.RestroomRecord, error) {
				return records, nil
			},
		},
		devices:  &mockDevices{},
		contacts: &mockContacts{},
		mailer:   &mockMailer{},
		events:   &mockEvents{},
	}
	resolver := usecases.NewLocationResolver(&mockGeocoder{}, f.devices, testPostal(), 0)
	restrooms := usecases.NewRestroomService(f.dir, nil)
	composer := usecases.NewResponseComposer(f.mailer, mailValidator{})
	f.svc = usecases.NewFinderService(resolver, restrooms, f.contacts, composer, f.events)
	return f
}

func geoRequest(perms domain.PermissionContext) usecases.SearchRequest {
	geo := domain.GeoCoordinate{Reported: true, ServicesEnabled: true, Point: &domain.GeoPoint{Lat: 47.61, Lon: -122.33}}
	return usecases.SearchRequest{
		Input: geo,
		Context: domain.RequestContext{
			Permissions: perms,
			Device:      domain.DeviceContext{DeviceID: "dev-1", APIAccessToken: "token"},
			Geolocation: geo,
		},
	}
}

func TestFinderService_GeoEndToEnd(t *testing.T) {
	f := newFinderFixture([]domain.RestroomRecord{{
		Name: "Cafe A", Street: "601 Union Street", City: "Seattle", State: "WA",
		Latitude: 47.61, Longitude: -122.33,
		Upvotes: intPtr(10), Downvotes: intPtr(0), Distance: floatPtr(2.345),
		Unisex: true, Accessible: true, ChangingTable: false,
	}})

	session := &domain.Session{}
	res, err := f.svc.Find(context.Background(), geoRequest(domain.PermissionContext{HasGeoConsent: true}), session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := res.Response
	if !strings.Contains(r.Speech, "positively rated") {
		t.Errorf("expected positively rated, got %q", r.Speech)
	}
	if !strings.Contains(r.Speech, "2.35 miles") {
		t.Errorf("expected 2.35 miles, got %q", r.Speech)
	}
	if r.Card == nil || r.Card.Type != domain.CardAskForPermissionsConsent || r.Card.Permissions[0] != domain.ScopeEmail {
		t.Errorf("expected email permission card, got %+v", r.Card)
	}
	if r.GraphicalDirective != nil {
		t.Error("graphical directive must be absent")
	}
	if r.EmailSent || len(f.mailer.sent) != 0 {
		t.Error("no email expected without consent")
	}
	if f.contacts.calls != 0 {
		t.Error("contact provider should not be called without email consent")
	}
	if !r.EndsInteraction || session.State != domain.StateIdle {
		t.Errorf("expected terminal response and idle session, got %+v", session)
	}

	if len(f.events.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.events.events))
	}
	ev := f.events.events[0]
	if ev.Outcome != domain.OutcomeFound || ev.ResultCount != 1 || ev.Modality != domain.ModalityGeoCoordinate {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestFinderService_MissingConsentSkipsDirectory(t *testing.T) {
	f := newFinderFixture(nil)

	res, err := f.svc.Find(context.Background(), geoRequest(domain.PermissionContext{}), &domain.Session{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.dir.calls != 0 {
		t.Error("directory must not be queried without consent")
	}
	r := res.Response
	if r.Speech != usecases.MsgMissingGeoPermissions {
		t.Errorf("unexpected speech %q", r.Speech)
	}
	if r.Card == nil || r.Card.Permissions[0] != domain.ScopeGeolocation {
		t.Errorf("expected geolocation permission card, got %+v", r.Card)
	}
	if res.Event.Outcome != domain.OutcomeUnresolved || res.Event.Reason != domain.ReasonMissingConsent {
		t.Errorf("unexpected event %+v", res.Event)
	}
}

func TestFinderService_UnsupportedCountrySkipsDirectory(t *testing.T) {
	f := newFinderFixture(nil)
	f.devices.addressFn = func(ctx context.Context, d domain.DeviceContext) (domain.DeviceAddress, error) {
		return domain.DeviceAddress{CountryCode: "DE", PostalCode: strPtr("10115")}, nil
	}

	req := usecases.SearchRequest{
		Input:   domain.DevicePostalCode{DeviceID: "dev-1"},
		Context: domain.RequestContext{Permissions: domain.PermissionContext{HasAddressConsent: true}},
	}
	res, err := f.svc.Find(context.Background(), req, &domain.Session{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.dir.calls != 0 {
		t.Error("directory must not be queried for non-US devices")
	}
	if res.Response.Speech != usecases.MsgUnsupportedCountry {
		t.Errorf("unexpected speech %q", res.Response.Speech)
	}
}

func TestFinderService_EmailAndOffer(t *testing.T) {
	f := newFinderFixture(sampleRestrooms(3))
	f.contacts.email = "user@example.com"

	perms := domain.PermissionContext{
		HasGeoConsent:            true,
		HasEmailConsent:          true,
		SupportsGraphicalChannel: true,
		SupportsAppLink:          true,
	}
	session := &domain.Session{}
	res, err := f.svc.Find(context.Background(), geoRequest(perms), session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := res.Response
	if !r.EmailSent || len(f.mailer.sent) != 1 {
		t.Error("expected results email")
	}
	if r.EndsInteraction {
		t.Error("expected open interaction for directions offer")
	}
	offer, ok := session.PendingOffer()
	if !ok || offer.Latitude != 47.61 || offer.Longitude != -122.33 {
		t.Errorf("unexpected session %+v", session)
	}
	if !res.Event.EmailSent {
		t.Error("event should record the email")
	}
}

func TestFinderService_ContactFailureDegrades(t *testing.T) {
	f := newFinderFixture(sampleRestrooms(1))
	f.contacts.err = domain.ErrConsentRequired

	res, err := f.svc.Find(context.Background(), geoRequest(domain.PermissionContext{HasGeoConsent: true, HasEmailConsent: true}), &domain.Session{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Response.Card.Type != domain.CardAskForPermissionsConsent {
		t.Errorf("expected permission card, got %+v", res.Response.Card)
	}
}

func TestFinderService_NoResults(t *testing.T) {
	f := newFinderFixture(nil)
	f.contacts.email = "user@example.com"

	res, err := f.svc.Find(context.Background(), geoRequest(domain.PermissionContext{HasGeoConsent: true, HasEmailConsent: true}), &domain.Session{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.contacts.calls != 0 || len(f.mailer.sent) != 0 {
		t.Error("no contact lookup or email for empty results")
	}
	if res.Event.Outcome != domain.OutcomeNoResults {
		t.Errorf("unexpected outcome %q", res.Event.Outcome)
	}
}

func TestFinderService_DirectoryErrorIsFatal(t *testing.T) {
	f := newFinderFixture(nil)
	boom := errors.New("directory down")
	f.dir.findFn = func(ctx context.Context, at domain.ResolvedCoordinate, filters domain.SearchFilters) ([]domain.RestroomRecord, error) {
		return nil, boom
	}
	if _, err := f.svc.Find(context.Background(), geoRequest(domain.PermissionContext{HasGeoConsent: true}), &domain.Session{}); !errors.Is(err, boom) {
		t.Errorf("expected directory error, got %v", err)
	}
}

func TestNearMeInput(t *testing.T) {
	rc := domain.RequestContext{
		Permissions: domain.PermissionContext{SupportsGeolocation: true},
		Device:      domain.DeviceContext{DeviceID: "dev-1"},
	}
	if got := usecases.NearMeInput(rc).Modality(); got != domain.ModalityGeoCoordinate {
		t.Errorf("expected geo modality, got %s", got)
	}
	rc.Permissions.SupportsGeolocation = false
	in := usecases.NearMeInput(rc)
	dev, ok := in.(domain.DevicePostalCode)
	if !ok || dev.DeviceID != "dev-1" {
		t.Errorf("expected device postal code input, got %#v", in)
	}
}
