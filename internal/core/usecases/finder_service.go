package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/ports"
	"github.com/samirrijal/restroomfinder/internal/pkg/logging"
	"github.com/samirrijal/restroomfinder/internal/pkg/telemetry"
)

var tracer = otel.Tracer("github.com/samirrijal/restroomfinder/internal/core/usecases")

// SearchRequest is one find-a-restroom request.
type SearchRequest struct {
	Input   domain.LocationInput
	Filters domain.SearchFilters
	Context domain.RequestContext
}

// FindResult is the response for a search plus the event describing it.
type FindResult struct {
	Response domain.ComposedResponse
	Event    domain.SearchEvent
}

// FinderService resolves a location, searches the directory and composes the answer.
type FinderService struct {
	resolver  *LocationResolver
	restrooms *RestroomService
	contacts  ports.ContactProvider
	composer  *ResponseComposer
	events    ports.EventPublisher
}

// NewFinderService creates a new FinderService. contacts and events may be nil.
func NewFinderService(
	resolver *LocationResolver,
	restrooms *RestroomService,
	contacts ports.ContactProvider,
	composer *ResponseComposer,
	events ports.EventPublisher,
) *FinderService {
	return &FinderService{
		resolver:  resolver,
		restrooms: restrooms,
		contacts:  contacts,
		composer:  composer,
		events:    events,
	}
}

// NearMeInput picks live geolocation when the device supports it and the
// registered device postal code otherwise.
func NearMeInput(rc domain.RequestContext) domain.LocationInput {
	if rc.Permissions.SupportsGeolocation {
		return rc.Geolocation
	}
	return domain.DevicePostalCode{DeviceID: rc.Device.DeviceID}
}

// Find answers req and updates session. Anticipated failures become a
// remediation response; any returned error is fatal for the request.
func (s *FinderService) Find(ctx context.Context, req SearchRequest, session *domain.Session) (*FindResult, error) {
	if req.Input == nil {
		return nil, fmt.Errorf("find: no location input")
	}
	modality := req.Input.Modality()

	ctx, span := tracer.Start(ctx, "FinderService.Find")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrModality, string(modality)))

	log := logging.FromContext(ctx).With("modality", modality)

	ev := domain.SearchEvent{
		ID:         uuid.NewString(),
		Modality:   modality,
		Filters:    req.Filters,
		OccurredAt: time.Now().UTC(),
	}

	coord, err := s.resolver.Resolve(ctx, req.Input, req.Context)
	if err != nil {
		le, ok := domain.AsLocationError(err)
		if !ok {
			span.RecordError(err)
			span.SetStatus(codes.Error, "resolve location")
			return nil, fmt.Errorf("resolve location: %w", err)
		}
		log.Info("location unresolved", "reason", le.Reason, "error", err)
		session.Reset()
		ev.Outcome = domain.OutcomeUnresolved
		ev.Reason = le.Reason
		s.publish(ctx, &ev)
		return &FindResult{Response: Remediation(le), Event: ev}, nil
	}

	results, err := s.restrooms.Search(ctx, coord, req.Filters)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "directory search")
		return nil, err
	}
	span.SetAttributes(attribute.Int(telemetry.AttrResultCount, len(results)))

	var email string
	if len(results) > 0 {
		email = s.contactEmail(ctx, req.Context)
	}

	label := domain.SearchLabel{Modality: modality}
	if zip, ok := req.Input.(domain.ExplicitZip); ok {
		label.PostalCode = zip.Code
	}

	comp := s.composer.Compose(ctx, results, req.Context.Permissions, label, email)
	if err := comp.Response.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if comp.Offer != nil {
		session.OfferDirections(*comp.Offer)
	} else {
		session.Reset()
	}

	ev.ResultCount = len(results)
	ev.EmailSent = comp.Response.EmailSent
	if len(results) == 0 {
		ev.Outcome = domain.OutcomeNoResults
	} else {
		ev.Outcome = domain.OutcomeFound
	}
	s.publish(ctx, &ev)

	return &FindResult{Response: comp.Response, Event: ev}, nil
}

// contactEmail returns "" whenever the address cannot be obtained.
func (s *FinderService) contactEmail(ctx context.Context, rc domain.RequestContext) string {
	if s.contacts == nil || !rc.Permissions.HasEmailConsent || rc.Device.APIAccessToken == "" {
		return ""
	}
	email, err := s.contacts.Email(ctx, rc.Device)
	if err != nil {
		log := logging.FromContext(ctx)
		if errors.Is(err, domain.ErrConsentRequired) {
			log.Info("email permission not granted")
		} else {
			log.Warn("contact lookup failed", "error", err)
		}
		return ""
	}
	return email
}

func (s *FinderService) publish(ctx context.Context, ev *domain.SearchEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishSearch(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("publish search event failed", "event_id", ev.ID, "error", err)
	}
}
