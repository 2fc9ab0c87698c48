package http

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
	"github.com/samirrijal/restroomfinder/internal/pkg/logging"
	"github.com/samirrijal/restroomfinder/internal/pkg/metrics"
)

// Intent slot names.
const (
	slotStreet  = "street"
	slotCity    = "city"
	slotState   = "state"
	slotZipCode = "zipcode"
	slotFilter  = "searchFilter"
)

// WebhookHandler answers one turn of the voice host. Every failure past
// envelope validation is rendered as the generic apology with HTTP 200, so
// the host never receives a partial response.
func WebhookHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var env RequestEnvelope
		if err := c.BodyParser(&env); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Validator.Struct(&env); err != nil {
			return errBadRequest(c, err.Error())
		}

		ctx := c.UserContext()
		log := LoggerFromCtx(ctx).With("request_type", env.Request.Type)
		if env.Request.Intent != nil {
			log = log.With("intent", env.Request.Intent.Name)
		}
		ctx = logging.WithLogger(ctx, log)

		session := env.LoadSession()
		resp, err := dispatch(ctx, deps, &env, session)
		if err == nil {
			err = resp.Validate()
		}
		if err != nil {
			log.Error("request failed", "error", err, "state", session.State)
			session.Reset()
			resp = usecases.GenericFailure()
		}

		return c.JSON(renderResponse(resp, session))
	}
}

func dispatch(ctx context.Context, deps *Dependencies, env *RequestEnvelope, session *domain.Session) (domain.ComposedResponse, error) {
	req := env.Request
	switch req.Type {
	case RequestLaunch:
		return usecases.Launch(), nil
	case RequestSessionEnded:
		LoggerFromCtx(ctx).Info("session ended", "reason", req.Reason, "state", session.State)
		session.Reset()
		return domain.ComposedResponse{EndsInteraction: true}, nil
	case RequestSessionResumed:
		return deps.Directions.Resume(ctx, req.appLinkResult(), session), nil
	case RequestAPIInvoked:
		return delegate(req, session)
	case RequestIntent:
		if req.Intent == nil {
			return domain.ComposedResponse{}, fmt.Errorf("intent request without intent")
		}
		return handleIntent(ctx, deps, env, session)
	default:
		return domain.ComposedResponse{}, fmt.Errorf("unsupported request type %q", req.Type)
	}
}

func delegate(req RequestPayload, session *domain.Session) (domain.ComposedResponse, error) {
	if req.APIRequest == nil {
		return domain.ComposedResponse{}, fmt.Errorf("api request without apiRequest")
	}
	var args usecases.APIArguments
	if len(req.APIRequest.Arguments) > 0 {
		if err := json.Unmarshal(req.APIRequest.Arguments, &args); err != nil {
			return domain.ComposedResponse{}, fmt.Errorf("decode api arguments: %w", err)
		}
	}
	return usecases.Delegate(req.APIRequest.Name, args, session)
}

func handleIntent(ctx context.Context, deps *Dependencies, env *RequestEnvelope, session *domain.Session) (domain.ComposedResponse, error) {
	req := env.Request
	rc := env.RequestContext()

	switch req.Intent.Name {
	case usecases.IntentFindNearMe:
		return find(ctx, deps, usecases.NearMeInput(rc), env, session, rc)
	case usecases.IntentFindAtAddress:
		addr := domain.SpokenAddress{
			Street: pick(req.slot(slotStreet), session.Search, func(p *domain.PendingSearch) string { return p.Street }),
			City:   pick(req.slot(slotCity), session.Search, func(p *domain.PendingSearch) string { return p.City }),
			State:  pick(req.slot(slotState), session.Search, func(p *domain.PendingSearch) string { return p.State }),
		}
		return find(ctx, deps, addr, env, session, rc)
	case usecases.IntentFindAtLocation:
		zip := domain.ExplicitZip{
			Code: pick(req.slot(slotZipCode), session.Search, func(p *domain.PendingSearch) string { return p.ZipCode }),
		}
		return find(ctx, deps, zip, env, session, rc)
	case IntentYes, IntentNo:
		return deps.Directions.Answer(ctx, req.Intent.Name == IntentYes, session, rc)
	case IntentHelp:
		return usecases.Help(), nil
	case IntentCancel, IntentStop:
		return usecases.Stop(session), nil
	default:
		return domain.ComposedResponse{}, fmt.Errorf("unsupported intent %q", req.Intent.Name)
	}
}

// pick prefers the spoken slot value and falls back to what a delegation stored.
func pick(slot string, pending *domain.PendingSearch, field func(*domain.PendingSearch) string) string {
	if slot != "" || pending == nil {
		return slot
	}
	return field(pending)
}

func find(ctx context.Context, deps *Dependencies, in domain.LocationInput, env *RequestEnvelope, session *domain.Session, rc domain.RequestContext) (domain.ComposedResponse, error) {
	tokens := searchTokens(session.Search, env.Request.slot(slotFilter))
	session.Search = nil

	res, err := deps.Finder.Find(ctx, usecases.SearchRequest{
		Input:   in,
		Filters: usecases.TranslateFilters(tokens),
		Context: rc,
	}, session)
	if err != nil {
		return domain.ComposedResponse{}, err
	}
	recordSearch(res.Event)
	return res.Response, nil
}

// searchTokens joins the filters a delegation stored with the spoken filter
// slot. The stored slice is never appended to in place.
func searchTokens(pending *domain.PendingSearch, slot string) []string {
	var tokens []string
	if pending != nil {
		tokens = append(tokens, pending.Filters...)
	}
	if slot != "" {
		tokens = append(tokens, usecases.ResolveFilterSynonyms([]string{slot})...)
	}
	return tokens
}

func recordSearch(ev domain.SearchEvent) {
	modality := string(ev.Modality)
	metrics.SearchesTotal.WithLabelValues(modality, string(ev.Outcome)).Inc()
	if ev.Outcome == domain.OutcomeUnresolved {
		metrics.LocationFailures.WithLabelValues(modality, string(ev.Reason)).Inc()
		return
	}
	metrics.SearchResults.WithLabelValues(modality).Observe(float64(ev.ResultCount))
}
