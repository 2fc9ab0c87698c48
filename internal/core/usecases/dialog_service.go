package usecases

import (
	"fmt"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// Dialog API names and the intents they delegate to.
const (
	APIFindNearMe     = "FindRestroomsNearMeAPI"
	APIFindAtAddress  = "FindRestroomsAtAddressAPI"
	APIFindAtLocation = "FindRestroomsAtLocationAPI"

	IntentFindNearMe     = "FindRestroomNearMeIntent"
	IntentFindAtAddress  = "FindRestroomAtAddressIntent"
	IntentFindAtLocation = "FindRestroomAtLocationIntent"
)

var delegateTargets = map[string]string{
	APIFindNearMe:     IntentFindNearMe,
	APIFindAtAddress:  IntentFindAtAddress,
	APIFindAtLocation: IntentFindAtLocation,
}

// APIArguments are the arguments of a dialog API invocation.
type APIArguments struct {
	SearchFilters []string `json:"SearchFiltersList"`
	Street        string   `json:"Street"`
	City          string   `json:"City"`
	State         string   `json:"State"`
	ZipCode       string   `json:"Zipcode"`
}

// Delegate stores the API arguments as the pending search and hands the
// dialog to the matching intent. The response carries only the directive.
func Delegate(apiName string, args APIArguments, session *domain.Session) (domain.ComposedResponse, error) {
	target, ok := delegateTargets[apiName]
	if !ok {
		return domain.ComposedResponse{}, fmt.Errorf("delegate: unknown api %q", apiName)
	}

	pending := &domain.PendingSearch{Filters: ResolveFilterSynonyms(args.SearchFilters)}
	switch apiName {
	case APIFindAtAddress:
		pending.Street, pending.City, pending.State = args.Street, args.City, args.State
	case APIFindAtLocation:
		pending.ZipCode = args.ZipCode
	}
	session.Search = pending

	return domain.ComposedResponse{
		DelegateDirective: &domain.DelegateDirective{TargetIntent: target},
	}, nil
}

// Help is the response to a help request.
func Help() domain.ComposedResponse {
	return domain.ComposedResponse{
		Speech:   MsgHelp,
		Reprompt: MsgHelpReprompt,
		Card: &domain.Card{
			Type:  domain.CardSimple,
			Title: "Restroom Finder",
			Body:  MsgHelp,
		},
	}
}

// Launch is the response to opening the app without a request.
func Launch() domain.ComposedResponse {
	return domain.ComposedResponse{Speech: MsgLaunch, Reprompt: MsgHelpReprompt}
}

// Stop ends the interaction.
func Stop(session *domain.Session) domain.ComposedResponse {
	session.Reset()
	return domain.ComposedResponse{Speech: MsgGoodbye, EndsInteraction: true}
}
