package usecases_test

import (
	"reflect"
	"testing"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
)

func TestDelegate(t *testing.T) {
	tests := []struct {
		api    string
		args   usecases.APIArguments
		intent string
		want   domain.PendingSearch
	}{
		{
			api:    usecases.APIFindNearMe,
			args:   usecases.APIArguments{SearchFilters: []string{"gender neutral", "unknown"}},
			intent: usecases.IntentFindNearMe,
			want:   domain.PendingSearch{Filters: []string{domain.FilterUnisex}},
		},
		{
			api:    usecases.APIFindAtAddress,
			args:   usecases.APIArguments{Street: "six oh one union street", City: "seattle", ZipCode: "98109"},
			intent: usecases.IntentFindAtAddress,
			want:   domain.PendingSearch{Filters: []string{}, Street: "six oh one union street", City: "seattle"},
		},
		{
			api:    usecases.APIFindAtLocation,
			args:   usecases.APIArguments{SearchFilters: []string{"changing table", "ada"}, ZipCode: "98109"},
			intent: usecases.IntentFindAtLocation,
			want:   domain.PendingSearch{Filters: []string{domain.FilterChangingTable, domain.FilterAccessible}, ZipCode: "98109"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.api, func(t *testing.T) {
			s := &domain.Session{}
			resp, err := usecases.Delegate(tt.api, tt.args, s)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.DelegateDirective == nil || resp.DelegateDirective.TargetIntent != tt.intent {
				t.Fatalf("unexpected directive %+v", resp.DelegateDirective)
			}
			if resp.Speech != "" || resp.Card != nil || resp.EndsInteraction {
				t.Errorf("delegation must carry only the directive, got %+v", resp)
			}
			if err := resp.Validate(); err != nil {
				t.Errorf("unexpected invalid response: %v", err)
			}
			if !reflect.DeepEqual(*s.Search, tt.want) {
				t.Errorf("got %+v, want %+v", *s.Search, tt.want)
			}
		})
	}
}

func TestDelegate_UnknownAPI(t *testing.T) {
	if _, err := usecases.Delegate("OrderPizzaAPI", usecases.APIArguments{}, &domain.Session{}); err == nil {
		t.Error("expected error for unknown api")
	}
}

func TestHelpAndStop(t *testing.T) {
	if h := usecases.Help(); h.EndsInteraction || h.Reprompt == "" || h.Validate() != nil {
		t.Errorf("unexpected help response %+v", h)
	}
	s := offeredSession()
	if r := usecases.Stop(s); !r.EndsInteraction || s.State != domain.StateIdle {
		t.Errorf("unexpected stop response %+v / %+v", r, s)
	}
}
