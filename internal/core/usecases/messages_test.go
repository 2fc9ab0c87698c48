package usecases_test

import (
	"strings"
	"testing"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
)

func TestRemediation_InvalidPostalCode(t *testing.T) {
	tests := []struct {
		name string
		le   domain.LocationError
		want string
	}{
		{
			name: "explicit zip",
			le:   domain.LocationError{Reason: domain.ReasonInvalidPostalCode, Modality: domain.ModalityExplicitZip, Detail: "00000"},
			want: `Sorry. <say-as interpret-as="digits">00000</say-as> is not a valid zipcode`,
		},
		{
			name: "explicit zip with markup",
			le:   domain.LocationError{Reason: domain.ReasonInvalidPostalCode, Modality: domain.ModalityExplicitZip, Detail: "9<8&1"},
			want: `<say-as interpret-as="digits">9&lt;8&amp;1</say-as>`,
		},
		{
			name: "device postal code with markup",
			le:   domain.LocationError{Reason: domain.ReasonInvalidPostalCode, Modality: domain.ModalityDevicePostalCode, Detail: "K1A<0B1>"},
			want: "Sorry. K1A&lt;0B1&gt; is not a valid postal code",
		},
		{
			name: "device postal code missing",
			le:   domain.LocationError{Reason: domain.ReasonInvalidPostalCode, Modality: domain.ModalityDevicePostalCode},
			want: usecases.MsgDevicePostalMissing,
		},
	}

	for _, tt := range tests {
		resp := usecases.Remediation(&tt.le)
		if !strings.Contains(resp.Speech, tt.want) {
			t.Errorf("%s: got %q, want it to contain %q", tt.name, resp.Speech, tt.want)
		}
		wellFormedSSML(t, resp.Speech)
		if !resp.EndsInteraction {
			t.Errorf("%s: remediation must end the interaction", tt.name)
		}
	}
}
