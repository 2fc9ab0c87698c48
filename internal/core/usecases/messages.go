package usecases

import (
	"fmt"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// User-facing messages.
const (
	MsgGenericError            = "I'm Sorry, I'm having trouble helping you. Please try again later."
	MsgMissingGeoPermissions   = "Please enable geo location permissions in the Amazon Alexa app."
	MsgMissingDevicePermission = "Please enable device address permissions in the Amazon Alexa app."
	MsgMissingEmailPermissions = "To get these results by email, please enable email permissions in the Amazon Alexa app."
	MsgLocationServicesOff     = "Please make sure device location tracking is enabled in your device, and try again later."
	MsgNoGeoCoordinate         = "I'm having trouble accessing your location. Please wait a moment, and try again later."
	MsgUnsupportedCountry      = "Sorry. I currently only support locations within the United States."
	MsgDevicePostalMissing     = "Sorry. I was unable to determine your device location with sufficient granularity. Please try again later."
	MsgInvalidAddress          = "Sorry. Given address is not a valid address in the US. Please try again with a valid US based address."
	MsgAmbiguousAddress        = "Sorry. I couldn't tell where the street number ends in that address. Please try again with the city and state, or a five digit U.S. zipcode."
	MsgEmailSent               = "I also sent this and more restrooms to your email."
	MsgEmailSentVisual         = "I also sent this and other restrooms I found to your email. I also included Google Maps navigation links in the email."
	MsgOfferDirections         = "Would you like directions to this restroom?"
	MsgDirectionsLoadFailed    = "Sorry, I couldn't load the directions. Please try again later."
	MsgAppLinked               = "Okay."
	MsgScreenLocked            = "Please unlock your device to see the directions."
	MsgHelp                    = "You can ask me to find a restroom near you, at a zipcode, or at an address. You can also ask for accessible, gender neutral, or changing table restrooms. What would you like to do?"
	MsgHelpReprompt            = "Try saying, find a restroom near me."
	MsgLaunch                  = "Welcome to Restroom Finder. You can ask me to find a restroom near you, at a zipcode, or at an address. What would you like to do?"
	MsgGoodbye                 = "Goodbye."
)

func msgInvalidDevicePostalCode(code string) string {
	return fmt.Sprintf("Sorry. %s is not a valid postal code in the US. Please try again later.", domain.EscapeSSML(code))
}

func msgInvalidZip(code string) string {
	return fmt.Sprintf(`Sorry. <say-as interpret-as="digits">%s</say-as> is not a valid zipcode in the US. Please try again with a valid five digit U.S. zipcode.`, domain.EscapeSSML(code))
}

func msgNoResults(label domain.SearchLabel) string {
	if label.Modality == domain.ModalityExplicitZip || label.Modality == domain.ModalitySpokenAddress {
		return fmt.Sprintf("I'm sorry. I couldn't find any restrooms %s matching your criteria.", label.Spoken())
	}
	return "I'm sorry. I couldn't find any restrooms near you."
}

// Remediation renders the terminal response for an unresolvable location.
func Remediation(le *domain.LocationError) domain.ComposedResponse {
	resp := domain.ComposedResponse{EndsInteraction: true}

	switch le.Reason {
	case domain.ReasonMissingConsent:
		if le.Modality == domain.ModalityGeoCoordinate {
			resp.Speech = MsgMissingGeoPermissions
		} else {
			resp.Speech = MsgMissingDevicePermission
		}
		if le.Scope != "" {
			resp.Card = &domain.Card{Type: domain.CardAskForPermissionsConsent, Permissions: []string{le.Scope}}
		}
	case domain.ReasonDeviceLocationUnavailable:
		if le.Detail == domain.DetailServicesDisabled {
			resp.Speech = MsgLocationServicesOff
		} else {
			resp.Speech = MsgNoGeoCoordinate
		}
	case domain.ReasonUnsupportedCountry:
		resp.Speech = MsgUnsupportedCountry
	case domain.ReasonInvalidPostalCode:
		switch {
		case le.Modality == domain.ModalityExplicitZip:
			resp.Speech = msgInvalidZip(le.Detail)
		case le.Detail == "":
			resp.Speech = MsgDevicePostalMissing
		default:
			resp.Speech = msgInvalidDevicePostalCode(le.Detail)
		}
	case domain.ReasonAddressNotFound:
		resp.Speech = MsgInvalidAddress
	case domain.ReasonAmbiguousAddress:
		resp.Speech = MsgAmbiguousAddress
	default:
		resp.Speech = MsgGenericError
	}
	return resp
}

// GenericFailure is the response for any unclassified error.
func GenericFailure() domain.ComposedResponse {
	return domain.ComposedResponse{Speech: MsgGenericError, EndsInteraction: true}
}
