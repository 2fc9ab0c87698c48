package domain

import "fmt"

// CardType distinguishes a plain visual card from a permission request card.
type CardType string

const (
	CardSimple                   CardType = "Simple"
	CardAskForPermissionsConsent CardType = "AskForPermissionsConsent"
)

// Card is the visual card attached to a response.
type Card struct {
	Type        CardType `json:"type"`
	Title       string   `json:"title,omitempty"`
	Body        string   `json:"body,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// GraphicalDirective is the datasource for the graphical result template.
type GraphicalDirective struct {
	Title          string `json:"title"`
	Location       string `json:"location"`
	Features       string `json:"features"`
	Rating         string `json:"rating"`
	AdditionalInfo string `json:"additional_info"`
}

// AppLinkDirective asks the host to open a map app at the given universal link.
type AppLinkDirective struct {
	Catalog              string `json:"catalog"`
	Identifier           string `json:"identifier"`
	URL                  string `json:"url"`
	OnAppLinkedPrompt    string `json:"on_app_linked_prompt"`
	OnScreenLockedPrompt string `json:"on_screen_locked_prompt"`
}

// DelegateDirective hands the dialog to another intent with the given slots.
type DelegateDirective struct {
	TargetIntent string            `json:"target_intent"`
	Slots        map[string]string `json:"slots,omitempty"`
}

// ComposedResponse is the multi-channel answer for one request.
type ComposedResponse struct {
	Speech             string              `json:"speech,omitempty"`
	Reprompt           string              `json:"reprompt,omitempty"`
	Card               *Card               `json:"card,omitempty"`
	GraphicalDirective *GraphicalDirective `json:"graphical_directive,omitempty"`
	AppLinkDirective   *AppLinkDirective   `json:"app_link_directive,omitempty"`
	DelegateDirective  *DelegateDirective  `json:"delegate_directive,omitempty"`
	EmailSent          bool                `json:"email_sent"`
	EndsInteraction    bool                `json:"ends_interaction"`
}

// Validate rejects channel combinations the host cannot render.
func (r ComposedResponse) Validate() error {
	switch {
	case r.DelegateDirective != nil && r.EndsInteraction:
		return fmt.Errorf("%w: delegate directive on a terminal response", ErrInvalidResponse)
	case r.DelegateDirective != nil && (r.Speech != "" || r.Card != nil || r.GraphicalDirective != nil || r.AppLinkDirective != nil):
		return fmt.Errorf("%w: delegate directive with immediate output", ErrInvalidResponse)
	case r.Reprompt != "" && r.EndsInteraction:
		return fmt.Errorf("%w: reprompt on a terminal response", ErrInvalidResponse)
	case r.AppLinkDirective != nil && r.EndsInteraction:
		return fmt.Errorf("%w: app link directive on a terminal response", ErrInvalidResponse)
	}
	return nil
}
