package http

import (
	_ "embed"
	"encoding/json"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

const (
	envelopeVersion = "1.0"

	directiveDelegate        = "Dialog.DelegateRequest"
	directiveStartConnection = "Connections.StartConnection"
	directiveRenderDocument  = "Alexa.Presentation.APL.RenderDocument"

	linkAppURI          = "connection://AMAZON.LinkApp/1"
	universalLinkType   = "UNIVERSAL_LINK"
	speakPromptBehavior = "SPEAK"
	restroomDocToken    = "restroomDetails"
	backgroundImageURL  = "https://restrooms-alexa-skill.s3.amazonaws.com/refugee-restrooms-background_1.jpg"
	logoURL             = "https://restrooms-alexa-skill.s3.amazonaws.com/512x512.png"
)

//go:embed apl/restroom_details.json
var restroomDetailsDocument []byte

// renderResponse translates a composed response into the host's wire format.
// The session is always echoed back so the next turn sees the same state.
func renderResponse(resp domain.ComposedResponse, session *domain.Session) ResponseEnvelope {
	out := ResponseEnvelope{Version: envelopeVersion, SessionAttributes: session}
	body := &out.Response

	if resp.Speech != "" {
		speech := ssml(resp.Speech)
		body.OutputSpeech = &speech
	}
	if resp.Reprompt != "" {
		body.Reprompt = &Reprompt{OutputSpeech: ssml(resp.Reprompt)}
	}
	if resp.Card != nil {
		body.Card = &CardPayload{
			Type:        string(resp.Card.Type),
			Title:       resp.Card.Title,
			Content:     resp.Card.Body,
			Permissions: resp.Card.Permissions,
		}
	}
	if d := resp.GraphicalDirective; d != nil {
		body.Directives = append(body.Directives, renderDocumentDirective(d))
	}
	if d := resp.AppLinkDirective; d != nil {
		body.Directives = append(body.Directives, startConnectionDirective(d))
	}
	if d := resp.DelegateDirective; d != nil {
		body.Directives = append(body.Directives, delegateDirective(d))
	}

	// A pending delegation or app link leaves the session open on the host's terms.
	switch {
	case resp.EndsInteraction:
		end := true
		body.ShouldEndSession = &end
	case resp.DelegateDirective == nil && resp.AppLinkDirective == nil:
		end := false
		body.ShouldEndSession = &end
	}
	return out
}

func delegateDirective(d *domain.DelegateDirective) Directive {
	intent := IntentPayload{Name: d.TargetIntent}
	if len(d.Slots) > 0 {
		intent.Slots = make(map[string]SlotPayload, len(d.Slots))
		for name, value := range d.Slots {
			intent.Slots[name] = SlotPayload{Name: name, Value: value}
		}
	}
	return Directive{
		Type:           directiveDelegate,
		Target:         "skill",
		Period:         &DirectivePhase{Until: "EXPLICIT_RETURN"},
		UpdatedRequest: &UpdatedRequest{Type: RequestIntent, Intent: intent},
	}
}

type appLinkInput struct {
	CatalogInfo struct {
		Identifier string `json:"identifier"`
		Type       string `json:"type"`
	} `json:"catalogInfo"`
	Actions struct {
		Primary struct {
			Type string `json:"type"`
			Link string `json:"link"`
		} `json:"primary"`
	} `json:"actions"`
	Prompts struct {
		OnAppLinked struct {
			Prompt                OutputSpeech `json:"prompt"`
			DefaultPromptBehavior string       `json:"defaultPromptBehavior"`
		} `json:"onAppLinked"`
		OnScreenLocked struct {
			Prompt OutputSpeech `json:"prompt"`
		} `json:"onScreenLocked"`
	} `json:"prompts"`
}

func startConnectionDirective(d *domain.AppLinkDirective) Directive {
	var in appLinkInput
	in.CatalogInfo.Identifier = d.Identifier
	in.CatalogInfo.Type = d.Catalog
	in.Actions.Primary.Type = universalLinkType
	in.Actions.Primary.Link = d.URL
	in.Prompts.OnAppLinked.Prompt = ssml(d.OnAppLinkedPrompt)
	in.Prompts.OnAppLinked.DefaultPromptBehavior = speakPromptBehavior
	in.Prompts.OnScreenLocked.Prompt = ssml(d.OnScreenLockedPrompt)

	return Directive{Type: directiveStartConnection, URI: linkAppURI, Input: in}
}

type plainText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func text(s string) plainText { return plainText{Type: "PlainText", Text: s} }

func renderDocumentDirective(d *domain.GraphicalDirective) Directive {
	features := d.Features
	if d.Rating != "" {
		features += "<br>" + d.Rating
	}
	datasources := map[string]any{
		restroomDocToken: map[string]any{
			"type":            "object",
			"title":           d.Title,
			"backgroundImage": backgroundImageURL,
			"logoUrl":         logoURL,
			"hintText":        `Try, "Alexa, ask Refugee Restrooms to find something near me"`,
			"textContent": map[string]plainText{
				"title":         text(d.Location),
				"primaryText":   text(features),
				"secondaryText": text(d.AdditionalInfo),
			},
		},
	}
	return Directive{
		Type:        directiveRenderDocument,
		Token:       restroomDocToken,
		Document:    json.RawMessage(restroomDetailsDocument),
		Datasources: datasources,
	}
}
