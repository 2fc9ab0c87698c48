package usecases

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/ports"
	"github.com/samirrijal/restroomfinder/internal/pkg/logging"
)

const (
	// MaxEmailResults caps the records included in a results email.
	MaxEmailResults = 10
	// maxCardResults caps the records listed on the simple card.
	maxCardResults = 4
)

// Composition is a composed response plus the directions offer, if one was made.
type Composition struct {
	Response domain.ComposedResponse
	Offer    *domain.DirectionsOffer
}

// ResponseComposer builds the multi-channel response for a search.
type ResponseComposer struct {
	mailer    ports.ResultsMailer
	validator ports.ContactValidator
}

// NewResponseComposer creates a new ResponseComposer. A nil mailer disables email.
func NewResponseComposer(mailer ports.ResultsMailer, validator ports.ContactValidator) *ResponseComposer {
	return &ResponseComposer{mailer: mailer, validator: validator}
}

// Compose builds the response for results found for label. email is the
// caller's contact address as returned by the contact provider, possibly empty.
func (c *ResponseComposer) Compose(ctx context.Context, results []domain.RestroomRecord, perms domain.PermissionContext, label domain.SearchLabel, email string) Composition {
	if len(results) == 0 {
		return Composition{Response: domain.ComposedResponse{
			Speech:          msgNoResults(label),
			EndsInteraction: true,
		}}
	}

	head := results[0]
	hasEmail := c.validator != nil && c.validator.ValidEmail(email)
	emailSent := hasEmail && c.sendEmail(ctx, email, label, results)

	resp := domain.ComposedResponse{
		Speech:          speakResult(head, label, hasEmail, emailSent),
		EmailSent:       emailSent,
		EndsInteraction: true,
	}

	if hasEmail {
		resp.Card = simpleCard(label, results)
	} else {
		resp.Card = &domain.Card{
			Type:        domain.CardAskForPermissionsConsent,
			Permissions: []string{domain.ScopeEmail},
		}
	}

	if perms.SupportsGraphicalChannel {
		resp.GraphicalDirective = graphicalDirective(head, label, hasEmail, emailSent)
	}

	var offer *domain.DirectionsOffer
	if perms.SupportsAppLink && head.HasCoordinates() {
		offer = &domain.DirectionsOffer{Latitude: head.Latitude, Longitude: head.Longitude}
		resp.Speech += " " + MsgOfferDirections
		resp.Reprompt = MsgOfferDirections
		resp.EndsInteraction = false
	}

	return Composition{Response: resp, Offer: offer}
}

// sendEmail delivers the results email. Failures are logged, never surfaced.
func (c *ResponseComposer) sendEmail(ctx context.Context, to string, label domain.SearchLabel, results []domain.RestroomRecord) bool {
	if c.mailer == nil {
		return false
	}
	if len(results) > MaxEmailResults {
		results = results[:MaxEmailResults]
	}
	msg := domain.ResultsEmail{
		ID:        uuid.NewString(),
		To:        to,
		Label:     label,
		Restrooms: results,
	}
	if err := c.mailer.SendResults(ctx, msg); err != nil {
		logging.FromContext(ctx).Error("results email failed", "email_id", msg.ID, "error", err)
		return false
	}
	return true
}

func speakResult(r domain.RestroomRecord, label domain.SearchLabel, hasEmail, emailSent bool) string {
	var b strings.Builder
	b.WriteString("I found this ")
	if IsPositivelyRated(r) {
		b.WriteString("positively rated ")
	}
	fmt.Fprintf(&b, "restroom %s. ", label.Spoken())
	fmt.Fprintf(&b, `<s>%s</s> <say-as interpret-as="address"> %s </say-as>, %s`,
		domain.EscapeSSML(r.Name), domain.EscapeSSML(r.Street), domain.EscapeSSML(r.City))
	if label.ShowsDistance() && r.Distance != nil {
		fmt.Fprintf(&b, ", about %s miles away", FormatMiles(*r.Distance))
	}
	b.WriteString(".")

	switch {
	case emailSent:
		b.WriteString(" " + MsgEmailSent)
	case !hasEmail:
		b.WriteString(" " + MsgMissingEmailPermissions)
	}
	return b.String()
}

func simpleCard(label domain.SearchLabel, results []domain.RestroomRecord) *domain.Card {
	if len(results) > maxCardResults {
		results = results[:maxCardResults]
	}
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "\n%s, %s, %s, %s\n", r.Name, r.Street, r.City, r.State)
		fmt.Fprintf(&b, "Rating: %s\n", RatingText(r))
		directions := r.Directions
		if directions == "" {
			directions = "Not Available"
		}
		fmt.Fprintf(&b, "Directions: %s\n", directions)
		fmt.Fprintf(&b, "Unisex: %s, Accessible: %s, Changing Table: %s\n",
			yesNo(r.Unisex), yesNo(r.Accessible), yesNo(r.ChangingTable))
	}
	return &domain.Card{
		Type:  domain.CardSimple,
		Title: "Here are some restrooms " + label.Visual(),
		Body:  b.String(),
	}
}

func graphicalDirective(r domain.RestroomRecord, label domain.SearchLabel, hasEmail, emailSent bool) *domain.GraphicalDirective {
	features := fmt.Sprintf("%s Gender Neutral<br>%s Accessible<br>%s Changing Table",
		checkMark(r.Unisex), checkMark(r.Accessible), checkMark(r.ChangingTable))
	if label.ShowsDistance() && r.Distance != nil {
		features += fmt.Sprintf("<br>&#128663; %s miles", FormatMiles(*r.Distance))
	}

	var info string
	switch {
	case emailSent:
		info = MsgEmailSentVisual
	case !hasEmail:
		info = MsgMissingEmailPermissions
	}

	return &domain.GraphicalDirective{
		Title:          "Here is a restroom " + label.Visual() + ".",
		Location:       fmt.Sprintf("%s<br>%s, %s, %s", r.Name, r.Street, r.City, r.State),
		Features:       features,
		Rating:         "&#10084; " + RatingText(r),
		AdditionalInfo: info,
	}
}

// RatingText is "N% positive" or "Not Rated".
func RatingText(r domain.RestroomRecord) string {
	if r.PositiveRatingPercent == nil {
		return "Not Rated"
	}
	return strconv.Itoa(*r.PositiveRatingPercent) + "% positive"
}

// FormatMiles renders a rounded distance without trailing zeros.
func FormatMiles(miles float64) string {
	return strconv.FormatFloat(RoundDistance(miles), 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func checkMark(b bool) string {
	if b {
		return "&#9989;"
	}
	return "&#10060;"
}
