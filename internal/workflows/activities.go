package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/ports"
)

// ResultsEmailActivities holds the activity implementations for the results email workflow.
type ResultsEmailActivities struct {
	Mailer ports.ResultsMailer
}

// SendResultsEmail delivers msg through the configured mailer. Permanent
// failures are returned as non-retryable application errors.
func (a *ResultsEmailActivities) SendResultsEmail(ctx context.Context, msg domain.ResultsEmail) error {
	if a.Mailer == nil {
		return temporal.NewNonRetryableApplicationError("no mailer configured", ErrTypeUndeliverable, nil)
	}
	if err := a.Mailer.SendResults(ctx, msg); err != nil {
		if errors.Is(err, domain.ErrUndeliverableEmail) {
			return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeUndeliverable, err)
		}
		return fmt.Errorf("send results email %s: %w", msg.ID, err)
	}
	return nil
}
