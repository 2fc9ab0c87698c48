package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// ErrTypeUndeliverable is the application error type for emails that must not be retried.
const ErrTypeUndeliverable = "UndeliverableEmail"

// ResultsEmailInput is the input for the results email workflow.
type ResultsEmailInput struct {
	Email domain.ResultsEmail
}

// ResultsEmailWorkflow delivers one results email, retrying transient SMTP
// failures with backoff.
func ResultsEmailWorkflow(ctx workflow.Context, input ResultsEmailInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting results email workflow", "emailID", input.Email.ID, "restrooms", len(input.Email.Restrooms))

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        5 * time.Second,
			BackoffCoefficient:     2,
			MaximumInterval:        2 * time.Minute,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{ErrTypeUndeliverable},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	err := workflow.ExecuteActivity(ctx, "SendResultsEmail", input.Email).Get(ctx, nil)
	if err != nil {
		logger.Warn("results email not delivered", "emailID", input.Email.ID, "error", err)
		return err
	}

	logger.Info("Results email delivered", "emailID", input.Email.ID)
	return nil
}
