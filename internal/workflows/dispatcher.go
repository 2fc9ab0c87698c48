package workflows

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// WorkflowStarter is the part of client.Client the dispatcher needs.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// Dispatcher implements ports.ResultsMailer by starting a ResultsEmailWorkflow.
// SendResults returns once the workflow is accepted, not once the email is delivered.
type Dispatcher struct {
	client    WorkflowStarter
	taskQueue string
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(c WorkflowStarter, taskQueue string) *Dispatcher {
	return &Dispatcher{client: c, taskQueue: taskQueue}
}

// WorkflowID is the deterministic workflow id for an email, so a retried
// request does not send twice.
func WorkflowID(emailID string) string {
	return "results-email-" + emailID
}

// SendResults enqueues msg for durable delivery.
func (d *Dispatcher) SendResults(ctx context.Context, msg domain.ResultsEmail) error {
	opts := client.StartWorkflowOptions{
		ID:        WorkflowID(msg.ID),
		TaskQueue: d.taskQueue,
	}
	if _, err := d.client.ExecuteWorkflow(ctx, opts, ResultsEmailWorkflow, ResultsEmailInput{Email: msg}); err != nil {
		return fmt.Errorf("start results email workflow: %w", err)
	}
	return nil
}
