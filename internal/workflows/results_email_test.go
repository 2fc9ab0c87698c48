package workflows_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/workflows"
)

type flakyMailer struct {
	failures int
	err      error
	calls    int
}

func (m *flakyMailer) SendResults(ctx context.Context, msg domain.ResultsEmail) error {
	m.calls++
	if m.calls <= m.failures {
		return m.err
	}
	return nil
}

func emailInput() workflows.ResultsEmailInput {
	return workflows.ResultsEmailInput{Email: domain.ResultsEmail{
		ID:        "e-1",
		To:        "user@example.com",
		Restrooms: []domain.RestroomRecord{{Name: "Cafe A"}},
	}}
}

func TestResultsEmailWorkflow_RetriesTransientFailures(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	mailer := &flakyMailer{failures: 2, err: errors.New("connection reset")}
	env.RegisterActivity(&workflows.ResultsEmailActivities{Mailer: mailer})
	env.ExecuteWorkflow(workflows.ResultsEmailWorkflow, emailInput())

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", mailer.calls)
	}
}

func TestResultsEmailWorkflow_UndeliverableIsNotRetried(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	mailer := &flakyMailer{failures: 10, err: fmt.Errorf("%w: recipient", domain.ErrUndeliverableEmail)}
	env.RegisterActivity(&workflows.ResultsEmailActivities{Mailer: mailer})
	env.ExecuteWorkflow(workflows.ResultsEmailWorkflow, emailInput())

	err := env.GetWorkflowError()
	if err == nil {
		t.Fatal("expected workflow error")
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) || appErr.Type() != workflows.ErrTypeUndeliverable {
		t.Errorf("expected %s application error, got %v", workflows.ErrTypeUndeliverable, err)
	}
	if mailer.calls != 1 {
		t.Errorf("expected a single attempt, got %d", mailer.calls)
	}
}

type mockStarter struct {
	opts client.StartWorkflowOptions
	args []interface{}
	err  error
}

func (m *mockStarter) ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error) {
	m.opts = options
	m.args = args
	return nil, m.err
}

func TestDispatcher_SendResults(t *testing.T) {
	starter := &mockStarter{}
	d := workflows.NewDispatcher(starter, "results-email")

	msg := emailInput().Email
	if err := d.SendResults(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if starter.opts.ID != "results-email-e-1" || starter.opts.TaskQueue != "results-email" {
		t.Errorf("unexpected options %+v", starter.opts)
	}
	if len(starter.args) != 1 {
		t.Fatalf("expected one workflow argument, got %d", len(starter.args))
	}
	in, ok := starter.args[0].(workflows.ResultsEmailInput)
	if !ok || in.Email.To != "user@example.com" {
		t.Errorf("unexpected argument %#v", starter.args[0])
	}

	starter.err = errors.New("temporal down")
	if err := d.SendResults(context.Background(), msg); err == nil {
		t.Error("expected start error")
	}
}
