package main

import (
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/samirrijal/restroomfinder/internal/adapters/email"
	"github.com/samirrijal/restroomfinder/internal/pkg/config"
	"github.com/samirrijal/restroomfinder/internal/pkg/logging"
	"github.com/samirrijal/restroomfinder/internal/workflows"
)

func main() {
	cfg, err := config.Load("restroomfinder-mailer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if cfg.Email.Mode != config.EmailModeTemporal {
		slog.Warn("email.mode is not temporal; the API will not enqueue work for this worker", "mode", cfg.Email.Mode)
	}

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.ResultsEmailWorkflow)
	w.RegisterActivity(&workflows.ResultsEmailActivities{
		Mailer: email.NewSMTPSender(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromName:  cfg.Email.FromName,
			FromEmail: cfg.Email.FromEmail,
			Subject:   cfg.Email.Subject,
		}),
	})

	slog.Info("results email worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
