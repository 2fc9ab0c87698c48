// Package email delivers results emails over SMTP.
package email

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
	"github.com/samirrijal/restroomfinder/internal/pkg/logging"
	"github.com/samirrijal/restroomfinder/internal/pkg/metrics"
)

// ErrNoRestrooms is returned when a results email has nothing to list.
var ErrNoRestrooms = fmt.Errorf("%w: no restrooms to list", domain.ErrUndeliverableEmail)

// headerEntityRefID carries the email id so mail clients do not thread results.
const headerEntityRefID gomail.Header = "X-Entity-Ref-ID"

// SMTPConfig holds the SMTP credentials and sender identity.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	Subject   string
	Timeout   time.Duration
}

// SMTPSender implements ports.ResultsMailer using a direct SMTP connection via go-mail.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a new SMTPSender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SMTPSender{cfg: cfg}
}

// BuildMessage renders msg into a go-mail message without sending it.
func (s *SMTPSender) BuildMessage(msg domain.ResultsEmail) (*gomail.Msg, error) {
	if len(msg.Restrooms) == 0 {
		return nil, ErrNoRestrooms
	}
	restrooms := msg.Restrooms
	if len(restrooms) > usecases.MaxEmailResults {
		restrooms = restrooms[:usecases.MaxEmailResults]
	}

	body, err := RenderResults(msg.Label, restrooms)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(s.cfg.FromName, s.cfg.FromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("%w: recipient: %v", domain.ErrUndeliverableEmail, err)
	}
	m.Subject(s.cfg.Subject)
	if msg.ID != "" {
		m.SetGenHeader(headerEntityRefID, msg.ID)
	}
	m.SetBodyString(gomail.TypeTextHTML, body)
	return m, nil
}

// SendResults renders and delivers msg.
func (s *SMTPSender) SendResults(ctx context.Context, msg domain.ResultsEmail) error {
	m, err := s.BuildMessage(msg)
	if err != nil {
		metrics.EmailsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(s.cfg.Timeout),
	)
	if err != nil {
		metrics.EmailsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("smtp client: %w", err)
	}

	start := time.Now()
	err = client.DialAndSendWithContext(ctx, m)
	metrics.ObserveProvider("smtp", start, err)
	if err != nil {
		metrics.EmailsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("smtp send: %w", err)
	}

	metrics.EmailsTotal.WithLabelValues("sent").Inc()
	logging.FromContext(ctx).Info("results email sent", "email_id", msg.ID, "restrooms", len(msg.Restrooms))
	return nil
}
