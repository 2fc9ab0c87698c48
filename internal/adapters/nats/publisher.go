package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// SearchSubjectPrefix prefixes the per-modality search event subjects.
const SearchSubjectPrefix = "restroom.search."

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("restroomfinder-api"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	// Ensure streams exist
	streams := []nats.StreamConfig{
		{
			Name:       "RESTROOM_SEARCHES",
			Subjects:   []string{SearchSubjectPrefix + ">"},
			Retention:  nats.LimitsPolicy,
			MaxAge:     7 * 24 * time.Hour,
			Storage:    nats.FileStorage,
			Duplicates: 2 * time.Minute,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist, try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishSearch publishes ev on restroom.search.<modality>. The event id is
// the JetStream message id so redeliveries are deduplicated.
func (p *Publisher) PublishSearch(ctx context.Context, ev *domain.SearchEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SearchSubject(ev.Modality), data, nats.MsgId(ev.ID), nats.Context(ctx))
	return err
}

// Connected reports whether the underlying connection is up.
func (p *Publisher) Connected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// SearchSubject is the subject search events for m are published on.
func SearchSubject(m domain.Modality) string {
	return SearchSubjectPrefix + string(m)
}
