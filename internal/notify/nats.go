// Package notify delivers configuration events over NATS and surfaces
// session notifications through the structured logger.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/goliatone/go-formlayout/pkg/configuration"
)

// DefaultSubject prefixes every published event type.
const DefaultSubject = "formlayout"

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// Publisher implements configuration.Publisher on a NATS connection.
type Publisher struct {
	conn    Conn
	subject string
	logger  *zap.Logger
}

var _ configuration.Publisher = (*Publisher)(nil)

// Connect dials url and returns a Publisher posting under subject.
func Connect(url, subject string, logger *zap.Logger) (*Publisher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("notify: nats url is required")
	}
	nc, err := nats.Connect(url, nats.Name("formlayout"))
	if err != nil {
		return nil, fmt.Errorf("notify: nats connect: %w", err)
	}
	p := NewPublisher(nc, subject, logger)
	p.logger.Info("nats connected", zap.String("url", url), zap.String("subject", p.subject))
	return p, nil
}

// NewPublisher wraps an existing connection.
func NewPublisher(conn Conn, subject string, logger *zap.Logger) *Publisher {
	subject = strings.Trim(strings.TrimSpace(subject), ".")
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{conn: conn, subject: subject, logger: logger}
}

// Subject returns the NATS subject an event is published on.
func (p *Publisher) Subject(event configuration.Event) string {
	return p.subject + "." + event.Type
}

// Publish encodes event as JSON and posts it.
func (p *Publisher) Publish(ctx context.Context, event configuration.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: encode event: %w", err)
	}
	subject := p.Subject(event)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("notify: nats publish %s: %w", subject, err)
	}
	p.logger.Debug("event published", zap.String("subject", subject), zap.String("uid", event.UID))
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() error {
	return p.conn.Drain()
}
