package configuration

import (
	"context"
	"time"

	"github.com/goliatone/go-formlayout/pkg/schema"
)

// SchemaFetcher retrieves the schema of a content type.
type SchemaFetcher interface {
	FetchSchema(ctx context.Context, uid string) (schema.Schema, error)
}

// ConfigurationFetcher retrieves the stored configuration of a content type.
type ConfigurationFetcher interface {
	FetchConfiguration(ctx context.Context, uid string) (Configuration, error)
}

// ConfigurationUpdater persists a submission and returns the stored record.
type ConfigurationUpdater interface {
	UpdateConfiguration(ctx context.Context, uid string, sub Submission) (Configuration, error)
}

// Store is the union of the persistence collaborators.
type Store interface {
	SchemaFetcher
	ConfigurationFetcher
	ConfigurationUpdater
}

// NotificationKind classifies a user-facing notification.
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyWarning NotificationKind = "warning"
)

// Notification is a message surfaced to whoever drives the session.
type Notification struct {
	Kind    NotificationKind `json:"type"`
	UID     string           `json:"uid,omitempty"`
	Message string           `json:"message"`
}

// Notifier surfaces notifications. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

// Notify implements Notifier.
func (fn NotifierFunc) Notify(ctx context.Context, n Notification) {
	if fn != nil {
		fn(ctx, n)
	}
}

// EventConfigurationUpdated is published after a successful submit.
const EventConfigurationUpdated = "configuration.updated"

// Event describes a change to a stored configuration.
type Event struct {
	Type      string    `json:"type"`
	UID       string    `json:"uid"`
	SessionID string    `json:"sessionId,omitempty"`
	Fields    []string  `json:"fields"`
	At        time.Time `json:"at"`
}

// Publisher delivers events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }
