package configuration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/messages"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/settings"
)

var (
	// ErrFieldUnavailable is returned when inserting an attribute that is
	// hidden, unknown or already placed.
	ErrFieldUnavailable = errors.New("configuration: field is not available")
	// ErrInvalidLayout wraps structural layout violations found on submit.
	ErrInvalidLayout = errors.New("configuration: invalid layout")
	// ErrInvalidSettings wraps settings violations found on submit.
	ErrInvalidSettings = errors.New("configuration: invalid settings")
)

// Session is the working state of one edit-view configuration. It is owned
// by a single caller and is not safe for concurrent use.
type Session struct {
	ID       string
	UID      string
	Schema   schema.Schema
	OpenedAt time.Time

	service  *Service
	original Configuration
	rows     layout.Rows
	settings settings.Settings
	modified bool
	touched  time.Time
}

// Rows returns a copy of the current normalized layout.
func (s *Session) Rows() layout.Rows {
	return s.rows.Clone()
}

// Settings returns the current settings.
func (s *Session) Settings() settings.Settings {
	return s.settings
}

// Metadatas returns the metadata of the stored configuration.
func (s *Session) Metadatas() schema.Metadatas {
	return s.original.Metadatas
}

// Original returns the configuration the session started from.
func (s *Session) Original() Configuration {
	return s.original
}

// Modified reports whether the working state differs from the original.
func (s *Session) Modified() bool {
	return s.modified
}

// LastActivity returns the time of the last operation.
func (s *Session) LastActivity() time.Time {
	return s.touched
}

// Available lists the visible attributes not yet placed, in schema order.
func (s *Session) Available() []string {
	return layout.Available(s.Schema.Attributes, s.rows, s.original.Metadatas)
}

// MainFieldOptions lists the attributes that may act as the main field.
func (s *Session) MainFieldOptions() []settings.Option {
	return settings.EligibleMainFields(s.Schema.Attributes)
}

// Title is the localized page heading for the session.
func (s *Session) Title() string {
	name := s.Schema.DisplayName
	if name == "" {
		name = s.UID
	}
	return s.service.messages.Format(messages.KeyHeaderTitle, map[string]any{"name": messages.Capitalise(name)})
}

// Insert places an available attribute at pos using its widget size and
// metadata label.
func (s *Session) Insert(name string, pos layout.Position) error {
	if !s.isAvailable(name) {
		return fmt.Errorf("configuration: insert %q: %w", name, ErrFieldUnavailable)
	}
	attr, _ := s.Schema.Attributes.Get(name)
	entry := layout.Field(name, s.service.widgets.Size(attr), s.original.Metadatas.Label(name))
	rows, err := layout.Insert(s.rows, entry, pos, s.policy())
	if err != nil {
		return err
	}
	s.apply(rows)
	return nil
}

// Remove takes name out of the layout. Fillers are recomputed immediately so
// every row keeps spanning the grid.
func (s *Session) Remove(name string) error {
	rows, err := layout.Remove(s.rows, name)
	if err != nil {
		return err
	}
	if rows, err = layout.Repad(rows, s.policy()); err != nil {
		return fmt.Errorf("configuration: remove %q: %w", name, err)
	}
	s.apply(rows)
	return nil
}

// RemoveAt removes the attribute entry at c.
func (s *Session) RemoveAt(c layout.Coord) error {
	rows, err := layout.RemoveAt(s.rows, c)
	if err != nil {
		return err
	}
	if rows, err = layout.Repad(rows, s.policy()); err != nil {
		return fmt.Errorf("configuration: remove at %v: %w", c, err)
	}
	s.apply(rows)
	return nil
}

// Move relocates the entry at from to to.
func (s *Session) Move(from, to layout.Coord) error {
	rows, err := layout.Move(s.rows, from, to, s.service.reorderer, s.policy())
	if err != nil {
		return err
	}
	s.apply(rows)
	return nil
}

// Resize changes the width of a placed attribute.
func (s *Session) Resize(name string, size int) error {
	rows, err := layout.Resize(s.rows, name, size, s.policy())
	if err != nil {
		return err
	}
	s.apply(rows)
	return nil
}

// Relabel changes the label of a placed attribute.
func (s *Session) Relabel(name, label string) error {
	rows, err := layout.Relabel(s.rows, name, label)
	if err != nil {
		return err
	}
	s.apply(rows)
	return nil
}

// Replace swaps the whole layout for rows, recomputing fillers. Rows may
// arrive with or without fillers.
func (s *Session) Replace(rows layout.Rows) error {
	normalized, err := layout.Normalize([]layout.Panel{layout.Panel(rows)}, s.policy())
	if err != nil {
		return fmt.Errorf("configuration: replace layout: %w", err)
	}
	if _, err := layout.Validate(normalized, s.Schema.Attributes, s.policy()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	s.apply(normalized)
	return nil
}

// SetMainField selects the attribute used to label records.
func (s *Session) SetMainField(name string) error {
	next := s.settings
	next.MainField = name
	if err := settings.Validate(next, s.Schema.Attributes); err != nil {
		return err
	}
	s.settings = next
	s.modified = true
	s.touch()
	return nil
}

// UpdateSettings replaces the settings after validating them.
func (s *Session) UpdateSettings(next settings.Settings) error {
	if err := settings.Validate(next, s.Schema.Attributes); err != nil {
		return err
	}
	s.settings = next
	s.modified = true
	s.touch()
	return nil
}

// Reset discards every change since the session opened or last submitted.
func (s *Session) Reset() error {
	rows, err := s.original.Rows(s.policy())
	if err != nil {
		return err
	}
	s.rows = rows
	s.settings = withDefaultMainField(s.original.Settings, s.Schema.Attributes)
	s.modified = false
	s.touch()
	return nil
}

// Submission returns the outbound payload for the current state.
func (s *Session) Submission() Submission {
	return Submission{Layout: s.rows.Clone(), Settings: s.settings}
}

// Submit validates the working state, persists it, and on success replaces
// the session's original with the stored record.
func (s *Session) Submit(ctx context.Context) (Configuration, error) {
	svc := s.service
	if svc.updater == nil {
		return Configuration{}, ErrNoUpdater
	}

	sub := s.Submission()
	sub.Layout = sanitizeRows(sub.Layout)

	if err := settings.Validate(sub.Settings, s.Schema.Attributes); err != nil {
		return Configuration{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	warnings, err := layout.Validate(sub.Layout, s.Schema.Attributes, s.policy())
	if err != nil {
		return Configuration{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	if len(warnings) > 0 {
		svc.logger.Warn("layout names unknown attributes",
			zap.String("uid", s.UID),
			zap.Strings("fields", warnings),
		)
	}

	stored, err := svc.updater.UpdateConfiguration(ctx, s.UID, sub)
	if err != nil {
		svc.notifier.Notify(ctx, Notification{Kind: NotifyWarning, UID: s.UID, Message: err.Error()})
		return Configuration{}, fmt.Errorf("configuration: submit %s: %w", s.UID, err)
	}
	rows, err := stored.Rows(s.policy())
	if err != nil {
		return Configuration{}, err
	}

	s.original = stored
	s.rows = rows
	s.settings = stored.Settings
	s.modified = false
	s.touch()

	event := Event{
		Type:      EventConfigurationUpdated,
		UID:       s.UID,
		SessionID: s.ID,
		Fields:    rows.Names(),
		At:        svc.now(),
	}
	if err := svc.publisher.Publish(ctx, event); err != nil {
		svc.logger.Warn("publish configuration event", zap.String("uid", s.UID), zap.Error(err))
	}
	svc.notifier.Notify(ctx, Notification{
		Kind:    NotifySuccess,
		UID:     s.UID,
		Message: svc.messages.Format(messages.KeySaved, nil),
	})
	return stored, nil
}

func (s *Session) isAvailable(name string) bool {
	for _, candidate := range s.Available() {
		if candidate == name {
			return true
		}
	}
	return false
}

func (s *Session) policy() layout.Option {
	return layout.WithOverflowPolicy(s.service.overflow)
}

// withDefaultMainField fills an empty main field (and sort key) from the
// schema defaults, keeping every other stored setting.
func withDefaultMainField(current settings.Settings, attrs schema.Attributes) settings.Settings {
	if current.MainField != "" {
		return current
	}
	defaults := settings.Defaults(attrs)
	current.MainField = defaults.MainField
	if current.DefaultSortBy == "" {
		current.DefaultSortBy = defaults.DefaultSortBy
	}
	return current
}

func (s *Session) apply(rows layout.Rows) {
	s.rows = rows
	s.modified = true
	s.touch()
}

func (s *Session) touch() {
	s.touched = s.service.now()
}
