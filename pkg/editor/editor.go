// Package editor drives a configuration session from a terminal.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/messages"
	"github.com/goliatone/go-formlayout/pkg/schema"
)

// ErrAborted signals the user interrupted a prompt (Ctrl+C).
var ErrAborted = errors.New("editor: aborted")

type action int

const (
	actionInsert action = iota
	actionMove
	actionEdit
	actionDelete
	actionMainField
	actionReset
	actionSave
	actionBack
)

// Editor runs the interactive editing loop.
type Editor struct {
	driver   PromptDriver
	messages *messages.Formatter
}

// Option configures an Editor.
type Option func(*Editor)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithMessages sets the formatter for menu labels.
func WithMessages(f *messages.Formatter) Option {
	return func(e *Editor) {
		if f != nil {
			e.messages = f
		}
	}
}

// New returns an Editor prompting on the terminal unless configured otherwise.
func New(opts ...Option) *Editor {
	e := &Editor{
		driver:   NewSurveyDriver(),
		messages: messages.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Run edits session until the user saves or goes back. It reports whether
// the session was submitted.
func (e *Editor) Run(ctx context.Context, session *configuration.Session) (bool, error) {
	if err := e.driver.Info(ctx, session.Title()); err != nil {
		return false, err
	}
	for {
		if err := e.driver.Info(ctx, Describe(session.Rows(), session.Metadatas())); err != nil {
			return false, err
		}
		choice, err := e.driver.Select(ctx, SelectConfig{
			Message: e.messages.Format(messages.KeyView, nil),
			Options: e.menu(),
		})
		if err != nil {
			return false, err
		}

		switch action(choice) {
		case actionSave:
			if _, err := session.Submit(ctx); err != nil {
				if infoErr := e.driver.Info(ctx, err.Error()); infoErr != nil {
					return false, infoErr
				}
				continue
			}
			return true, e.driver.Info(ctx, e.messages.Format(messages.KeySaved, nil))
		case actionBack:
			if !session.Modified() {
				return false, nil
			}
			discard, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "Discard unsaved changes?"})
			if err != nil {
				return false, err
			}
			if discard {
				return false, nil
			}
			continue
		}

		if err := e.step(ctx, session, action(choice)); err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
				return false, err
			}
			if infoErr := e.driver.Info(ctx, err.Error()); infoErr != nil {
				return false, infoErr
			}
		}
	}
}

func (e *Editor) menu() []string {
	item := map[string]any{"item": "field"}
	return []string{
		actionInsert:    e.messages.Format(messages.KeyInsertField, nil),
		actionMove:      e.messages.Format(messages.KeyMoveField, item),
		actionEdit:      e.messages.Format(messages.KeyEditField, item),
		actionDelete:    e.messages.Format(messages.KeyDeleteField, item),
		actionMainField: e.messages.Format(messages.KeyEntryTitle, nil),
		actionReset:     "Reset",
		actionSave:      e.messages.Format(messages.KeySave, nil),
		actionBack:      e.messages.Format(messages.KeyBack, nil),
	}
}

func (e *Editor) step(ctx context.Context, session *configuration.Session, act action) error {
	switch act {
	case actionInsert:
		return e.insert(ctx, session)
	case actionMove:
		return e.move(ctx, session)
	case actionEdit:
		return e.edit(ctx, session)
	case actionDelete:
		name, err := e.pickPlaced(ctx, session, messages.KeyDeleteField)
		if err != nil || name == "" {
			return err
		}
		return session.Remove(name)
	case actionMainField:
		return e.mainField(ctx, session)
	case actionReset:
		ok, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "Discard every change?"})
		if err != nil || !ok {
			return err
		}
		return session.Reset()
	}
	return fmt.Errorf("editor: unknown action %d", act)
}

func (e *Editor) insert(ctx context.Context, session *configuration.Session) error {
	available := session.Available()
	if len(available) == 0 {
		return e.driver.Info(ctx, e.messages.Format(messages.KeyNoFieldsAvailable, nil))
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message: e.messages.Format(messages.KeyInsertField, nil),
		Options: available,
	})
	if err != nil {
		return err
	}
	raw, err := e.driver.Input(ctx, InputConfig{
		Message:   "Position",
		Default:   layout.FirstFit.String(),
		Help:      `"first-fit", "append-row" or "row,col" (zero based)`,
		Validator: validatePosition,
	})
	if err != nil {
		return err
	}
	pos, err := layout.ParsePosition(raw)
	if err != nil {
		return err
	}
	return session.Insert(available[idx], pos)
}

func (e *Editor) move(ctx context.Context, session *configuration.Session) error {
	name, err := e.pickPlaced(ctx, session, messages.KeyMoveField)
	if err != nil || name == "" {
		return err
	}
	from, _ := session.Rows().Find(name)
	raw, err := e.driver.Input(ctx, InputConfig{
		Message:   "Target",
		Default:   formatCoord(from),
		Help:      `"row,col" (zero based)`,
		Validator: func(v string) error { _, err := parseCoord(v); return err },
	})
	if err != nil {
		return err
	}
	to, err := parseCoord(raw)
	if err != nil {
		return err
	}
	return session.Move(from, to)
}

func (e *Editor) edit(ctx context.Context, session *configuration.Session) error {
	name, err := e.pickPlaced(ctx, session, messages.KeyEditField)
	if err != nil || name == "" {
		return err
	}
	rows := session.Rows()
	at, _ := rows.Find(name)
	entry, _ := rows.At(at)

	label, err := e.driver.Input(ctx, InputConfig{Message: "Label", Default: entry.Label})
	if err != nil {
		return err
	}
	rawSize, err := e.driver.Input(ctx, InputConfig{
		Message: "Size",
		Default: strconv.Itoa(entry.Size),
		Validator: func(v string) error {
			_, err := strconv.Atoi(strings.TrimSpace(v))
			return err
		},
	})
	if err != nil {
		return err
	}
	size, err := strconv.Atoi(strings.TrimSpace(rawSize))
	if err != nil {
		return err
	}
	if label != entry.Label {
		if err := session.Relabel(name, label); err != nil {
			return err
		}
	}
	if size != entry.Size {
		return session.Resize(name, size)
	}
	return nil
}

func (e *Editor) mainField(ctx context.Context, session *configuration.Session) error {
	options := session.MainFieldOptions()
	labels := make([]string, len(options))
	current := session.Settings().MainField
	defaultIdx := -1
	for i, opt := range options {
		labels[i] = opt.Label
		if opt.Value == current {
			defaultIdx = i
		}
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      e.messages.Format(messages.KeyEntryTitle, nil),
		Help:         e.messages.Format(messages.KeyEntryTitleHint, nil),
		Options:      labels,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return nil
	}
	return session.SetMainField(options[idx].Value)
}

// pickPlaced prompts for one of the placed attributes. An empty layout
// yields an empty name.
func (e *Editor) pickPlaced(ctx context.Context, session *configuration.Session, key string) (string, error) {
	names := session.Rows().Names()
	if len(names) == 0 {
		return "", nil
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message: e.messages.Format(key, map[string]any{"item": "field"}),
		Options: names,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(names) {
		return "", nil
	}
	return names[idx], nil
}

// Describe renders rows as text, one grid line per row.
func Describe(rows layout.Rows, metas schema.Metadatas) string {
	if len(rows) == 0 {
		return "(empty layout)"
	}
	var b strings.Builder
	for i, row := range rows {
		fmt.Fprintf(&b, "%2d |", i)
		for _, entry := range row {
			if entry.IsFiller() {
				fmt.Fprintf(&b, " %s |", strings.Repeat(".", entry.Size))
				continue
			}
			label := entry.Label
			if label == "" {
				label = metas.Label(entry.Name)
			}
			fmt.Fprintf(&b, " %s (%d) |", label, entry.Size)
		}
		if i < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func validatePosition(raw string) error {
	_, err := layout.ParsePosition(raw)
	return err
}

func parseCoord(raw string) (layout.Coord, error) {
	var c layout.Coord
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d,%d", &c.Row, &c.Col); err != nil {
		return layout.Coord{}, fmt.Errorf("editor: invalid coordinate %q", raw)
	}
	return c, nil
}

func formatCoord(c layout.Coord) string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}
