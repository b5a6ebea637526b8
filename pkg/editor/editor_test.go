package editor_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/editor"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/testsupport"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	infos     []string
	selectErr error

	inputPos   int
	selectPos  int
	confirmPos int
}

func (s *stubDriver) Input(_ context.Context, cfg editor.InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ editor.ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ editor.SelectConfig) (int, error) {
	if s.selectErr != nil {
		return 0, s.selectErr
	}
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

// Menu indices as presented by the editor.
const (
	menuInsert = iota
	menuMove
	menuEdit
	menuDelete
	menuMainField
	menuReset
	menuSave
	menuBack
)

func openArticle(t *testing.T) (*configuration.Session, func() int) {
	t.Helper()
	store := testsupport.ArticleStore(t)
	service := configuration.NewStoreService(store)
	session, err := service.Open(testsupport.Context(), testsupport.ArticleUID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return session, store.Updates
}

func TestRun_InsertDeleteSave(t *testing.T) {
	session, updates := openArticle(t)
	driver := &stubDriver{
		// insert cover, delete slug, save
		selectIdx: []int{menuInsert, 0, menuDelete, 1, menuSave},
		inputs:    []string{"append-row"},
	}

	submitted, err := editor.New(editor.WithPromptDriver(driver)).Run(testsupport.Context(), session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !submitted {
		t.Fatalf("expected the session to be submitted")
	}
	if updates() != 1 {
		t.Fatalf("expected one stored update, got %d", updates())
	}
	want := []string{"title", "body", "views", "cover"}
	if diff := cmp.Diff(want, session.Rows().Names()); diff != "" {
		t.Fatalf("placed fields mismatch (-want +got):\n%s", diff)
	}
	if last := driver.infos[len(driver.infos)-1]; last != "Saved" {
		t.Fatalf("expected saved notice, got %q", last)
	}
}

func TestRun_EditRelabelsAndResizes(t *testing.T) {
	session, _ := openArticle(t)
	driver := &stubDriver{
		// edit views, discard on back
		selectIdx: []int{menuEdit, 3, menuBack},
		inputs:    []string{"Hits", "8"},
		confirm:   []bool{true},
	}

	submitted, err := editor.New(editor.WithPromptDriver(driver)).Run(testsupport.Context(), session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if submitted {
		t.Fatalf("expected no submission")
	}
	entry, _ := session.Rows().At(layout.Coord{Row: 2})
	if entry.Label != "Hits" || entry.Size != 8 {
		t.Fatalf("unexpected title entry: %+v", entry)
	}
}

func TestRun_DomainErrorsAreReported(t *testing.T) {
	session, _ := openArticle(t)
	driver := &stubDriver{
		// move title to an impossible row, then leave
		selectIdx: []int{menuMove, 0, menuBack},
		inputs:    []string{"9,0"},
	}

	if _, err := editor.New(editor.WithPromptDriver(driver)).Run(testsupport.Context(), session); err != nil {
		t.Fatalf("run: %v", err)
	}
	if session.Modified() {
		t.Fatalf("failed move must not modify the session")
	}
	found := false
	for _, msg := range driver.infos {
		if strings.Contains(msg, "coordinate out of range") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the move error to be shown, got %q", driver.infos)
	}
}

func TestRun_AbortStops(t *testing.T) {
	session, _ := openArticle(t)
	driver := &stubDriver{selectErr: editor.ErrAborted}

	_, err := editor.New(editor.WithPromptDriver(driver)).Run(testsupport.Context(), session)
	if !errors.Is(err, editor.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	rows := layout.Rows{
		{layout.Field("title", 6, ""), layout.Filler(6)},
		{layout.Field("body", 12, "Body")},
	}
	metas := schema.Metadatas{"title": {Label: "Title"}}

	want := " 0 | Title (6) | ...... |\n 1 | Body (12) |"
	if got := editor.Describe(rows, metas); got != want {
		t.Fatalf("unexpected description:\n got %q\nwant %q", got, want)
	}
	if got := editor.Describe(nil, nil); got != "(empty layout)" {
		t.Fatalf("unexpected empty description %q", got)
	}
}
