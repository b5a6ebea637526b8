package messages_test

import (
	"testing"

	"github.com/goliatone/go-formlayout/pkg/messages"
)

func TestFormat_DefaultsAndInterpolation(t *testing.T) {
	f := messages.New()

	got := f.Format(messages.KeyHeaderTitle, map[string]any{"name": messages.Capitalise("article")})
	if got != "Configure the view - Article" {
		t.Fatalf("unexpected header title: %q", got)
	}
	if got := f.Format(messages.KeyMoveField, map[string]any{"item": "Title"}); got != "Move Title" {
		t.Fatalf("unexpected move label: %q", got)
	}
	if got := f.Format("unknown.key", nil); got != "unknown.key" {
		t.Fatalf("unknown keys should render as the key, got %q", got)
	}
}

func TestFormat_UsesTranslatorWithFallback(t *testing.T) {
	catalog := messages.Catalog{
		"es": {messages.KeySettings: "Ajustes"},
	}
	f := messages.New(messages.WithLocale("es"), messages.WithTranslator(catalog))

	if got := f.Format(messages.KeySettings, nil); got != "Ajustes" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := f.Format(messages.KeyView, nil); got != "View" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestFormat_MissingHandler(t *testing.T) {
	var seen string
	f := messages.New(messages.WithMissingHandler(func(locale, key, fallback string, err error) string {
		seen = key
		if err == nil {
			t.Fatalf("missing handler should receive the lookup error")
		}
		return "[" + fallback + "]"
	}))

	if got := f.Format(messages.KeySave, nil); got != "[Save]" {
		t.Fatalf("unexpected output: %q", got)
	}
	if seen != messages.KeySave {
		t.Fatalf("missing handler saw %q", seen)
	}
}

func TestCapitalise(t *testing.T) {
	for in, want := range map[string]string{"": "", "article": "Article", "éclair": "Éclair", "A": "A"} {
		if got := messages.Capitalise(in); got != want {
			t.Fatalf("Capitalise(%q) = %q, want %q", in, got, want)
		}
	}
}
