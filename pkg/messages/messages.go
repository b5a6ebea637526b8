// Package messages formats the user-facing strings of the layout editor:
// translated through an optional Translator, falling back to built-in
// defaults, with {placeholder} interpolation.
package messages

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Message keys used across the editor.
const (
	KeyHeaderTitle       = "components.SettingsViewWrapper.pluginHeader.title"
	KeyHeaderSubtitle    = "components.SettingsViewWrapper.pluginHeader.description.edit-settings"
	KeySettings          = "containers.SettingPage.settings"
	KeyEntryTitle        = "containers.SettingPage.editSettings.entry.title"
	KeyEntryTitleHint    = "containers.SettingPage.editSettings.entry.title.description"
	KeyView              = "containers.SettingPage.view"
	KeyDisplayedFields   = "containers.ListPage.displayedFields"
	KeyDragHint          = "containers.SettingPage.editSettings.description"
	KeyInsertField       = "containers.SettingPage.add.field"
	KeyMoveField         = "components.DraggableCard.move.field"
	KeyEditField         = "components.DraggableCard.edit.field"
	KeyDeleteField       = "components.DraggableCard.delete.field"
	KeyBack              = "global.back"
	KeySave              = "global.save"
	KeySaved             = "notification.success.saved"
	KeyNoFieldsAvailable = "containers.SettingPage.add.field.empty"
)

// Defaults holds the English fallback for every key.
var Defaults = map[string]string{
	KeyHeaderTitle:       "Configure the view - {name}",
	KeyHeaderSubtitle:    "Customize how the edit view will look like.",
	KeySettings:          "Settings",
	KeyEntryTitle:        "Entry title",
	KeyEntryTitleHint:    "Set the display field of your entry",
	KeyView:              "View",
	KeyDisplayedFields:   "Displayed fields",
	KeyDragHint:          "Drag & drop the fields to build the layout",
	KeyInsertField:       "Insert another field",
	KeyMoveField:         "Move {item}",
	KeyEditField:         "Edit {item}",
	KeyDeleteField:       "Delete {item}",
	KeyBack:              "Back",
	KeySave:              "Save",
	KeySaved:             "Saved",
	KeyNoFieldsAvailable: "Every visible field is already placed",
}

// ErrMissingTranslator is passed to the missing handler when no Translator
// is configured.
var ErrMissingTranslator = errors.New("messages: translator not configured")

// Translator resolves a key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Catalog is an in-memory Translator keyed by locale then message key.
type Catalog map[string]map[string]string

// Translate implements Translator.
func (c Catalog) Translate(locale, key string, _ ...any) (string, error) {
	if entries, ok := c[locale]; ok {
		if msg, ok := entries[key]; ok {
			return msg, nil
		}
	}
	return "", fmt.Errorf("messages: no %q translation for %q", locale, key)
}

// MissingHandler decides what to show when a translation is unavailable.
type MissingHandler func(locale, key, fallback string, err error) string

// Option configures a Formatter.
type Option func(*Formatter)

// WithLocale selects the locale passed to the Translator.
func WithLocale(locale string) Option {
	return func(f *Formatter) {
		f.locale = strings.TrimSpace(locale)
	}
}

// WithTranslator installs a Translator.
func WithTranslator(t Translator) Option {
	return func(f *Formatter) {
		f.translator = t
	}
}

// WithMissingHandler overrides the fallback behaviour.
func WithMissingHandler(h MissingHandler) Option {
	return func(f *Formatter) {
		f.onMissing = h
	}
}

// Formatter renders message keys into display text.
type Formatter struct {
	locale     string
	translator Translator
	onMissing  MissingHandler
}

// New returns a Formatter. Without options it renders the English defaults.
func New(opts ...Option) *Formatter {
	f := &Formatter{locale: "en"}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Locale returns the configured locale.
func (f *Formatter) Locale() string {
	if f == nil {
		return ""
	}
	return f.locale
}

// Format translates key and interpolates values into {placeholder} slots.
// Unknown keys fall back to Defaults, then to the key itself.
func (f *Formatter) Format(key string, values map[string]any) string {
	if f == nil {
		f = New()
	}
	return interpolate(f.translate(key), values)
}

func (f *Formatter) translate(key string) string {
	key = strings.TrimSpace(key)
	fallback := Defaults[key]

	if f.translator == nil {
		return f.missing(key, fallback, ErrMissingTranslator)
	}
	result, err := f.translator.Translate(f.locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return f.missing(key, fallback, err)
}

func (f *Formatter) missing(key, fallback string, err error) string {
	if f.onMissing != nil {
		return f.onMissing(f.locale, key, fallback, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

func interpolate(template string, values map[string]any) string {
	if len(values) == 0 || !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Capitalise upper-cases the first rune of s.
func Capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
