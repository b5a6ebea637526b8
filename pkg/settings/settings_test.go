package settings_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/settings"
)

func TestEligibleMainFields_Example(t *testing.T) {
	attrs := schema.NewAttributes(
		schema.Attribute{Name: "title", Type: schema.TypeText},
		schema.Attribute{Name: "category", Type: schema.TypeRelation},
		schema.Attribute{Name: "views", Type: schema.TypeInteger},
	)

	want := []settings.Option{{Label: "views", Value: "views"}}
	if diff := cmp.Diff(want, settings.EligibleMainFields(attrs)); diff != "" {
		t.Fatalf("eligible main fields mismatch (-want +got):\n%s", diff)
	}
}

func TestEligibleMainFields_ExcludesEveryBlockedType(t *testing.T) {
	blocked := []schema.AttributeType{
		schema.TypeDynamicZone, schema.TypeJSON, schema.TypeText, schema.TypeRelation,
		schema.TypeComponent, schema.TypeBoolean, schema.TypeMedia, schema.TypePassword,
		schema.TypeRichText, schema.TypeTimestamp, schema.TypeBlocks,
	}
	allowed := []schema.AttributeType{
		schema.TypeString, schema.TypeUID, schema.TypeEmail, schema.TypeInteger,
		schema.TypeDate, schema.TypeEnumeration, "plugin::color-picker.color",
	}

	var attrs schema.Attributes
	var want []settings.Option
	for _, typ := range blocked {
		attrs.Set(schema.Attribute{Name: "blocked_" + string(typ), Type: typ})
	}
	for _, typ := range allowed {
		name := "allowed_" + string(typ)
		attrs.Set(schema.Attribute{Name: name, Type: typ})
		want = append(want, settings.Option{Label: name, Value: name})
	}

	if diff := cmp.Diff(want, settings.EligibleMainFields(attrs)); diff != "" {
		t.Fatalf("eligible main fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaults_PrefersFirstNonIDField(t *testing.T) {
	attrs := schema.NewAttributes(
		schema.Attribute{Name: "id", Type: schema.TypeInteger},
		schema.Attribute{Name: "body", Type: schema.TypeRichText},
		schema.Attribute{Name: "title", Type: schema.TypeString},
	)
	got := settings.Defaults(attrs)
	if got.MainField != "title" || got.DefaultSortBy != "title" {
		t.Fatalf("unexpected defaults: %#v", got)
	}
	if got.DefaultSortOrder != settings.SortAsc || got.PageSize != 10 {
		t.Fatalf("unexpected default sort/page: %#v", got)
	}

	if fallback := settings.Defaults(schema.Attributes{}); fallback.MainField != "id" {
		t.Fatalf("empty schema should fall back to id, got %q", fallback.MainField)
	}
}

func TestValidate(t *testing.T) {
	attrs := schema.NewAttributes(
		schema.Attribute{Name: "title", Type: schema.TypeString},
		schema.Attribute{Name: "body", Type: schema.TypeRichText},
	)

	if err := settings.Validate(settings.Settings{MainField: "title", DefaultSortOrder: settings.SortDesc, PageSize: 20}, attrs); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}
	if err := settings.Validate(settings.Settings{MainField: "id"}, attrs); err != nil {
		t.Fatalf("id main field rejected: %v", err)
	}

	err := settings.Validate(settings.Settings{MainField: "body", DefaultSortOrder: "sideways", PageSize: 500}, attrs)
	for _, want := range []error{settings.ErrIneligibleMainField, settings.ErrInvalidSortOrder, settings.ErrInvalidPageSize} {
		if !errors.Is(err, want) {
			t.Fatalf("expected %v in %v", want, err)
		}
	}

	if err := settings.Validate(settings.Settings{MainField: "ghost"}, attrs); !errors.Is(err, settings.ErrIneligibleMainField) {
		t.Fatalf("unknown main field should be rejected, got %v", err)
	}
}
