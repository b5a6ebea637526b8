package schema_test

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/source"
)

func loadFixture(t *testing.T, path string) schema.Schema {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	out, err := schema.Parse(source.MustNewDocument(source.FromFile(path), data))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return out
}

func TestParse_JSONKeepsDeclarationOrder(t *testing.T) {
	s := loadFixture(t, "testdata/article.json")

	want := []string{"id", "title", "slug", "body", "cover", "category", "views", "published"}
	if diff := cmp.Diff(want, s.Attributes.Names()); diff != "" {
		t.Fatalf("attribute order mismatch (-want +got):\n%s", diff)
	}

	category, ok := s.Attributes.Get("category")
	if !ok {
		t.Fatalf("category attribute missing")
	}
	if category.Name != "category" || category.Type != schema.TypeRelation {
		t.Fatalf("unexpected category attribute: %#v", category)
	}
	if category.Target != "api::category.category" {
		t.Fatalf("relation target not decoded: %#v", category)
	}
}

func TestParse_YAMLKeepsDeclarationOrder(t *testing.T) {
	s := loadFixture(t, "testdata/article.yaml")

	want := []string{"zeta", "alpha", "middle"}
	if diff := cmp.Diff(want, s.Attributes.Names()); diff != "" {
		t.Fatalf("attribute order mismatch (-want +got):\n%s", diff)
	}
	middle, _ := s.Attributes.Get("middle")
	if diff := cmp.Diff([]string{"draft", "live"}, middle.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBytes_Errors(t *testing.T) {
	if _, err := schema.ParseBytes([]byte("   "), "blank"); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := schema.ParseBytes([]byte(`{"attributes":{}}`), "nouid"); !errors.Is(err, schema.ErrEmptyUID) {
		t.Fatalf("expected ErrEmptyUID, got %v", err)
	}
	if _, err := schema.ParseBytes([]byte(`{"uid":"x","attributes":{"a":{}}}`), "notype"); err == nil {
		t.Fatalf("expected error for attribute without type")
	}
	if _, err := schema.ParseBytes([]byte(`{"uid":"x","attributes":{"_TEMP_":{"type":"string"}}}`), "reserved"); !errors.Is(err, schema.ErrReservedName) {
		t.Fatalf("expected ErrReservedName, got %v", err)
	}
}

func TestAttributes_RoundTripPreservesOrder(t *testing.T) {
	attrs := schema.NewAttributes(
		schema.Attribute{Name: "b", Type: schema.TypeString},
		schema.Attribute{Name: "a", Type: schema.TypeInteger},
	)

	payload, err := json.Marshal(attrs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `{"b":{"type":"string"},"a":{"type":"integer"}}` {
		t.Fatalf("unexpected json: %s", payload)
	}

	out, err := yaml.Marshal(attrs)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	var decoded schema.Attributes
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, decoded.Names()); diff != "" {
		t.Fatalf("yaml order mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributes_ZeroValue(t *testing.T) {
	var attrs schema.Attributes
	if attrs.Len() != 0 || attrs.Names() != nil || attrs.Has("x") {
		t.Fatalf("zero value should be empty")
	}
	attrs.Set(schema.Attribute{Name: "x", Type: schema.TypeString})
	if !attrs.Has("x") {
		t.Fatalf("set on zero value should initialise the mapping")
	}
}

func TestMetadatas_MissingEntryIsHidden(t *testing.T) {
	metas := schema.Metadatas{
		"title": {Visible: true, Label: "Title"},
		"id":    {Visible: false},
	}
	if !metas.Visible("title") {
		t.Fatalf("title should be visible")
	}
	if metas.Visible("id") || metas.Visible("unknown") {
		t.Fatalf("hidden and missing entries should not be visible")
	}
	if metas.Label("title") != "Title" || metas.Label("body") != "body" {
		t.Fatalf("label fallback mismatch")
	}
	var nilMetas schema.Metadatas
	if nilMetas.Visible("title") {
		t.Fatalf("nil metadata should hide everything")
	}
}

func TestAttributeType_Known(t *testing.T) {
	if !schema.TypeDynamicZone.Known() {
		t.Fatalf("dynamiczone should be known")
	}
	if schema.AttributeType("plugin::color-picker.color").Known() {
		t.Fatalf("custom field types should not be known")
	}
}
