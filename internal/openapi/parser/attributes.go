package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formlayout/pkg/openapi"
	"github.com/goliatone/go-formlayout/pkg/schema"
)

// longStringThreshold separates string from text attributes.
const longStringThreshold = 255

type property struct {
	name  string
	ref   *openapi3.SchemaRef
	order int
}

// orderedProperties sorts properties by x-order, then by name. Properties
// without x-order come after ordered ones.
func orderedProperties(props openapi3.Schemas) []property {
	out := make([]property, 0, len(props))
	for name, ref := range props {
		order := math.MaxInt
		if ref != nil && ref.Value != nil {
			if v, ok := intExtension(ref.Value.Extensions, pkgopenapi.ExtensionOrder); ok {
				order = v
			}
		}
		out = append(out, property{name: name, ref: ref, order: order})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].order != out[j].order {
			return out[i].order < out[j].order
		}
		return out[i].name < out[j].name
	})
	return out
}

func convertProperty(name string, ref *openapi3.SchemaRef) schema.Attribute {
	attr := schema.Attribute{Name: name, Type: schema.TypeJSON}
	if ref == nil {
		return attr
	}
	if ref.Ref != "" {
		attr.Type = schema.TypeRelation
		attr.Relation = "oneToOne"
		attr.Target = refName(ref.Ref)
		return attr
	}
	src := ref.Value
	if src == nil {
		return attr
	}

	attr.Default = src.Default
	attr.Private = src.WriteOnly
	if forced := stringExtension(src.Extensions, pkgopenapi.ExtensionType); forced != "" {
		attr.Type = schema.AttributeType(forced)
		attr.Enum = enumValues(src.Enum)
		return attr
	}
	if len(src.Enum) > 0 {
		attr.Type = schema.TypeEnumeration
		attr.Enum = enumValues(src.Enum)
		return attr
	}

	switch {
	case src.Type == nil:
	case src.Type.Is(openapi3.TypeString):
		attr.Type = stringType(src)
	case src.Type.Is(openapi3.TypeInteger):
		attr.Type = schema.TypeInteger
		if src.Format == "int64" {
			attr.Type = schema.TypeBigInteger
		}
	case src.Type.Is(openapi3.TypeNumber):
		attr.Type = schema.TypeDecimal
		if src.Format == "float" || src.Format == "double" {
			attr.Type = schema.TypeFloat
		}
	case src.Type.Is(openapi3.TypeBoolean):
		attr.Type = schema.TypeBoolean
	case src.Type.Is(openapi3.TypeArray):
		if src.Items != nil && src.Items.Ref != "" {
			attr.Type = schema.TypeRelation
			attr.Relation = "oneToMany"
			attr.Target = refName(src.Items.Ref)
		}
	}
	return attr
}

func stringType(src *openapi3.Schema) schema.AttributeType {
	switch src.Format {
	case "email":
		return schema.TypeEmail
	case "date":
		return schema.TypeDate
	case "date-time":
		return schema.TypeDateTime
	case "time":
		return schema.TypeTime
	case "password":
		return schema.TypePassword
	case "binary", "byte", "uri-reference":
		return schema.TypeMedia
	case "slug", "uid":
		return schema.TypeUID
	case "html", "markdown", "richtext":
		return schema.TypeRichText
	}
	if src.MaxLength != nil && *src.MaxLength > longStringThreshold {
		return schema.TypeText
	}
	return schema.TypeString
}

func refName(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

func enumValues(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func stringExtension(ext map[string]any, key string) string {
	raw, ok := ext[key]
	if !ok {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func intExtension(ext map[string]any, key string) (int, bool) {
	raw, ok := ext[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case json.RawMessage:
		n, err := strconv.Atoi(strings.TrimSpace(string(v)))
		return n, err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}
