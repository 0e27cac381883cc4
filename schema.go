package scout

import (
	"encoding/json"
	"reflect"
	"strings"
)

// SchemaBuilder constructs a JSON Schema object from a Go struct.
// Use SchemaFrom[T]() to start from a struct type, then refine it.
type SchemaBuilder struct {
	properties map[string]*property
	order      []string
	required   []string
}

type property struct {
	Type        string
	Description string
	Enum        []string
	Items       *property
	Object      *SchemaBuilder
}

// SchemaFrom creates a SchemaBuilder by reflecting on the given struct type.
// Field names come from json tags. The `desc` tag sets a description,
// `enum` takes a comma separated value list and `required:"true"` marks
// the field required.
func SchemaFrom[T any]() *SchemaBuilder {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return &SchemaBuilder{properties: map[string]*property{}}
	}
	return structSchema(t)
}

// SchemaFor returns the built schema for T.
func SchemaFor[T any]() json.RawMessage {
	return SchemaFrom[T]().Build()
}

func structSchema(t reflect.Type) *SchemaBuilder {
	sb := &SchemaBuilder{properties: map[string]*property{}}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name == "" {
			name = field.Name
		}

		prop := typeProperty(field.Type)
		prop.Description = field.Tag.Get("desc")
		if enum := field.Tag.Get("enum"); enum != "" {
			prop.Enum = strings.Split(enum, ",")
		}
		sb.properties[name] = prop
		sb.order = append(sb.order, name)
		if field.Tag.Get("required") == "true" {
			sb.required = append(sb.required, name)
		}
	}
	return sb
}

func typeProperty(t reflect.Type) *property {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return &property{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &property{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &property{Type: "number"}
	case reflect.Bool:
		return &property{Type: "boolean"}
	case reflect.Slice, reflect.Array:
		return &property{Type: "array", Items: typeProperty(t.Elem())}
	case reflect.Struct:
		return &property{Type: "object", Object: structSchema(t)}
	case reflect.Map:
		return &property{Type: "object"}
	default:
		return &property{Type: "string"}
	}
}

// Desc sets the description for a field.
func (s *SchemaBuilder) Desc(field, description string) *SchemaBuilder {
	if p, ok := s.properties[field]; ok {
		p.Description = description
	}
	return s
}

// Required marks the specified fields as required. Unknown fields are ignored.
func (s *SchemaBuilder) Required(fields ...string) *SchemaBuilder {
	for _, f := range fields {
		if _, ok := s.properties[f]; !ok || contains(s.required, f) {
			continue
		}
		s.required = append(s.required, f)
	}
	return s
}

// Enum sets the allowed values for a string field.
func (s *SchemaBuilder) Enum(field string, values ...string) *SchemaBuilder {
	if p, ok := s.properties[field]; ok {
		p.Enum = values
	}
	return s
}

// Build generates the JSON Schema.
func (s *SchemaBuilder) Build() json.RawMessage {
	data, err := json.Marshal(s.toMap())
	if err != nil {
		return json.RawMessage(`{"type":"object","properties":{}}`)
	}
	return data
}

func (s *SchemaBuilder) toMap() map[string]any {
	props := make(map[string]any, len(s.properties))
	for _, name := range s.order {
		props[name] = s.properties[name].toMap()
	}
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(s.required) > 0 {
		out["required"] = s.required
	}
	return out
}

func (p *property) toMap() map[string]any {
	if p.Object != nil {
		out := p.Object.toMap()
		if p.Description != "" {
			out["description"] = p.Description
		}
		return out
	}
	out := map[string]any{"type": p.Type}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		out["enum"] = p.Enum
	}
	if p.Items != nil {
		out["items"] = p.Items.toMap()
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
