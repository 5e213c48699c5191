package llm

import (
	"fmt"
	"strings"
)

// Kind discriminates the schema variants.
type Kind int

const (
	KindPrimitive Kind = iota
	KindEnum
	KindArray
	KindObject
)

// Primitive JSON types accepted by schema validation.
const (
	PrimitiveString  = "string"
	PrimitiveNumber  = "number"
	PrimitiveBoolean = "boolean"
)

// Schema is a declarative description of an expected JSON shape. It is
// authored explicitly per output contract; rendering and validation both walk
// the same structure so the prompt and the checker can never drift apart.
type Schema struct {
	Kind      Kind
	Primitive string   // KindPrimitive
	Values    []string // KindEnum (string values)
	Elem      *Schema  // KindArray
	Fields    []Field  // KindObject, in declaration order
}

// Field is one named member of an object schema.
type Field struct {
	Name     string
	Schema   *Schema
	Optional bool
}

// String returns a string primitive schema.
func String() *Schema { return &Schema{Kind: KindPrimitive, Primitive: PrimitiveString} }

// Number returns a number primitive schema.
func Number() *Schema { return &Schema{Kind: KindPrimitive, Primitive: PrimitiveNumber} }

// Boolean returns a boolean primitive schema.
func Boolean() *Schema { return &Schema{Kind: KindPrimitive, Primitive: PrimitiveBoolean} }

// Enum returns a schema accepting exactly the given string values.
func Enum(values ...string) *Schema { return &Schema{Kind: KindEnum, Values: values} }

// Array returns a schema for an array of elem.
func Array(elem *Schema) *Schema { return &Schema{Kind: KindArray, Elem: elem} }

// Object returns an object schema with the given fields, in order.
func Object(fields ...Field) *Schema { return &Schema{Kind: KindObject, Fields: fields} }

// Required declares a required object field.
func Required(name string, s *Schema) Field { return Field{Name: name, Schema: s} }

// Optional declares an optional object field.
func Optional(name string, s *Schema) Field { return Field{Name: name, Schema: s, Optional: true} }

// Render produces the human-readable contract block embedded verbatim in the
// system prompt, e.g.
//
//	{
//	  "summary": string,
//	  "attendees": [ ... ] (optional)
//	}
func (s *Schema) Render() string {
	var b strings.Builder
	s.render(&b, 0)
	return b.String()
}

func (s *Schema) render(b *strings.Builder, depth int) {
	switch s.Kind {
	case KindPrimitive:
		b.WriteString(s.Primitive)
	case KindEnum:
		for i, v := range s.Values {
			if i > 0 {
				b.WriteString(" | ")
			}
			fmt.Fprintf(b, "%q", v)
		}
	case KindArray:
		b.WriteString("[\n")
		indent(b, depth+1)
		s.Elem.render(b, depth+1)
		b.WriteString("\n")
		indent(b, depth)
		b.WriteString("]")
	case KindObject:
		b.WriteString("{\n")
		for i, f := range s.Fields {
			indent(b, depth+1)
			fmt.Fprintf(b, "%q: ", f.Name)
			f.Schema.render(b, depth+1)
			if f.Optional {
				b.WriteString(" (optional)")
			}
			if i < len(s.Fields)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		indent(b, depth)
		b.WriteString("}")
	}
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// Validate checks a decoded JSON value (the result of json.Unmarshal into an
// interface{}) against the schema. It returns one diagnostic per violation;
// an empty slice means the value conforms.
func (s *Schema) Validate(v any) []string {
	var diags []string
	s.validate("$", v, &diags)
	return diags
}

func (s *Schema) validate(path string, v any, diags *[]string) {
	switch s.Kind {
	case KindPrimitive:
		switch s.Primitive {
		case PrimitiveString:
			if _, ok := v.(string); !ok {
				*diags = append(*diags, fmt.Sprintf("%s: expected string, got %s", path, typeName(v)))
			}
		case PrimitiveNumber:
			if _, ok := v.(float64); !ok {
				*diags = append(*diags, fmt.Sprintf("%s: expected number, got %s", path, typeName(v)))
			}
		case PrimitiveBoolean:
			if _, ok := v.(bool); !ok {
				*diags = append(*diags, fmt.Sprintf("%s: expected boolean, got %s", path, typeName(v)))
			}
		}
	case KindEnum:
		str, ok := v.(string)
		if !ok {
			*diags = append(*diags, fmt.Sprintf("%s: expected one of %v, got %s", path, s.Values, typeName(v)))
			return
		}
		for _, allowed := range s.Values {
			if str == allowed {
				return
			}
		}
		*diags = append(*diags, fmt.Sprintf("%s: value %q is not one of %v", path, str, s.Values))
	case KindArray:
		arr, ok := v.([]any)
		if !ok {
			*diags = append(*diags, fmt.Sprintf("%s: expected array, got %s", path, typeName(v)))
			return
		}
		for i, elem := range arr {
			s.Elem.validate(fmt.Sprintf("%s[%d]", path, i), elem, diags)
		}
	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			*diags = append(*diags, fmt.Sprintf("%s: expected object, got %s", path, typeName(v)))
			return
		}
		for _, f := range s.Fields {
			fv, present := obj[f.Name]
			if !present || fv == nil {
				if !f.Optional {
					*diags = append(*diags, fmt.Sprintf("%s: missing required field %q", path, f.Name))
				}
				continue
			}
			f.Schema.validate(path+"."+f.Name, fv, diags)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
