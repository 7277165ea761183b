// Package schema builds JSON Schemas and validates decoded documents
// against them.
//
// It is used to check configuration files before they are mapped onto
// Go structs, so that typos and out-of-range values are reported with
// the offending path instead of being silently ignored.
//
// # Quick Start
//
//	s := schema.MustCompile(schema.Object(map[string]*schema.Property{
//	    "policy": schema.String("Compaction policy").Enum("block-swap", "region"),
//	    "level":  schema.Integer("zstd level").Min(1).Max(22),
//	}, "policy"))
//
//	var doc any
//	_ = yaml.Unmarshal(data, &doc)
//	if err := s.Validate(doc); err != nil {
//	    // err is a *ValidationError
//	}
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a JSON Schema definition together with its compiled
// validator.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map representation.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates a decoded document (maps, slices, strings,
// numbers, booleans) against the schema.
// Returns nil if valid, or a *ValidationError.
func (s *Schema) Validate(doc any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(doc); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a JSON Schema validation error.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map. A nil map compiles to a nil
// Schema, which accepts everything.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaData, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schemaJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{
		raw:      raw,
		compiled: compiled,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Use this for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates a closed object schema: properties not listed are
// rejected. Pass property names as variadic arguments to mark them as
// required.
//
//	schema.Object(map[string]*schema.Property{
//	    "path":  schema.String("Output file"),
//	    "level": schema.Integer("Compression level"),
//	}, "path")
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	schema := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// Property represents a property in an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	minimum     *float64
	maximum     *float64
	minLength   *int
	pattern     string
	object      map[string]any
	def         any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}
	if p.object != nil {
		for k, v := range p.object {
			m[k] = v
		}
	}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}
	if p.def != nil {
		m["default"] = p.def
	}

	return m
}

// String creates a string property.
//
//	schema.String("Policy").Enum("block-swap", "region")
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
//
//	schema.Integer("zstd level").Min(1).Max(22)
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Nested creates a property holding an object built with [Object].
//
//	schema.Nested("Snapshot output", schema.Object(map[string]*schema.Property{
//	    "path": schema.String("File path"),
//	}))
func Nested(description string, object map[string]any) *Property {
	return &Property{typ: "object", description: description, object: object}
}

// Enum sets allowed values for the property.
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Min sets the minimum value for integer properties.
func (p *Property) Min(min float64) *Property {
	p.minimum = &min
	return p
}

// Max sets the maximum value for integer properties.
func (p *Property) Max(max float64) *Property {
	p.maximum = &max
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// Pattern sets a regex pattern for string validation.
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}

// Default records the default value for documentation.
func (p *Property) Default(value any) *Property {
	p.def = value
	return p
}
