package value

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrUnknownField is returned when a [Strong] record is asked to set a
// field its schema does not declare.
var ErrUnknownField = errors.New("value: unknown field")

// Field declares one field of a [Schema]: the type name checked by
// [CheckerFor] and the initial value.
type Field struct {
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

// Schema maps field names to their declarations.
type Schema map[string]Field

// ParseSchema reads a schema from YAML:
//
//	name:
//	  type: string
//	  value: anonymous
//	age:
//	  type: number
//	  value: 0
//
// A field declared without a value starts as null.
func ParseSchema(data []byte) (Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("value: parse schema: %w", err)
	}
	return s, nil
}

// TypeError is returned by [Strong.Set] when a value does not satisfy the
// declared type of its field.
type TypeError struct {
	Field    string
	Expected string
	Got      Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("value: invalid type, expected type for field {%s} is {%s}, got {%s}", e.Field, e.Expected, e.Got)
}

// Strong is a record whose fields are declared up front and checked on
// every assignment. Initial values come from the schema and are not
// checked. Strong is not safe for concurrent use.
type Strong struct {
	schema Schema
	values map[string]any
}

// NewStrong returns a record initialised from schema.
func NewStrong(schema Schema) *Strong {
	s := &Strong{
		schema: schema,
		values: make(map[string]any, len(schema)),
	}
	for name, f := range schema {
		s.values[name] = f.Value
	}
	return s
}

// Get returns the current value of field and whether it is declared.
func (s *Strong) Get(field string) (any, bool) {
	v, ok := s.values[field]
	return v, ok
}

// Set assigns v to field after checking it against the declared type.
// It returns a [*TypeError] on mismatch and wraps [ErrUnknownField] for
// undeclared fields; the record is unchanged in both cases.
func (s *Strong) Set(field string, v any) error {
	f, ok := s.schema[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if !CheckerFor(f.Type)(v) {
		return &TypeError{Field: field, Expected: f.Type, Got: KindOf(v)}
	}
	s.values[field] = v
	return nil
}

// Fields returns the declared field names in sorted order.
func (s *Strong) Fields() []string {
	names := make([]string, 0, len(s.schema))
	for name := range s.schema {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
