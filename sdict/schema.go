package sdict

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Schema struct tag constants
const (
	// tagSdict is the struct tag key carrying the field name and modifier
	tagSdict = "sdict"

	// tagDefault is the struct tag key carrying a field's default value
	tagDefault = "default"

	// tagIgnore marks a field that is excluded from the schema entirely
	tagIgnore = "-"

	// tagModifierClassVar marks a class-level constant that is readable as an
	// attribute but is not an instance field
	tagModifierClassVar = "classvar"
)

// fieldShape classifies a declared field type against the closed set of
// shapes the coercion policy understands.
type fieldShape int

const (
	shapeOpaque fieldShape = iota // stored unprocessed
	shapeDict                     // nested schema struct
	shapeList                     // slice of schema structs
	shapeMap                      // string-keyed map of schema structs
)

// Field is the descriptor of one declared schema field. A Field is immutable
// once its Schema has been computed.
type Field struct {
	// Name is the mapping key of the field.
	Name string

	// Type is the declared Go type of the field.
	Type reflect.Type

	// HasDefault reports whether the field declares a default value.
	// Default holds the parsed default; it is only meaningful when
	// HasDefault is true. Defaults are returned by Dict.Attr on demand and
	// are never written into instance storage.
	HasDefault bool
	Default    any

	shape fieldShape
	elem  reflect.Type // schema struct type for shapeDict/shapeList/shapeMap
}

// Schema is the ordered field table of a schema struct type, including fields
// contributed by embedded anonymous structs. Schemas are computed once per
// type and shared; treat them as read-only.
type Schema struct {
	goType    reflect.Type
	names     []string
	fields    map[string]*Field
	classVars map[string]any
}

// Type returns the schema struct type the Schema was derived from.
func (s *Schema) Type() reflect.Type { return s.goType }

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.names) }

// Has reports whether name is a declared field. Class-level constants are not
// fields and report false.
func (s *Schema) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Field returns the descriptor for name, or nil if name is not a declared field.
func (s *Schema) Field(name string) *Field { return s.fields[name] }

// Names returns the declared field names in declaration order, embedded types
// first. The returned slice is a copy.
func (s *Schema) Names() []string {
	return append([]string(nil), s.names...)
}

// schemaCache memoizes computed Schemas per type for the process lifetime.
// LoadOrStore keeps the mapping identity-stable even when two goroutines race
// on the first access of a type: both end up with the same *Schema.
var schemaCache sync.Map // map[reflect.Type]*Schema

var dictType = reflect.TypeOf(Dict{})

// GetSchema returns the Schema for v, which may be a schema struct value, a
// pointer to one, a reflect.Type, or a *Dict instance (resolved through the
// instance's schema type). Repeated calls for the same type return the
// identical *Schema.
//
// A struct type without usable fields yields an empty Schema, not an error.
// An error is returned only when v does not denote a struct type at all, or
// when a default tag cannot be parsed to its field's type.
func GetSchema(v any) (*Schema, error) {
	t, err := schemaTypeOf(v)
	if err != nil {
		return nil, err
	}
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*Schema), nil
	}
	s, err := buildSchema(t)
	if err != nil {
		return nil, err
	}
	actual, _ := schemaCache.LoadOrStore(t, s)
	return actual.(*Schema), nil
}

// schemaTypeOf resolves the schema struct type denoted by a prototype value.
func schemaTypeOf(v any) (reflect.Type, error) {
	var t reflect.Type
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("cannot derive a schema from nil")
	case Dict:
		if x.schema == nil {
			return nil, fmt.Errorf("cannot derive a schema from an unbound Dict")
		}
		return x.schema.goType, nil
	case *Dict:
		if x == nil || x.schema == nil {
			return nil, fmt.Errorf("cannot derive a schema from an unbound Dict")
		}
		return x.schema.goType, nil
	case reflect.Type:
		t = x
	default:
		t = reflect.TypeOf(v)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema type must be a struct, got %s", t)
	}
	return t, nil
}

func buildSchema(t reflect.Type) (*Schema, error) {
	s := &Schema{
		goType:    t,
		fields:    make(map[string]*Field),
		classVars: make(map[string]any),
	}
	if err := collectFields(t, s); err != nil {
		return nil, err
	}
	return s, nil
}

// collectFields walks a struct type in declaration order and merges its
// fields into s. Embedded anonymous structs are walked first at their
// declaration position, so a redeclaration on the outer type overrides the
// embedded declaration while keeping its original position.
func collectFields(t reflect.Type, s *Schema) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, hasTag := f.Tag.Lookup(tagSdict)

		if f.Anonymous && !hasTag {
			et := f.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if err := collectFields(et, s); err != nil {
					return err
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}

		name := strings.ToLower(f.Name)
		var modifier string
		if hasTag {
			parts := strings.SplitN(tag, ",", 2)
			if parts[0] != "" {
				name = parts[0]
			}
			if len(parts) == 2 {
				modifier = parts[1]
			}
		}
		if name == tagIgnore {
			continue
		}

		if strings.EqualFold(modifier, tagModifierClassVar) {
			var value any
			if raw, ok := f.Tag.Lookup(tagDefault); ok {
				parsed, err := parseDefault(raw, f.Type)
				if err != nil {
					return fmt.Errorf("field %s.%s: %w", t, f.Name, err)
				}
				value = parsed
			}
			s.classVars[name] = value
			s.removeField(name)
			continue
		}

		fd := &Field{Name: name, Type: f.Type}
		fd.shape, fd.elem = detectShape(f.Type)
		if raw, ok := f.Tag.Lookup(tagDefault); ok {
			parsed, err := parseDefault(raw, f.Type)
			if err != nil {
				return fmt.Errorf("field %s.%s: %w", t, f.Name, err)
			}
			fd.Default = parsed
			fd.HasDefault = true
		}

		delete(s.classVars, name)
		if _, ok := s.fields[name]; ok {
			// redeclaration: replace the descriptor, keep the position
			s.fields[name] = fd
		} else {
			s.names = append(s.names, name)
			s.fields[name] = fd
		}
	}
	return nil
}

func (s *Schema) removeField(name string) {
	if _, ok := s.fields[name]; !ok {
		return
	}
	delete(s.fields, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

func (s *Schema) classVar(name string) (any, bool) {
	v, ok := s.classVars[name]
	return v, ok
}

// detectShape matches a declared type against the closed set of coercible
// shapes: a bare schema struct, a slice of schema structs, or a string-keyed
// map of schema structs. Anything else, including pointers, interfaces and
// byte slices, is opaque and passes through construction unprocessed.
func detectShape(t reflect.Type) (fieldShape, reflect.Type) {
	switch t.Kind() {
	case reflect.Struct:
		return shapeDict, t
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Struct {
			return shapeList, t.Elem()
		}
	case reflect.Map:
		if t.Key().Kind() == reflect.String && t.Elem().Kind() == reflect.Struct {
			return shapeMap, t.Elem()
		}
	default:
	}
	return shapeOpaque, nil
}

// parseDefault converts a default tag string to the field's declared type.
// Only scalar kinds are supported; fields of interface type keep the raw
// string.
func parseDefault(raw string, t reflect.Type) (any, error) {
	if t.Kind() == reflect.Interface {
		return raw, nil
	}
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool default %q: %w", raw, err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer default %q: %w", raw, err)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid unsigned default %q: %w", raw, err)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float default %q: %w", raw, err)
		}
		v.SetFloat(n)
	default:
		return nil, fmt.Errorf("default values are not supported for %s fields", t)
	}
	return v.Interface(), nil
}
