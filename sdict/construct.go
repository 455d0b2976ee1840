package sdict

import (
	"reflect"
	"sort"
)

// New constructs a typed Dict for the schema type denoted by prototype from a
// plain source mapping. It is shorthand for Construct(prototype, source, nil).
func New(prototype any, source map[string]any) (*Dict, error) {
	return Construct(prototype, source, nil)
}

// Construct builds a typed Dict for the schema type denoted by prototype.
//
// The prototype may be a schema struct value, a pointer to one, a
// reflect.Type, or an existing *Dict (another instance of the same schema
// type is built). Source and overrides are merged into one candidate set,
// with overrides winning on key collision; either may be nil.
//
// Every candidate key must be a declared field of the schema, otherwise
// Construct fails with a *ValidationError listing all unsupported keys and no
// instance is returned. Candidate values equal to Empty are treated as
// absent. Each remaining value is stored after one application of the
// coercion policy:
//
//   - nil is stored unchanged, never coerced
//   - for a field declared as a schema struct, a plain string-keyed mapping
//     is parsed recursively with Construct; an existing Dict of that schema
//     type is stored as-is
//   - for a field declared as a slice of schema structs, a slice value is
//     rebuilt with each element coerced individually; non-mapping elements
//     pass through unchanged
//   - for a field declared as a string-keyed map of schema structs, a
//     mapping value is rebuilt with the same keys and each value coerced
//     individually
//   - every other declared type stores the raw value unprocessed
//
// Declared defaults are not materialized: keys absent from the candidate set
// stay absent from the container.
//
// Constructing the abstract base itself (a nil prototype, the Dict type, or
// an unbound Dict value) fails with an *AbstractTypeError.
func Construct(prototype any, source map[string]any, overrides map[string]any) (*Dict, error) {
	if err := checkAbstract(prototype); err != nil {
		return nil, err
	}
	schema, err := GetSchema(prototype)
	if err != nil {
		return nil, err
	}

	candidates := make(map[string]any, len(source)+len(overrides))
	for k, v := range source {
		candidates[k] = v
	}
	for k, v := range overrides {
		candidates[k] = v
	}

	var unknown []string
	for k := range candidates {
		if !schema.Has(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ValidationError{Type: schema.goType, Keys: unknown}
	}

	d := newDict(schema)
	for _, name := range schema.names {
		v, ok := candidates[name]
		if !ok || IsEmpty(v) {
			continue
		}
		coerced, err := coerceValue(schema.fields[name], v)
		if err != nil {
			return nil, err
		}
		d.Set(name, coerced)
	}
	return d, nil
}

// checkAbstract rejects prototypes that denote the generic Dict base rather
// than a schema struct type.
func checkAbstract(prototype any) error {
	switch x := prototype.(type) {
	case nil:
		return &AbstractTypeError{}
	case Dict:
		if x.schema == nil {
			return &AbstractTypeError{Type: dictType}
		}
	case *Dict:
		if x == nil || x.schema == nil {
			return &AbstractTypeError{Type: reflect.PointerTo(dictType)}
		}
	case reflect.Type:
		t := x
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == dictType {
			return &AbstractTypeError{Type: x}
		}
	default:
		t := reflect.TypeOf(prototype)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == dictType {
			return &AbstractTypeError{Type: reflect.TypeOf(prototype)}
		}
	}
	return nil
}

// coerceValue applies the construction coercion policy once to one field
// value.
func coerceValue(f *Field, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch f.shape {
	case shapeDict:
		return coerceElem(f.elem, v)
	case shapeList:
		if _, ok := v.([]byte); ok {
			return v, nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return v, nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			cv, err := coerceElem(f.elem, rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	case shapeMap:
		m, ok := asStringMap(v)
		if !ok {
			return v, nil
		}
		out := make(map[string]any, len(m))
		for k, item := range m {
			cv, err := coerceElem(f.elem, item)
			if err != nil {
				return nil, err
			}
			out[k] = cv
		}
		return out, nil
	default:
	}
	return v, nil
}

// coerceElem coerces one value against a schema struct type. Plain
// string-keyed mappings are constructed recursively; an existing Dict of the
// same schema type, and anything that is not a mapping, passes through
// unchanged.
func coerceElem(elem reflect.Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if d, ok := v.(*Dict); ok {
		if d.schema != nil && d.schema.goType == elem {
			return d, nil
		}
		return v, nil
	}
	if m, ok := asStringMap(v); ok {
		return Construct(elem, m, nil)
	}
	return v, nil
}

// asStringMap returns v as a map[string]any when v is a string-keyed map of
// any value type.
func asStringMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
