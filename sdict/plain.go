package sdict

import (
	"reflect"
)

// ToMap converts the Dict back to a plain nested structure of maps, lists and
// scalars, free of Dict instances. Only present keys are visited, in
// insertion order: absent fields and un-set defaults do not appear in the
// output.
//
// Nested Dicts become plain maps, slices and string-keyed maps are rebuilt
// with each element converted recursively, and values whose type is a named
// string type are flattened to plain strings. Byte slices, nils and all
// other scalars are copied unchanged.
func (d *Dict) ToMap() map[string]any {
	out := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		out[k] = plainValue(d.values[k])
	}
	return out
}

func plainValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *Dict:
		return x.ToMap()
	case string:
		return x
	case []byte:
		return x
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = plainValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = plainValue(item)
		}
		return out
	default:
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		// strip named string types down to plain strings
		return rv.String()
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = plainValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = plainValue(iter.Value().Interface())
		}
		return out
	default:
	}
	return v
}
