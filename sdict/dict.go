package sdict

import (
	"fmt"
)

// Dict is a typed mapping instance: an insertion-ordered, string-keyed
// container bound to the Schema it was constructed for. It is usable both as
// a generic mapping (Has, Get, Set, Delete, Keys) and as a typed object
// (Attr, SetAttr).
//
// The zero Dict is the abstract base of all typed dictionaries; it carries no
// schema and refuses construction. Instances are created with New or
// Construct.
//
// A Dict assumes exclusive ownership by the caller holding it; it is not safe
// for concurrent mutation.
type Dict struct {
	schema *Schema
	keys   []string
	values map[string]any
}

func newDict(schema *Schema) *Dict {
	return &Dict{schema: schema, values: make(map[string]any)}
}

// Schema returns the Schema the Dict is bound to.
func (d *Dict) Schema() *Schema { return d.schema }

// IsA reports whether d was constructed for the schema type denoted by
// prototype (a schema struct value, pointer, reflect.Type, or another Dict).
func (d *Dict) IsA(prototype any) bool {
	t, err := schemaTypeOf(prototype)
	if err != nil {
		return false
	}
	return d.schema != nil && d.schema.goType == t
}

// Has reports whether a value is stored under key. Schema defaults are not
// consulted: a field with only a default is not present.
func (d *Dict) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Get returns the value stored under key. Like Has, it operates purely on
// the present-keys set with no knowledge of schema defaults.
func (d *Dict) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores value under key, appending key to the iteration order if it is
// new. Set is the raw mapping write: no schema validation or coercion is
// applied.
func (d *Dict) Set(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Delete removes key and its value. Deleting an absent key is a no-op.
func (d *Dict) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of present keys.
func (d *Dict) Len() int { return len(d.keys) }

// Keys returns the present keys in insertion order. The returned slice is a
// copy.
func (d *Dict) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Attr reads the field name as a typed attribute: the stored value if the key
// is present, else the field's declared default, else Empty. Class-level
// constants resolve to their declared value.
//
// Attr panics if name is neither a declared field nor a class-level constant;
// an unknown attribute is a programmer error, not a data error.
func (d *Dict) Attr(name string) any {
	if d.schema != nil {
		if f := d.schema.Field(name); f != nil {
			if v, ok := d.values[name]; ok {
				return v
			}
			if f.HasDefault {
				return f.Default
			}
			return Empty
		}
		if v, ok := d.schema.classVar(name); ok {
			return v
		}
	}
	panic(fmt.Sprintf("sdict: %s has no attribute %q", d.typeName(), name))
}

// SetAttr writes the field name exactly as Set would, after checking that
// name is a declared field. The value itself is not re-validated or coerced.
// Writing Empty unsets the entry. SetAttr panics if name is not a declared
// field.
func (d *Dict) SetAttr(name string, value any) {
	if d.schema == nil || d.schema.Field(name) == nil {
		panic(fmt.Sprintf("sdict: %s has no attribute %q", d.typeName(), name))
	}
	if IsEmpty(value) {
		d.Delete(name)
		return
	}
	d.Set(name, value)
}

// String renders the schema type name and the plain structure form.
func (d *Dict) String() string {
	return fmt.Sprintf("%s%v", d.typeName(), d.ToMap())
}

func (d *Dict) typeName() string {
	if d.schema == nil {
		return "sdict.Dict"
	}
	return d.schema.goType.String()
}
