// Package sdict implements typed dictionaries: string-keyed containers that
// are simultaneously usable as generic mappings and as typed objects with
// per-field accessors, defaults, and recursive parsing of nested values.
//
// A schema is declared as a plain Go struct. Field names come from the sdict
// struct tag (or the lower-cased Go field name when no tag is given), and
// defaults from the default tag:
//
//	type Point struct {
//	    X int `sdict:"x"`
//	    Y int `sdict:"y"`
//	}
//
//	type Line struct {
//	    Start Point `sdict:"start"`
//	    End   Point `sdict:"end"`
//	}
//
// Construction takes raw nested data and coerces it against the schema:
//
//	line, err := sdict.New(Line{}, map[string]any{
//	    "start": map[string]any{"x": 3, "y": 4},
//	})
//
//	line.Attr("start").(*sdict.Dict).Attr("x")  // 3
//	line.Attr("end")                            // sdict.Empty
//	line.ToMap()                                // map[start:map[x:3 y:4]]
//
// Keys that are not declared fields are rejected at construction. Values for
// fields whose declared type is a schema struct, a slice of schema structs,
// or a string-keyed map of schema structs are parsed recursively into nested
// Dict instances; every other declared type is stored unprocessed.
//
// # Schema Tags
//
//   - `sdict:"name"` - field name in the mapping
//   - `sdict:"name,classvar"` - class-level constant, excluded from the schema
//   - `sdict:"-"` - ignore this field
//   - `default:"value"` - fallback returned by Attr when no value is stored
//
// Embedded anonymous structs compose schemas: the embedded type's fields come
// first, and a same-named redeclaration on the outer type overrides the
// embedded one in place.
//
// # Presence and Defaults
//
// Defaults live only in the schema. They are never written into the
// container, so Has reports false and Get reports no value for a field that
// merely has a default; Attr returns the default. A field with neither a
// stored value nor a default reads as the Empty sentinel, which is distinct
// from a stored nil.
package sdict
