package sdict

import (
	"fmt"
	"reflect"
	"strings"
)

// AbstractTypeError is returned when construction is attempted on the generic
// Dict base itself instead of on a schema struct type.
type AbstractTypeError struct {
	// Type is the offending prototype type; nil when no prototype was given.
	Type reflect.Type
}

func (e *AbstractTypeError) Error() string {
	name := "sdict.Dict"
	if e.Type != nil {
		name = e.Type.String()
	}
	return fmt.Sprintf("%s is an abstract base class and cannot be constructed directly", name)
}

// ValidationError is returned by construction when one or more supplied keys
// are not declared fields of the target schema. Keys holds every offending
// key in sorted order, not just the first one found.
type ValidationError struct {
	Type reflect.Type
	Keys []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Unsupported key(s) %s passed to %s", strings.Join(e.Keys, ", "), e.Type)
}
