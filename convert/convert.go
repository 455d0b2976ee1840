// Package convert builds typed dictionaries from JSON, YAML and HCL
// documents, and serializes them back.
package convert

import (
	"encoding/json"
	"fmt"

	ctyyaml "github.com/zclconf/go-cty-yaml"
	"gopkg.in/yaml.v3"

	"github.com/jbasko/strictus-dictus/hcldata"
	"github.com/jbasko/strictus-dictus/sdict"
)

// decodeFunc turns raw bytes into a plain map ready for construction.
type decodeFunc func([]byte) (map[string]any, error)

// construct is the shared decode-then-construct path behind all From
// functions.
func construct(prototype any, raw []byte, decode decodeFunc) (*sdict.Dict, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("input is empty")
	}
	obj, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal input: %w", err)
	}
	return sdict.New(prototype, obj)
}

func decodeJSON(raw []byte) (map[string]any, error) {
	obj := map[string]any{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeYAML goes through cty so YAML scalars come out typed the same way
// HCL scalars do (whole numbers as int, not float64).
func decodeYAML(raw []byte) (map[string]any, error) {
	ty, err := ctyyaml.Standard.ImpliedType(raw)
	if err != nil {
		return nil, err
	}
	val, err := ctyyaml.Standard.Unmarshal(raw, ty)
	if err != nil {
		return nil, err
	}
	native, err := hcldata.CtyToNative(val)
	if err != nil {
		return nil, err
	}
	obj, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level YAML value must be a mapping, got %T", native)
	}
	return obj, nil
}

// FromJSON constructs a typed Dict for the schema type denoted by prototype
// from a JSON document. The document must be a JSON object whose keys are
// declared fields of the schema.
//
// Returns the constructed Dict or an error if parsing or construction fails.
func FromJSON(prototype any, raw []byte) (*sdict.Dict, error) {
	return construct(prototype, raw, decodeJSON)
}

// FromYAML constructs a typed Dict from a YAML document. The top-level YAML
// value must be a mapping.
//
// Returns the constructed Dict or an error if parsing or construction fails.
func FromYAML(prototype any, raw []byte) (*sdict.Dict, error) {
	return construct(prototype, raw, decodeYAML)
}

// FromHCL constructs a typed Dict from declarative HCL data. The input must
// not contain variables or function calls, only declarative structures.
//
// Returns the constructed Dict or an error if parsing or construction fails.
func FromHCL(prototype any, raw []byte) (*sdict.Dict, error) {
	return construct(prototype, raw, hcldata.Decode)
}

// ToJSON serializes the Dict's plain structure as JSON.
func ToJSON(d *sdict.Dict) ([]byte, error) {
	return json.Marshal(d.ToMap())
}

// ToYAML serializes the Dict's plain structure as YAML.
func ToYAML(d *sdict.Dict) ([]byte, error) {
	return yaml.Marshal(d.ToMap())
}

// ToHCL serializes the Dict's plain structure as declarative HCL.
func ToHCL(d *sdict.Dict) ([]byte, error) {
	return hcldata.Encode(d.ToMap())
}
