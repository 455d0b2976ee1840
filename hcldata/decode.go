// Package hcldata converts between declarative HCL documents and plain Go
// structures (map[string]any, []any, scalars). It handles data only:
// variables, function calls and other expressions needing an evaluation
// context are rejected.
package hcldata

import (
	"fmt"
	"math/rand"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// hclFileExtension is the file extension used for synthetic source names.
const hclFileExtension = ".hcl"

// Decode parses declarative HCL data into a plain map.
//
// Attributes become map entries with their evaluated values; a null
// attribute becomes a present nil entry. Blocks nest:
//
//   - repeated unlabeled blocks of one type become a []any of maps
//   - a single unlabeled block becomes a nested map
//   - blocks with one or two labels become one or two nested map levels
//     keyed by the label values
//
// Returns an error if parsing fails or an expression cannot be evaluated
// without a context.
func Decode(data []byte) (map[string]any, error) {
	body, err := parseFile(data)
	if err != nil {
		return nil, err
	}
	return decodeBody(body)
}

func parseFile(data []byte) (*hclsyntax.Body, error) {
	file, diags := hclsyntax.ParseConfig(data, tempFileName(), hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}
	return file.Body.(*hclsyntax.Body), nil
}

// tempFileName creates a random synthetic HCL filename for fragments that
// have no source file.
func tempFileName() string {
	return fmt.Sprintf("%d%s", rand.Int(), hclFileExtension)
}

func decodeBody(body *hclsyntax.Body) (map[string]any, error) {
	object := make(map[string]any)
	for key, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %q: %w", key, diags)
		}
		native, err := CtyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", key, err)
		}
		object[key] = native
	}

	var sliceBodies map[string][]*hclsyntax.Body
	counts := make(map[string]int)
	var mapBodies map[string]map[string]*hclsyntax.Body
	var map2Bodies map[string]map[string]map[string]*hclsyntax.Body
	for _, block := range body.Blocks {
		switch len(block.Labels) {
		case 0:
			if sliceBodies == nil {
				sliceBodies = make(map[string][]*hclsyntax.Body)
			}
			sliceBodies[block.Type] = append(sliceBodies[block.Type], block.Body)
			counts[block.Type]++
		case 1:
			if mapBodies == nil {
				mapBodies = make(map[string]map[string]*hclsyntax.Body)
			}
			if mapBodies[block.Type] == nil {
				mapBodies[block.Type] = make(map[string]*hclsyntax.Body)
			}
			mapBodies[block.Type][block.Labels[0]] = block.Body
		case 2:
			if map2Bodies == nil {
				map2Bodies = make(map[string]map[string]map[string]*hclsyntax.Body)
			}
			if map2Bodies[block.Type] == nil {
				map2Bodies[block.Type] = make(map[string]map[string]*hclsyntax.Body)
			}
			if map2Bodies[block.Type][block.Labels[0]] == nil {
				map2Bodies[block.Type][block.Labels[0]] = make(map[string]*hclsyntax.Body)
			}
			map2Bodies[block.Type][block.Labels[0]][block.Labels[1]] = block.Body
		default:
			return nil, fmt.Errorf("unsupported number of labels (%d) for block type %q: expected 0, 1, or 2", len(block.Labels), block.Type)
		}
	}

	for key, bodies := range sliceBodies {
		var values []any
		for _, b := range bodies {
			decoded, err := decodeBody(b)
			if err != nil {
				return nil, err
			}
			values = append(values, decoded)
		}
		if counts[key] > 1 {
			object[key] = values
		} else {
			object[key] = values[0]
		}
	}
	for key, labeled := range mapBodies {
		hash := make(map[string]any, len(labeled))
		for label, b := range labeled {
			decoded, err := decodeBody(b)
			if err != nil {
				return nil, err
			}
			hash[label] = decoded
		}
		object[key] = hash
	}
	for key, labeled := range map2Bodies {
		hash := make(map[string]any, len(labeled))
		for label, inner := range labeled {
			innerHash := make(map[string]any, len(inner))
			for label2, b := range inner {
				decoded, err := decodeBody(b)
				if err != nil {
					return nil, err
				}
				innerHash[label2] = decoded
			}
			hash[label] = innerHash
		}
		object[key] = hash
	}

	return object, nil
}
