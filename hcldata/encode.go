package hcldata

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// mapStructureType represents different types of map structures.
type mapStructureType int

const (
	notAMap    mapStructureType = 0 // not a map
	shallowMap mapStructureType = 1 // map with at least one non-map value
	nestedMap  mapStructureType = 2 // non-empty map whose values are all maps
)

// emptyBlockHCL is the rendering of a block with no content.
const emptyBlockHCL = "{}"

// classifyMapStructure determines if an item is a map and what type of map it
// is. Returns the map type and the map itself (nil if not a map).
func classifyMapStructure(item any) (mapStructureType, map[string]any) {
	m, ok := item.(map[string]any)
	if !ok {
		return notAMap, nil
	}
	if len(m) == 0 {
		return shallowMap, m
	}
	for _, v := range m {
		if _, ok := v.(map[string]any); !ok {
			return shallowMap, m
		}
	}
	return nestedMap, m
}

// Encode renders a plain structure as declarative HCL, the inverse of Decode.
//
// Map values whose members are all maps become labeled blocks, up to two
// label levels deep; other maps become unlabeled blocks; scalars, lists and
// nils become attributes. Keys are emitted in sorted order so output is
// deterministic.
func Encode(obj map[string]any) ([]byte, error) {
	lines, err := bodyLines(obj, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

func bodyLines(m map[string]any, depth, level int) ([]string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		if err := entryLines(&lines, k, m[k], depth, level); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// entryLines appends the rendering of one key/value entry. A header already
// carrying labels is extended in place when the value nests further.
func entryLines(lines *[]string, header string, item any, depth, level int) error {
	if item == nil {
		*lines = append(*lines, fmt.Sprintf("%s = null", header))
		return nil
	}

	mapType, m := classifyMapStructure(item)

	// HCL allows at most 2 labels; deeper nesting becomes block body.
	if depth >= 2 && mapType == nestedMap {
		mapType = shallowMap
	}

	switch mapType {
	case nestedMap:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			nextHeader := header + ` "` + key + `"`
			if err := entryLines(lines, nextHeader, m[key], depth+1, level); err != nil {
				return err
			}
		}
	case shallowMap:
		body, err := blockBody(m, level)
		if err != nil {
			return err
		}
		*lines = append(*lines, fmt.Sprintf("%s %s", header, body))
	default:
		expr, err := encodeExpr(item, level)
		if err != nil {
			return err
		}
		*lines = append(*lines, fmt.Sprintf("%s = %s", header, expr))
	}
	return nil
}

func blockBody(m map[string]any, level int) (string, error) {
	if len(m) == 0 {
		return emptyBlockHCL, nil
	}
	inner, err := bodyLines(m, 0, level+1)
	if err != nil {
		return "", err
	}
	leading := strings.Repeat("  ", level+1)
	lessLeading := strings.Repeat("  ", level)
	return fmt.Sprintf("{\n%s\n%s}", leading+strings.Join(inner, "\n"+leading), lessLeading), nil
}

// encodeExpr renders a value in expression position (after an equals sign or
// inside a list). Maps here must use object constructor syntax rather than
// block syntax.
func encodeExpr(item any, level int) (string, error) {
	if item == nil {
		return "null", nil
	}

	switch t := item.(type) {
	case string:
		return fmt.Sprintf("%q", t), nil
	case bool:
		return fmt.Sprintf("%t", t), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t), nil
	case float32, float64:
		return formatNumber(t)
	case []byte:
		return fmt.Sprintf("%q", string(t)), nil
	case map[string]any:
		return encodeExprObject(t, level)
	case []any:
		return encodeExprList(t, level)
	default:
	}

	rv := reflect.ValueOf(item)
	switch rv.Kind() {
	case reflect.String:
		return fmt.Sprintf("%q", rv.String()), nil
	case reflect.Bool:
		return fmt.Sprintf("%t", rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return formatNumber(rv.Float())
	default:
	}
	return "", fmt.Errorf("data type %T not supported", item)
}

func encodeExprObject(m map[string]any, level int) (string, error) {
	if len(m) == 0 {
		return emptyBlockHCL, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var arr []string
	for _, k := range keys {
		expr, err := encodeExpr(m[k], level+1)
		if err != nil {
			return "", err
		}
		arr = append(arr, fmt.Sprintf("%q = %s", k, expr))
	}
	leading := strings.Repeat("  ", level+1)
	lessLeading := strings.Repeat("  ", level)
	return fmt.Sprintf("{\n%s\n%s}", leading+strings.Join(arr, "\n"+leading), lessLeading), nil
}

func encodeExprList(items []any, level int) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	var arr []string
	for _, item := range items {
		expr, err := encodeExpr(item, level+1)
		if err != nil {
			return "", err
		}
		arr = append(arr, expr)
	}
	leading := strings.Repeat("  ", level+1)
	lessLeading := strings.Repeat("  ", level)
	return fmt.Sprintf("[\n%s\n%s]", leading+strings.Join(arr, ",\n"+leading), lessLeading), nil
}

// formatNumber renders a float, collapsing whole numbers to integer form so
// they decode back to the same native type.
func formatNumber(item any) (string, error) {
	cv, err := NativeToCty(item)
	if err != nil {
		return "", err
	}
	n, err := CtyNumberToNative(cv)
	if err != nil {
		return "", err
	}
	switch n.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", n), nil
	default:
	}
	return fmt.Sprintf("%f", n), nil
}
