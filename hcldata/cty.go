package hcldata

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// NativeToCty converts a plain Go value (maps, slices, scalars) to a
// cty.Value. It is the inverse of CtyToNative.
func NativeToCty(item any) (cty.Value, error) {
	if item == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}

	switch t := item.(type) {
	case map[string]any:
		hash := make(map[string]cty.Value)
		for k, v := range t {
			cv, err := NativeToCty(v)
			if err != nil {
				return cty.EmptyObjectVal, err
			}
			hash[k] = cv
		}
		return cty.ObjectVal(hash), nil
	case []any:
		var arr []cty.Value
		for _, v := range t {
			cv, err := NativeToCty(v)
			if err != nil {
				return cty.EmptyObjectVal, err
			}
			arr = append(arr, cv)
		}
		return cty.TupleVal(arr), nil
	default:
	}
	typ, err := gocty.ImpliedType(item)
	if err != nil {
		return cty.EmptyObjectVal, err
	}
	return gocty.ToCtyValue(item, typ)
}

// CtyNumberToNative converts a cty number to a native Go number: int for
// whole numbers, int64 for whole numbers beyond 32 bits, float64 otherwise.
func CtyNumberToNative(val cty.Value) (any, error) {
	v := val.AsBigFloat()
	if _, accuracy := v.Int64(); accuracy == big.Exact {
		var x int64
		err := gocty.FromCtyValue(val, &x)
		if x > 0x7FFFFFFF || x < -0x80000000 {
			return x, err
		}
		return int(x), err
	}
	var x float64
	err := gocty.FromCtyValue(val, &x)
	return x, err
}

// CtyToNative converts a cty.Value to a Go native value.
//
// Conversion rules:
//   - cty.String → string
//   - cty.Number → int, int64, or float64 (auto-detected)
//   - cty.Bool → bool
//   - cty.Object/Map → map[string]any
//   - cty.List/Tuple/Set → []any
//   - null → nil
//
// Null members of containers are kept as present nil entries; whether a key
// is present with a null value or absent altogether is significant to
// callers.
func CtyToNative(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch ty {
	case cty.String:
		var v string
		err := gocty.FromCtyValue(val, &v)
		return v, err
	case cty.Number:
		return CtyNumberToNative(val)
	case cty.Bool:
		var v bool
		err := gocty.FromCtyValue(val, &v)
		return v, err
	default:
	}

	switch {
	case ty.IsObjectType(), ty.IsMapType():
		u := make(map[string]any)
		for k, v := range val.AsValueMap() {
			x, err := CtyToNative(v)
			if err != nil {
				return nil, err
			}
			u[k] = x
		}
		return u, nil
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		var u []any
		for _, v := range val.AsValueSlice() {
			x, err := CtyToNative(v)
			if err != nil {
				return nil, err
			}
			u = append(u, x)
		}
		return u, nil
	default:
	}

	return nil, fmt.Errorf("value %#v is not a supported primitive or container", val)
}
