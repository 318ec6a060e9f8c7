package pyobject

import "math/big"

// Small integers are interned the way CPython interns [-5, 256]; this
// implementation widens the upper bound to 1024 since nothing in the
// present core relies on identity-equality failing above 256.
const (
	intCacheLow  = -5
	intCacheHigh = 1024
)

var intCache [intCacheHigh - intCacheLow + 1]*Object

func init() {
	for i := range intCache {
		intCache[i] = newObject(KindInt, big.NewInt(int64(i+intCacheLow)))
	}
}

// NewInt returns a handle wrapping v, reusing the cached handle when v falls
// in the small-integer range instead of allocating a fresh Object.
func NewInt(v *big.Int) *Object {
	if v.IsInt64() {
		i := v.Int64()
		if i >= intCacheLow && i <= intCacheHigh {
			return intCache[i-intCacheLow]
		}
	}
	return newObject(KindInt, new(big.Int).Set(v))
}

// NewIntFromInt64 is a convenience wrapper for callers constructing an int
// from a native Go integer rather than a parsed literal.
func NewIntFromInt64(v int64) *Object {
	if v >= intCacheLow && v <= intCacheHigh {
		return intCache[v-intCacheLow]
	}
	return newObject(KindInt, big.NewInt(v))
}

// NewFloat wraps v as a float Object.
func NewFloat(v float64) *Object { return newObject(KindFloat, v) }

var trueObj = newObject(KindBool, true)
var falseObj = newObject(KindBool, false)

// NewBool returns the canonical True or False handle.
func NewBool(v bool) *Object {
	if v {
		return trueObj
	}
	return falseObj
}

// Int returns o's payload as a *big.Int, promoting bool.
func Int(o *Object) (*big.Int, bool) {
	switch o.Kind {
	case KindInt:
		return o.payload.(*big.Int), true
	case KindBool:
		if o.payload.(bool) {
			return big.NewInt(1), true
		}
		return big.NewInt(0), true
	default:
		return nil, false
	}
}

// Float returns o's payload widened to float64, accepting int/bool/float.
func Float(o *Object) (float64, bool) {
	switch o.Kind {
	case KindFloat:
		return o.payload.(float64), true
	case KindInt:
		f := new(big.Float).SetInt(o.payload.(*big.Int))
		v, _ := f.Float64()
		return v, true
	case KindBool:
		if o.payload.(bool) {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func isNumeric(o *Object) bool {
	return o.Kind == KindInt || o.Kind == KindFloat || o.Kind == KindBool
}
