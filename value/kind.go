package value

import (
	"math"
	"reflect"
)

// Kind partitions dynamic values the way a loosely typed host would.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindFunction
)

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBool:      "bool",
	KindNumber:    "number",
	KindString:    "string",
	KindArray:     "array",
	KindObject:    "object",
	KindFunction:  "function",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Undef is the type of [Undefined].
type Undef struct{}

// Undefined marks an absent value. It is distinct from nil, which is null.
var Undefined = Undef{}

// KindOf classifies v. nil and nil pointers, maps, slices and funcs are
// null, numeric types are numbers, slices and arrays are arrays, and maps,
// structs and other pointers are objects.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case Undef:
		return KindUndefined
	case bool:
		return KindBool
	case string:
		return KindString
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.String:
		return KindString
	case reflect.Slice:
		if rv.IsNil() {
			return KindNull
		}
		return KindArray
	case reflect.Array:
		return KindArray
	case reflect.Func:
		if rv.IsNil() {
			return KindNull
		}
		return KindFunction
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
		return KindObject
	default:
		return KindObject
	}
}

// IsObj reports whether v is an object. Arrays and null are not objects.
func IsObj(v any) bool { return KindOf(v) == KindObject }

// IsNull reports whether v is null.
func IsNull(v any) bool { return KindOf(v) == KindNull }

// IsNum reports whether v is a number other than NaN.
func IsNum(v any) bool {
	if KindOf(v) != KindNumber {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.CanFloat() {
		return !math.IsNaN(rv.Float())
	}
	return true
}

// IsFunc reports whether v is a non-nil function.
func IsFunc(v any) bool { return KindOf(v) == KindFunction }

// IsArr reports whether v is a non-nil slice or an array.
func IsArr(v any) bool { return KindOf(v) == KindArray }

// IsStr reports whether v is a string.
func IsStr(v any) bool { return KindOf(v) == KindString }

// IsUndef reports whether v is [Undefined].
func IsUndef(v any) bool { return KindOf(v) == KindUndefined }

// IsBool reports whether v is a boolean.
func IsBool(v any) bool { return KindOf(v) == KindBool }

// CheckerFor returns the predicate for a type name used in a [Schema]:
// number, object, null, function, array, string, undefined or bool.
// Unknown names yield [IsUndef].
func CheckerFor(typeName string) func(any) bool {
	switch typeName {
	case "number":
		return IsNum
	case "object":
		return IsObj
	case "null":
		return IsNull
	case "function":
		return IsFunc
	case "array":
		return IsArr
	case "string":
		return IsStr
	case "undefined":
		return IsUndef
	case "bool":
		return IsBool
	default:
		return IsUndef
	}
}
