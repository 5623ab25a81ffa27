package value

import (
	"encoding/json"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a string-keyed map that remembers insertion order. Iteration
// helpers in this package visit keys in that order. Re-setting an existing
// key keeps its original position.
type Object = orderedmap.OrderedMap[string, any]

// Entry is one key/value pair used to build an [Object].
type Entry struct {
	Key   string
	Value any
}

// NewObject returns an Object holding entries in order. A repeated key
// keeps its first position and its last value.
func NewObject(entries ...Entry) *Object {
	obj := orderedmap.New[string, any]()
	for _, e := range entries {
		obj.Set(e.Key, e.Value)
	}
	return obj
}

// EachKey calls fn for every key of obj in insertion order with the value,
// key and position. A nil obj is a no-op.
func EachKey(obj *Object, fn func(value any, key string, index int)) {
	if obj == nil || fn == nil {
		return
	}
	i := 0
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Value, pair.Key, i)
		i++
	}
}

// Each calls fn for every item of items in order.
func Each[T any](items []T, fn func(item T, index int)) {
	if fn == nil {
		return
	}
	for i, item := range items {
		fn(item, i)
	}
}

// Keys returns the keys of obj in insertion order.
func Keys(obj *Object) []string {
	if obj == nil {
		return nil
	}
	keys := make([]string, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// HasKey reports whether obj holds key.
func HasKey(obj *Object, key string) bool {
	if obj == nil {
		return false
	}
	_, ok := obj.Get(key)
	return ok
}

// HasMethod reports whether obj holds key and its value is a function.
func HasMethod(obj *Object, key string) bool {
	if obj == nil {
		return false
	}
	v, ok := obj.Get(key)
	return ok && IsFunc(v)
}

// Extend copies the entries of each source into target, left to right, so
// later sources overwrite earlier keys. The copy is shallow. Extend mutates
// and returns target; a nil target yields nil and nil sources are skipped.
func Extend(target *Object, sources ...*Object) *Object {
	if target == nil {
		return nil
	}
	for _, src := range sources {
		EachKey(src, func(v any, k string, _ int) {
			target.Set(k, v)
		})
	}
	return target
}

// RunMethods calls every func() value of obj in insertion order, skipping
// the keys listed in excludes. Values of other function signatures are not
// called.
func RunMethods(obj *Object, excludes ...string) {
	EachKey(obj, func(v any, k string, _ int) {
		fn, ok := v.(func())
		if !ok || fn == nil || slices.Contains(excludes, k) {
			return
		}
		fn()
	})
}

// JSONCopy returns a deep copy of obj made by encoding it to JSON and
// decoding the result. Values that JSON cannot represent, such as
// functions, make it fail. Nested objects decode as map[string]any.
func JSONCopy(obj *Object) (*Object, error) {
	if obj == nil {
		return nil, nil
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	out := orderedmap.New[string, any]()
	if err := json.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}
