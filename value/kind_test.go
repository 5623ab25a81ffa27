package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	var nilMap map[string]int
	var nilPtr *int
	var nilFunc func()
	n := 3

	tests := []struct {
		name string
		v    any
		want Kind
	}{
		{"nil", nil, KindNull},
		{"undefined", Undefined, KindUndefined},
		{"bool", true, KindBool},
		{"int", 42, KindNumber},
		{"uint8", uint8(1), KindNumber},
		{"float", 1.5, KindNumber},
		{"nan", math.NaN(), KindNumber},
		{"string", "x", KindString},
		{"slice", []int{1}, KindArray},
		{"empty slice", []string{}, KindArray},
		{"array", [2]int{}, KindArray},
		{"map", map[string]int{}, KindObject},
		{"nil map", nilMap, KindNull},
		{"struct", struct{}{}, KindObject},
		{"pointer", &n, KindObject},
		{"nil pointer", nilPtr, KindNull},
		{"object", NewObject(), KindObject},
		{"func", func() {}, KindFunction},
		{"nil func", nilFunc, KindNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.v))
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsObj(map[string]any{}))
	assert.False(t, IsObj([]any{}), "arrays are not objects")
	assert.False(t, IsObj(nil), "null is not an object")

	assert.True(t, IsNull(nil))
	assert.False(t, IsNull(Undefined))

	assert.True(t, IsNum(0))
	assert.True(t, IsNum(-2.5))
	assert.False(t, IsNum(math.NaN()))
	assert.False(t, IsNum("1"))

	assert.True(t, IsFunc(func(int) {}))
	assert.True(t, IsArr([]int{}))
	assert.True(t, IsStr(""))
	assert.True(t, IsUndef(Undefined))
	assert.False(t, IsUndef(nil))
	assert.True(t, IsBool(false))
}

func TestCheckerFor(t *testing.T) {
	assert.True(t, CheckerFor("number")(1))
	assert.True(t, CheckerFor("object")(NewObject()))
	assert.True(t, CheckerFor("null")(nil))
	assert.True(t, CheckerFor("function")(func() {}))
	assert.True(t, CheckerFor("array")([]int{}))
	assert.True(t, CheckerFor("string")("s"))
	assert.True(t, CheckerFor("undefined")(Undefined))
	assert.True(t, CheckerFor("bool")(true))

	unknown := CheckerFor("date")
	assert.True(t, unknown(Undefined))
	assert.False(t, unknown("2024-01-01"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "function", KindFunction.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
