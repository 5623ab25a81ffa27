package value

import (
	"math"
	"strconv"
	"strings"
)

// ParseToType coerces a string to the value it spells. In order:
// "true" and "false" become booleans, "null" becomes nil, a string that
// survives a round trip through a number (formatted the way a browser
// would) becomes a float64, and anything else is returned unchanged.
//
// Representations whose formatted number differs from the input, such as
// "1e3", "01" or " 5", stay strings. Non-string input yields [Undefined].
func ParseToType(v any) any {
	s, ok := v.(string)
	if !ok {
		return Undefined
	}

	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}

	if f, ok := roundTrip(s); ok {
		return f
	}
	return s
}

func roundTrip(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	var f float64
	switch s {
	case "Infinity":
		f = math.Inf(1)
	case "-Infinity":
		f = math.Inf(-1)
	default:
		var err error
		f, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
	}
	return f, FormatNumber(f) == s
}

// FormatNumber renders f the way ECMAScript's Number::toString does:
// shortest round-tripping digits, plain notation for exponents in
// [-7, 21), and "1e+21" style exponents otherwise.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
