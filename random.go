package ammo

import (
	"math"
	"math/rand/v2"
)

// Float bounds of int64 that convert exactly: -2^63 and the largest
// float64 below 2^63.
const (
	minIntFloat = -(1 << 63)
	maxIntFloat = 1<<63 - 1024
)

// RandomInclusive returns a uniformly distributed integer in
// [ceil(low), floor(high)]. When that range is empty it returns ceil(low).
// Bounds outside the int64 range are clamped to it, and NaN yields 0.
func RandomInclusive(low, high float64) int {
	if math.IsNaN(low) || math.IsNaN(high) {
		return 0
	}
	lo := int64(clampInt(math.Ceil(low)))
	hi := int64(clampInt(math.Floor(high)))
	if hi < lo {
		return int(lo)
	}
	// Unsigned wraparound gives the exact width even when hi-lo overflows
	// int64; hi is never MaxInt64, so span+1 cannot wrap to zero.
	span := uint64(hi) - uint64(lo)
	return int(int64(uint64(lo) + rand.Uint64N(span+1)))
}

func clampInt(f float64) float64 {
	return math.Max(minIntFloat, math.Min(maxIntFloat, f))
}
