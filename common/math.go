package common

import "math"

// PositiveFinite reports whether v is a usable distance: above zero, not NaN
// and not infinite.
func PositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
