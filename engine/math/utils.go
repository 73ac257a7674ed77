package math

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. Pitch limits and light ambient terms go through it.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

/** @brief Degrees to radians, as the trigonometric functions expect. */
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}
