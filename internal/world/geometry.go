package world

import "math"

// Clamp limits value to the range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func normalizeVector(x, y float64) (float64, float64) {
	length := math.Hypot(x, y)
	if length == 0 {
		return 0, 0
	}
	return x / length, y / length
}

// clampMagnitude scales the vector down to the given magnitude when it
// exceeds it; shorter vectors pass through unchanged.
func clampMagnitude(x, y, max float64) (float64, float64) {
	length := math.Hypot(x, y)
	if length <= max || length == 0 {
		return x, y
	}
	scale := max / length
	return x * scale, y * scale
}

// wrapAngle maps an angle into [0, 2π).
func wrapAngle(rad float64) float64 {
	wrapped := math.Mod(rad, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped
}
