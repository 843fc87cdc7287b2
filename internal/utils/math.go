// internal/utils/math.go
package utils

import "math"

// LerpAngle interpolates between two angles along the shortest arc.
func LerpAngle(from, to, t float64) float64 {
	from = NormalizeAngle(from)
	to = NormalizeAngle(to)

	diff := to - from
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}

	return NormalizeAngle(from + diff*t)
}

// NormalizeAngle wraps an angle into [-π, π].
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
