// internal/app/arena.go
package app

import (
	"math"

	"shooterx/internal/component"
)

const raycastStep = 0.25

// Rect is an axis-aligned obstacle on the XZ plane.
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

func (r Rect) Contains(p component.Vec3) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Z >= r.MinZ && p.Z <= r.MaxZ
}

// Arena is the square play field centred on the origin. Anything at or
// beyond HalfSize on either axis counts as wall.
type Arena struct {
	HalfSize float64
	Pillars  []Rect
}

func NewArena(halfSize float64, pillars ...Rect) *Arena {
	return &Arena{HalfSize: halfSize, Pillars: pillars}
}

// DefaultPillars places four square pillars on the diagonals, a third of
// the way out from the centre.
func DefaultPillars(halfSize float64) []Rect {
	c := halfSize / 3
	h := halfSize / 20
	var out []Rect
	for _, sx := range []float64{-1, 1} {
		for _, sz := range []float64{-1, 1} {
			out = append(out, Rect{
				MinX: sx*c - h, MaxX: sx*c + h,
				MinZ: sz*c - h, MaxZ: sz*c + h,
			})
		}
	}
	return out
}

// CheckWallCollision implements interfaces.Environment.
func (a *Arena) CheckWallCollision(p component.Vec3) bool {
	if math.Abs(p.X) >= a.HalfSize || math.Abs(p.Z) >= a.HalfSize {
		return true
	}
	for _, r := range a.Pillars {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// Raycast marches from origin along the unit direction dir and returns the
// distance to the first wall, or maxDist if nothing is hit.
func (a *Arena) Raycast(origin, dir component.Vec3, maxDist float64) float64 {
	for d := raycastStep; d <= maxDist; d += raycastStep {
		if a.CheckWallCollision(origin.Add(dir.Scale(d))) {
			return d
		}
	}
	return maxDist
}
