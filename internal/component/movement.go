// internal/component/movement.go
package component

import "math"

// Vec3 is a world-space position or direction. The ground plane is XZ;
// Y is height and is ignored by every horizontal distance helper.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// LenXZ is the horizontal length.
func (v Vec3) LenXZ() float64 { return math.Hypot(v.X, v.Z) }

// DistanceXZ is the horizontal distance between two points.
func (v Vec3) DistanceXZ(o Vec3) float64 { return v.Sub(o).LenXZ() }

// NormalizeXZ returns the unit horizontal direction of v, or the zero vector.
func (v Vec3) NormalizeXZ() Vec3 {
	l := v.LenXZ()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / l, Z: v.Z / l}
}

// HeadingXZ is the yaw angle of v on the ground plane.
func (v Vec3) HeadingXZ() float64 { return math.Atan2(v.Z, v.X) }
