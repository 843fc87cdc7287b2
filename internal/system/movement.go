// internal/system/movement.go
package system

import (
	"math"

	"shooterx/internal/component"
	"shooterx/internal/interfaces"
	"shooterx/internal/utils"
)

// SlideStep resolves a step from pos against env. A blocked move falls
// back to the X component alone, then the Z component alone, so movers
// slide along walls instead of sticking to them. It returns the step that
// was applied and whether any movement happened.
func SlideStep(env interfaces.Environment, pos, step component.Vec3) (component.Vec3, bool) {
	candidates := [...]component.Vec3{
		step,
		{X: step.X},
		{Z: step.Z},
	}
	for _, c := range candidates {
		if c.X == 0 && c.Z == 0 {
			continue
		}
		if env.CheckWallCollision(pos.Add(c)) {
			continue
		}
		return c, true
	}
	return component.Vec3{}, false
}

// moveWithSliding applies step to e through SlideStep and updates its
// velocity. It reports whether e moved at all.
func moveWithSliding(env interfaces.Environment, e *component.Enemy, step component.Vec3, deltaTime float64) bool {
	applied, ok := SlideStep(env, e.Position, step)
	if !ok {
		e.Velocity = component.Vec3{}
		return false
	}
	e.Position = e.Position.Add(applied)
	if deltaTime > 0 {
		e.Velocity = applied.Scale(1 / deltaTime)
	}
	return true
}

// turnTowards rotates e toward heading along the shorter arc, at most
// rotationSpeed×deltaTime of the remaining gap per tick.
func turnTowards(e *component.Enemy, heading, rotationSpeed, deltaTime float64) {
	t := math.Min(1, rotationSpeed*deltaTime)
	e.Rotation = utils.LerpAngle(e.Rotation, heading, t)
}
