// internal/interfaces/game.go
package interfaces

import "shooterx/internal/component"

// Environment answers static-geometry queries.
type Environment interface {
	CheckWallCollision(pos component.Vec3) bool
}

// PlayerTarget is the player as enemies see it.
type PlayerTarget interface {
	Pos() component.Vec3
	TakeDamage(amount float64) bool
}

// WorldHooks let the host mirror enemy lifetimes into its scene.
type WorldHooks interface {
	AddToWorld(e *component.Enemy)
	RemoveFromWorld(e *component.Enemy)
}

// NopHooks ignores every hook call.
type NopHooks struct{}

func (NopHooks) AddToWorld(*component.Enemy)      {}
func (NopHooks) RemoveFromWorld(*component.Enemy) {}
