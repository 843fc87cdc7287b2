// internal/component/enemy.go
package component

import (
	"time"

	"shooterx/internal/defs"
	"shooterx/internal/types"
)

// EnemyBehavior is the per-enemy behavior state.
type EnemyBehavior int

const (
	Roaming EnemyBehavior = iota
	Chasing
	Attacking
)

func (b EnemyBehavior) String() string {
	switch b {
	case Roaming:
		return "ROAMING"
	case Chasing:
		return "CHASING"
	case Attacking:
		return "ATTACKING"
	default:
		return "UNKNOWN"
	}
}

// Enemy is a live enemy entity. It is owned by the enemy manager.
type Enemy struct {
	ID   types.EntityID
	Type defs.EnemyType
	Def  defs.EnemyDefinition

	Position Vec3
	Velocity Vec3
	Rotation float64

	Health    float64
	MaxHealth float64
	Alive     bool
	State     EnemyBehavior

	RoamTarget     Vec3
	HasRoamTarget  bool
	NextRoamChange time.Duration
	// RoamTargetSeq counts roam targets picked so group followers can
	// tell a fresh leader target from one they already copied.
	RoamTargetSeq int
	FollowedSeq   int

	AttackCooldown float64 // seconds until the next attack may land

	LastCheckedPosition Vec3
	NextStuckCheck      time.Duration

	// GroupID is 0 when the enemy is not in a group.
	GroupID int
	// FollowsLeader is set for non-leader group members: they hold at
	// their copied target instead of picking their own.
	FollowsLeader bool
}

// NewEnemy creates a live enemy at pos with full health.
func NewEnemy(id types.EntityID, def defs.EnemyDefinition, pos Vec3) *Enemy {
	return &Enemy{
		ID:                  id,
		Type:                def.ID,
		Def:                 def,
		Position:            pos,
		Health:              def.Health,
		MaxHealth:           def.Health,
		Alive:               true,
		State:               Roaming,
		LastCheckedPosition: pos,
	}
}

// DamageResult reports what a TakeDamage call did.
type DamageResult struct {
	Applied bool // false for a no-op (dead target or non-positive amount)
	Killed  bool // true only on the call that took health to zero
}

// TakeDamage reduces health. The call that drops health to zero or below
// kills the enemy; every later call is a no-op.
func (e *Enemy) TakeDamage(amount float64) DamageResult {
	if !e.Alive || amount <= 0 {
		return DamageResult{}
	}
	e.Health -= amount
	if e.Health > 0 {
		return DamageResult{Applied: true}
	}
	e.Health = 0
	e.Alive = false
	e.Velocity = Vec3{}
	return DamageResult{Applied: true, Killed: true}
}
