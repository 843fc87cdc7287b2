// internal/defs/enemies.go
package defs

import (
	"errors"
	"fmt"
	"sort"
)

// EnemyType is the catalog key of an enemy kind. Spawn queues carry these tokens.
type EnemyType string

const (
	EnemyGrunt     EnemyType = "GRUNT"
	EnemyScout     EnemyType = "SCOUT"
	EnemyHeavy     EnemyType = "HEAVY"
	EnemySniper    EnemyType = "SNIPER"
	EnemyCommander EnemyType = "COMMANDER"
	EnemyBoss      EnemyType = "BOSS"
)

var (
	ErrUnknownEnemyType  = errors.New("unknown enemy type")
	ErrInvalidDefinition = errors.New("invalid enemy definition")
)

// RoamingDef controls how an enemy wanders when the player is out of sight.
type RoamingDef struct {
	Radius          float64 `json:"radius"`
	SpeedMultiplier float64 `json:"speed_multiplier"`
	// Seconds before a fresh roam target is picked, drawn from [Min, Max].
	TargetChangeMin float64 `json:"target_change_min"`
	TargetChangeMax float64 `json:"target_change_max"`
}

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID             EnemyType  `json:"id"`
	Name           string     `json:"name"`
	Health         float64    `json:"health"`
	Speed          float64    `json:"speed"`
	Damage         float64    `json:"damage"`
	AttackRange    float64    `json:"attack_range"`
	DetectionRange float64    `json:"detection_range"`
	AttackDelay    float64    `json:"attack_delay"` // seconds
	Points         int        `json:"points"`
	HitboxRadius   float64    `json:"hitbox_radius"`
	Roaming        RoamingDef `json:"roaming"`
	// GroupChance is the probability a fresh spawn tries to join a roaming group.
	GroupChance float64 `json:"group_chance"`
	// Elite types are the forced one-per-wave tokens; they never group.
	Elite bool `json:"elite"`
}

// Validate reports malformed definitions.
func (d EnemyDefinition) Validate() error {
	switch {
	case d.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidDefinition)
	case d.Health <= 0:
		return fmt.Errorf("%w: %s: health must be positive", ErrInvalidDefinition, d.ID)
	case d.Speed < 0:
		return fmt.Errorf("%w: %s: negative speed", ErrInvalidDefinition, d.ID)
	case d.AttackRange <= 0 || d.DetectionRange < d.AttackRange:
		return fmt.Errorf("%w: %s: need 0 < attack_range <= detection_range", ErrInvalidDefinition, d.ID)
	case d.AttackDelay < 0:
		return fmt.Errorf("%w: %s: negative attack_delay", ErrInvalidDefinition, d.ID)
	case d.Points < 0:
		return fmt.Errorf("%w: %s: negative points", ErrInvalidDefinition, d.ID)
	case d.Roaming.TargetChangeMin < 0 || d.Roaming.TargetChangeMax < d.Roaming.TargetChangeMin:
		return fmt.Errorf("%w: %s: bad roaming target-change window", ErrInvalidDefinition, d.ID)
	case d.GroupChance < 0 || d.GroupChance > 1:
		return fmt.Errorf("%w: %s: group_chance outside [0,1]", ErrInvalidDefinition, d.ID)
	}
	return nil
}

// Catalog is the immutable set of enemy definitions keyed by type.
type Catalog map[EnemyType]EnemyDefinition

// Lookup returns the definition for t.
func (c Catalog) Lookup(t EnemyType) (EnemyDefinition, error) {
	def, ok := c[t]
	if !ok {
		return EnemyDefinition{}, fmt.Errorf("%w: %q", ErrUnknownEnemyType, t)
	}
	return def, nil
}

// Has reports whether t is a known type.
func (c Catalog) Has(t EnemyType) bool {
	_, ok := c[t]
	return ok
}

// Types lists the catalog keys in a stable order.
func (c Catalog) Types() []EnemyType {
	out := make([]EnemyType, 0, len(c))
	for t := range c {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate checks every definition and that the key matches the id.
func (c Catalog) Validate() error {
	for key, def := range c {
		if key != def.ID {
			return fmt.Errorf("%w: key %q holds id %q", ErrInvalidDefinition, key, def.ID)
		}
		if err := def.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a copy that can be altered without touching c.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// DefaultCatalog is the built-in roster.
func DefaultCatalog() Catalog {
	return Catalog{
		EnemyGrunt: {
			ID: EnemyGrunt, Name: "Grunt",
			Health: 100, Speed: 3.0, Damage: 10,
			AttackRange: 2.0, DetectionRange: 20, AttackDelay: 1.0,
			Points: 100, HitboxRadius: 0.5,
			Roaming:     RoamingDef{Radius: 15, SpeedMultiplier: 0.5, TargetChangeMin: 3, TargetChangeMax: 6},
			GroupChance: 0.7,
		},
		EnemyScout: {
			ID: EnemyScout, Name: "Scout",
			Health: 60, Speed: 5.0, Damage: 5,
			AttackRange: 2.0, DetectionRange: 30, AttackDelay: 0.6,
			Points: 150, HitboxRadius: 0.4,
			Roaming:     RoamingDef{Radius: 25, SpeedMultiplier: 0.6, TargetChangeMin: 2, TargetChangeMax: 4},
			GroupChance: 0.4,
		},
		EnemyHeavy: {
			ID: EnemyHeavy, Name: "Heavy",
			Health: 250, Speed: 2.0, Damage: 25,
			AttackRange: 2.5, DetectionRange: 18, AttackDelay: 2.0,
			Points: 300, HitboxRadius: 0.8,
			Roaming:     RoamingDef{Radius: 10, SpeedMultiplier: 0.4, TargetChangeMin: 4, TargetChangeMax: 8},
			GroupChance: 0.3,
		},
		EnemySniper: {
			ID: EnemySniper, Name: "Sniper",
			Health: 80, Speed: 2.5, Damage: 30,
			AttackRange: 25, DetectionRange: 35, AttackDelay: 3.0,
			Points: 250, HitboxRadius: 0.45,
			Roaming:     RoamingDef{Radius: 20, SpeedMultiplier: 0.5, TargetChangeMin: 5, TargetChangeMax: 9},
			GroupChance: 0.1,
		},
		EnemyCommander: {
			ID: EnemyCommander, Name: "Commander",
			Health: 400, Speed: 2.5, Damage: 20,
			AttackRange: 3.0, DetectionRange: 30, AttackDelay: 1.5,
			Points: 1000, HitboxRadius: 0.9,
			Roaming: RoamingDef{Radius: 12, SpeedMultiplier: 0.5, TargetChangeMin: 4, TargetChangeMax: 7},
			Elite:   true,
		},
		EnemyBoss: {
			ID: EnemyBoss, Name: "Boss",
			Health: 1500, Speed: 1.8, Damage: 40,
			AttackRange: 4.0, DetectionRange: 40, AttackDelay: 2.5,
			Points: 5000, HitboxRadius: 1.5,
			Roaming: RoamingDef{Radius: 8, SpeedMultiplier: 0.4, TargetChangeMin: 5, TargetChangeMax: 10},
			Elite:   true,
		},
	}
}
