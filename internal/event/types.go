// internal/event/types.go
package event

import (
	"shooterx/internal/defs"
	"shooterx/internal/types"
)

const (
	EnemySpawned  EventType = "EnemySpawned"  // EnemyData
	EnemyKilled   EventType = "EnemyKilled"   // EnemyData
	EnemyFaulted  EventType = "EnemyFaulted"  // EnemyData, enemy dropped after its update panicked
	WaveStarted   EventType = "WaveStarted"   // WaveData
	WaveCompleted EventType = "WaveCompleted" // WaveData
	PlayerDamaged EventType = "PlayerDamaged" // DamageData
	ShotFired     EventType = "ShotFired"     // ShotData
)

// EnemyData describes the enemy an event is about.
type EnemyData struct {
	ID   types.EntityID
	Type defs.EnemyType
	X, Z float64
}

// WaveData carries the wave number and the score it closed or opened with.
type WaveData struct {
	Wave     int
	Required int
	Score    int
	Total    int
}

type DamageData struct {
	Amount    float64
	Remaining float64
	Source    defs.EnemyType
}

type ShotData struct {
	Hit bool
}
