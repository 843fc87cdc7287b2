// internal/system/spawn_points.go
package system

import (
	"math"
	"time"

	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/interfaces"
	"shooterx/internal/logger"
	"shooterx/internal/utils"
)

// SpawnPoint is a candidate spawn location with its own cooldown stamp.
type SpawnPoint struct {
	Position component.Vec3
	LastUsed time.Duration
	Used     bool
}

// SpawnPointRegistry hands out spawn locations from precomputed rings,
// never reusing a point still cooling down.
type SpawnPointRegistry struct {
	points   []*SpawnPoint
	env      interfaces.Environment
	clock    utils.Clock
	rng      utils.Random
	cooldown time.Duration
}

// NewSpawnPointRegistry lays points evenly on each ring and drops the
// ones that sit inside static geometry.
func NewSpawnPointRegistry(rings []config.SpawnRing, cooldown time.Duration, env interfaces.Environment, clock utils.Clock, rng utils.Random) *SpawnPointRegistry {
	r := &SpawnPointRegistry{
		env:      env,
		clock:    clock,
		rng:      rng,
		cooldown: cooldown,
	}
	discarded := 0
	for _, ring := range rings {
		for i := 0; i < ring.Points; i++ {
			angle := 2 * math.Pi * float64(i) / float64(ring.Points)
			pos := component.Vec3{
				X: math.Cos(angle) * ring.Radius,
				Z: math.Sin(angle) * ring.Radius,
			}
			if env.CheckWallCollision(pos) {
				discarded++
				continue
			}
			r.points = append(r.points, &SpawnPoint{Position: pos})
		}
	}
	logger.With("spawn").Debug("spawn points ready", "points", len(r.points), "discarded", discarded)
	return r
}

// Points returns the registry's points.
func (r *SpawnPointRegistry) Points() []*SpawnPoint {
	return r.points
}

func (r *SpawnPointRegistry) coolingDown(p *SpawnPoint, now time.Duration) bool {
	return p.Used && now-p.LastUsed < r.cooldown
}

// Eligible lists the points Select may currently return.
func (r *SpawnPointRegistry) Eligible() []*SpawnPoint {
	now := r.clock.Now()
	var out []*SpawnPoint
	for _, p := range r.points {
		if r.coolingDown(p, now) || r.env.CheckWallCollision(p.Position) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Select picks a random eligible point and stamps it. It reports false
// when every point is cooling down or blocked.
func (r *SpawnPointRegistry) Select() (component.Vec3, bool) {
	var best *SpawnPoint
	bestScore := -1.0
	for _, p := range r.Eligible() {
		if score := r.rng.Float64(); score > bestScore {
			best, bestScore = p, score
		}
	}
	if best == nil {
		return component.Vec3{}, false
	}
	best.Used = true
	best.LastUsed = r.clock.Now()
	return best.Position, true
}

// Reset clears every cooldown stamp.
func (r *SpawnPointRegistry) Reset() {
	for _, p := range r.points {
		p.Used = false
		p.LastUsed = 0
	}
}
