// internal/system/enemy_manager.go
package system

import (
	"fmt"
	"slices"
	"time"

	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/defs"
	"shooterx/internal/event"
	"shooterx/internal/interfaces"
	"shooterx/internal/logger"
	"shooterx/internal/types"
	"shooterx/internal/utils"
)

// EnemyManager owns the live enemies and the pending spawn queue.
type EnemyManager struct {
	catalog    defs.Catalog
	tuning     config.SpawnTuning
	clock      utils.Clock
	dispatcher *event.Dispatcher
	hooks      interfaces.WorldHooks

	behavior    *EnemyBehaviorSystem
	spawnPoints *SpawnPointRegistry
	groups      *GroupCoordinator

	enemies []*component.Enemy
	queue   []defs.EnemyType
	nextID  types.EntityID

	lastSpawn   time.Duration
	hasSpawned  bool
	waveNumber  int
	faultsTotal int
}

// EnemyManagerDeps bundles the manager's collaborators.
type EnemyManagerDeps struct {
	Catalog     defs.Catalog
	Tuning      config.Tuning
	Environment interfaces.Environment
	Player      interfaces.PlayerTarget
	Clock       utils.Clock
	Rng         utils.Random
	Dispatcher  *event.Dispatcher
	Hooks       interfaces.WorldHooks
}

func NewEnemyManager(deps EnemyManagerDeps) *EnemyManager {
	hooks := deps.Hooks
	if hooks == nil {
		hooks = interfaces.NopHooks{}
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = event.NewDispatcher()
	}
	return &EnemyManager{
		catalog:     deps.Catalog,
		tuning:      deps.Tuning.Spawn,
		clock:       deps.Clock,
		dispatcher:  dispatcher,
		hooks:       hooks,
		behavior:    NewEnemyBehaviorSystem(deps.Environment, deps.Player, deps.Clock, deps.Rng, deps.Tuning.Behavior, dispatcher),
		spawnPoints: NewSpawnPointRegistry(deps.Tuning.Spawn.Rings, deps.Tuning.Spawn.PointCooldown.Duration, deps.Environment, deps.Clock, deps.Rng),
		groups:      NewGroupCoordinator(deps.Rng, deps.Tuning.Group),
		nextID:      1,
		waveNumber:  1,
	}
}

// Enqueue appends an enemy type to the spawn queue. Unknown types are
// dropped with a warning.
func (m *EnemyManager) Enqueue(t defs.EnemyType) bool {
	if !m.catalog.Has(t) {
		logger.With("enemies").Warn("rejected spawn of unknown enemy type", "type", string(t))
		return false
	}
	m.queue = append(m.queue, t)
	return true
}

// HasPendingSpawns reports whether queued enemies have yet to appear.
func (m *EnemyManager) HasPendingSpawns() bool {
	return len(m.queue) > 0
}

func (m *EnemyManager) PendingCount() int {
	return len(m.queue)
}

// SetWaveNumber feeds the wave number into the spawn-rate curve.
func (m *EnemyManager) SetWaveNumber(n int) {
	if n < 1 {
		n = 1
	}
	m.waveNumber = n
}

// SpawnCooldown is the delay between spawns for the current wave:
// max(floor, base − wave×decay).
func (m *EnemyManager) SpawnCooldown() time.Duration {
	return SpawnCooldownFor(m.tuning, m.waveNumber)
}

func SpawnCooldownFor(t config.SpawnTuning, wave int) time.Duration {
	cd := t.CooldownBase.Duration - time.Duration(wave)*t.CooldownDecay.Duration
	return max(cd, t.CooldownFloor.Duration)
}

// Update spawns at most one queued enemy, advances every live enemy and
// the groups, then drops the dead.
func (m *EnemyManager) Update(deltaTime float64) {
	m.trySpawn()

	// Enemies spawned or killed by callbacks below must not disturb this pass.
	snapshot := slices.Clone(m.enemies)
	for _, e := range snapshot {
		m.updateEnemy(e, deltaTime)
	}

	m.groups.Update()

	m.enemies = slices.DeleteFunc(m.enemies, func(e *component.Enemy) bool { return !e.Alive })
}

func (m *EnemyManager) trySpawn() {
	if len(m.queue) == 0 {
		return
	}
	now := m.clock.Now()
	if m.hasSpawned && now-m.lastSpawn < m.SpawnCooldown() {
		return
	}
	if m.LiveCount() >= m.tuning.MaxEnemies {
		return
	}
	pos, ok := m.spawnPoints.Select()
	if !ok {
		logger.With("enemies").Debug("spawn deferred: no eligible spawn point", "pending", len(m.queue))
		return
	}

	t := m.queue[0]
	m.queue = m.queue[1:]
	if _, err := m.spawn(t, pos); err != nil {
		logger.With("enemies").Warn("spawn failed", "type", string(t), "err", err)
		return
	}
	m.lastSpawn = now
	m.hasSpawned = true
}

func (m *EnemyManager) spawn(t defs.EnemyType, pos component.Vec3) (*component.Enemy, error) {
	def, err := m.catalog.Lookup(t)
	if err != nil {
		return nil, err
	}
	e := component.NewEnemy(m.nextID, def, pos)
	e.NextStuckCheck = m.clock.Now()
	m.nextID++
	m.enemies = append(m.enemies, e)
	m.hooks.AddToWorld(e)
	m.groups.OnSpawn(e)
	m.dispatcher.Dispatch(event.Event{
		Type: event.EnemySpawned,
		Data: event.EnemyData{ID: e.ID, Type: e.Type, X: pos.X, Z: pos.Z},
	})
	return e, nil
}

// updateEnemy runs one enemy's behavior inside its own recover boundary.
// A panicking enemy is taken out of the world and its group, and
// EnemyFaulted is dispatched so the wave stops waiting on it.
func (m *EnemyManager) updateEnemy(e *component.Enemy, deltaTime float64) {
	defer func() {
		if r := recover(); r != nil {
			m.faultsTotal++
			logger.With("enemies").Error("enemy update panicked; removing enemy",
				"enemy", e.ID, "type", string(e.Type), "panic", fmt.Sprint(r))
			if !e.Alive {
				return
			}
			e.Alive = false
			m.hooks.RemoveFromWorld(e)
			m.groups.Remove(e)
			m.dispatcher.Dispatch(event.Event{
				Type: event.EnemyFaulted,
				Data: event.EnemyData{ID: e.ID, Type: e.Type, X: e.Position.X, Z: e.Position.Z},
			})
		}
	}()
	m.behavior.Update(e, deltaTime)
}

// ResolveHit applies damage to target. When the hit kills it, the enemy
// leaves the world and its group, and EnemyKilled is dispatched. It reports whether the
// target died from this hit.
func (m *EnemyManager) ResolveHit(target *component.Enemy, damage float64) bool {
	if target == nil || !target.Alive {
		return false
	}
	res := target.TakeDamage(damage)
	if !res.Killed {
		return false
	}
	m.hooks.RemoveFromWorld(target)
	m.groups.Remove(target)
	m.dispatcher.Dispatch(event.Event{
		Type: event.EnemyKilled,
		Data: event.EnemyData{ID: target.ID, Type: target.Type, X: target.Position.X, Z: target.Position.Z},
	})
	return true
}

// KillAll kills every live enemy through the normal hit path.
func (m *EnemyManager) KillAll() int {
	killed := 0
	for _, e := range slices.Clone(m.enemies) {
		if m.ResolveHit(e, e.Health) {
			killed++
		}
	}
	return killed
}

// Enemies returns a copy of the live enemy list.
func (m *EnemyManager) Enemies() []*component.Enemy {
	out := make([]*component.Enemy, 0, len(m.enemies))
	for _, e := range m.enemies {
		if e.Alive {
			out = append(out, e)
		}
	}
	return out
}

func (m *EnemyManager) LiveCount() int {
	n := 0
	for _, e := range m.enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

func (m *EnemyManager) Groups() *GroupCoordinator { return m.groups }

func (m *EnemyManager) SpawnPoints() *SpawnPointRegistry { return m.spawnPoints }

func (m *EnemyManager) Behavior() *EnemyBehaviorSystem { return m.behavior }

// Faults counts enemies removed because their update panicked.
func (m *EnemyManager) Faults() int { return m.faultsTotal }

// Reset removes every enemy from the world and restores the initial
// queue, group, cooldown and wave state.
func (m *EnemyManager) Reset() {
	for _, e := range m.enemies {
		if e.Alive {
			e.Alive = false
			m.hooks.RemoveFromWorld(e)
		}
	}
	m.enemies = nil
	m.queue = nil
	m.groups.Reset()
	m.spawnPoints.Reset()
	m.nextID = 1
	m.lastSpawn = 0
	m.hasSpawned = false
	m.waveNumber = 1
}
