package system

import (
	"testing"
	"time"

	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/defs"
	"shooterx/internal/event"
	"shooterx/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueRejectsUnknownType(t *testing.T) {
	h := newHarness()
	assert.False(t, h.manager.Enqueue("DRAGON"))
	assert.False(t, h.manager.HasPendingSpawns())

	assert.True(t, h.manager.Enqueue(defs.EnemyGrunt))
	assert.True(t, h.manager.HasPendingSpawns())
	assert.Equal(t, 1, h.manager.PendingCount())
}

func TestSpawnCooldownCurve(t *testing.T) {
	tu := config.DefaultTuning().Spawn
	assert.Equal(t, 1900*time.Millisecond, SpawnCooldownFor(tu, 1))
	assert.Equal(t, 1500*time.Millisecond, SpawnCooldownFor(tu, 5))
	assert.Equal(t, 500*time.Millisecond, SpawnCooldownFor(tu, 15))
	assert.Equal(t, 500*time.Millisecond, SpawnCooldownFor(tu, 40))

	h := newHarness()
	h.manager.SetWaveNumber(0)
	assert.Equal(t, SpawnCooldownFor(tu, 1), h.manager.SpawnCooldown())
	h.manager.SetWaveNumber(5)
	assert.Equal(t, 1500*time.Millisecond, h.manager.SpawnCooldown())
}

func TestSpawnsOnePerCooldown(t *testing.T) {
	h := newHarness()
	for range 3 {
		require.True(t, h.manager.Enqueue(defs.EnemyGrunt))
	}

	h.manager.Update(0.016)
	assert.Equal(t, 1, h.manager.LiveCount())
	h.manager.Update(0.016)
	assert.Equal(t, 1, h.manager.LiveCount())

	h.clock.Advance(h.manager.SpawnCooldown() - time.Millisecond)
	h.manager.Update(0.016)
	assert.Equal(t, 1, h.manager.LiveCount())

	h.clock.Advance(time.Millisecond)
	h.manager.Update(0.016)
	assert.Equal(t, 2, h.manager.LiveCount())
	assert.Equal(t, 1, h.manager.PendingCount())
	assert.Len(t, h.hooks.added, 2)
}

func TestLiveCapDefersSpawns(t *testing.T) {
	h := newHarness(withTuning(func(tu *config.Tuning) { tu.Spawn.MaxEnemies = 2 }))
	for range 3 {
		h.manager.Enqueue(defs.EnemyScout)
	}
	h.drainQueue()
	assert.Equal(t, 2, h.manager.LiveCount())
	assert.Equal(t, 1, h.manager.PendingCount())

	h.manager.ResolveHit(h.manager.Enemies()[0], 1e9)
	h.clock.Advance(2 * time.Second)
	h.manager.Update(0)
	assert.Equal(t, 2, h.manager.LiveCount())
	assert.False(t, h.manager.HasPendingSpawns())
}

func TestNoSpawnPointKeepsTokenQueued(t *testing.T) {
	h := newHarness(withEnv(fakeEnv{blocked: func(component.Vec3) bool { return true }}))
	require.Empty(t, h.manager.SpawnPoints().Points())
	h.manager.Enqueue(defs.EnemyGrunt)
	for range 5 {
		h.clock.Advance(3 * time.Second)
		h.manager.Update(0.1)
	}
	assert.Zero(t, h.manager.LiveCount())
	assert.Equal(t, 1, h.manager.PendingCount())
}

func TestResolveHitKillsOnceAndNotifies(t *testing.T) {
	h := newHarness()
	log := &eventLog{}
	h.dispatcher.Subscribe(event.EnemyKilled, log)
	h.manager.Enqueue(defs.EnemyGrunt)
	h.manager.Update(0)
	e := h.manager.Enemies()[0]

	assert.False(t, h.manager.ResolveHit(e, 40))
	assert.True(t, h.manager.ResolveHit(e, 60))
	assert.False(t, h.manager.ResolveHit(e, 60))
	assert.False(t, h.manager.ResolveHit(nil, 60))

	require.Equal(t, 1, log.count(event.EnemyKilled))
	data := log.events[0].Data.(event.EnemyData)
	assert.Equal(t, defs.EnemyGrunt, data.Type)
	assert.Equal(t, e.ID, data.ID)
	assert.Equal(t, []types.EntityID{e.ID}, h.hooks.removed)

	h.manager.Update(0)
	assert.Empty(t, h.manager.Enemies())
	assert.Zero(t, h.manager.LiveCount())
}

func TestPanickingEnemyIsIsolated(t *testing.T) {
	env := fakeEnv{blocked: func(p component.Vec3) bool {
		if p.X > 1000 {
			panic("corrupt geometry query")
		}
		return false
	}}
	h := newHarness(withEnv(env))
	h.player.pos = component.Vec3{}
	h.manager.Enqueue(defs.EnemyGrunt)
	h.manager.Enqueue(defs.EnemyGrunt)
	h.drainQueue()
	require.Equal(t, 2, h.manager.LiveCount())

	bad := h.manager.Enemies()[0]
	good := h.manager.Enemies()[1]
	bad.Position = component.Vec3{X: 2000}

	require.NotPanics(t, func() { h.manager.Update(0.1) })
	assert.Equal(t, 1, h.manager.Faults())
	assert.False(t, bad.Alive)
	assert.True(t, good.Alive)
	assert.Equal(t, []*component.Enemy{good}, h.manager.Enemies())
	assert.Contains(t, h.hooks.removed, bad.ID)
}

func TestRemovedEnemiesLeaveTheirGroupAtOnce(t *testing.T) {
	h := newHarness(
		withRandom(fixedRandom{}),
		withCatalog(func(c defs.Catalog) {
			grunt := c[defs.EnemyGrunt]
			grunt.GroupChance = 1
			c[defs.EnemyGrunt] = grunt
		}),
	)
	h.manager.Enqueue(defs.EnemyGrunt)
	h.drainQueue()
	e := h.manager.Enemies()[0]
	_, grouped := h.manager.Groups().GroupOf(e.ID)
	require.True(t, grouped)

	require.True(t, h.manager.ResolveHit(e, e.Health))
	_, grouped = h.manager.Groups().GroupOf(e.ID)
	assert.False(t, grouped)
	assert.Zero(t, h.manager.Groups().Count())
	assert.Zero(t, e.GroupID)
}

func TestFaultedEnemyLeavesItsGroup(t *testing.T) {
	env := fakeEnv{blocked: func(p component.Vec3) bool {
		if p.X > 1000 {
			panic("corrupt geometry query")
		}
		return false
	}}
	h := newHarness(
		withEnv(env),
		withRandom(fixedRandom{}),
		withCatalog(func(c defs.Catalog) {
			grunt := c[defs.EnemyGrunt]
			grunt.GroupChance = 1
			c[defs.EnemyGrunt] = grunt
		}),
	)
	h.player.pos = component.Vec3{}
	faults := &eventLog{}
	h.dispatcher.Subscribe(event.EnemyFaulted, faults)
	h.manager.Enqueue(defs.EnemyGrunt)
	h.drainQueue()
	e := h.manager.Enemies()[0]
	_, grouped := h.manager.Groups().GroupOf(e.ID)
	require.True(t, grouped)

	e.Position = component.Vec3{X: 2000}
	h.manager.Update(0.1)
	assert.False(t, e.Alive)
	_, grouped = h.manager.Groups().GroupOf(e.ID)
	assert.False(t, grouped)
	require.Equal(t, 1, faults.count(event.EnemyFaulted))
	assert.Equal(t, e.ID, faults.events[0].Data.(event.EnemyData).ID)
}

func TestKillAllCountsKills(t *testing.T) {
	h := newHarness()
	log := &eventLog{}
	h.dispatcher.Subscribe(event.EnemyKilled, log)
	for range 4 {
		h.manager.Enqueue(defs.EnemyHeavy)
	}
	h.drainQueue()
	assert.Equal(t, 4, h.manager.KillAll())
	assert.Equal(t, 4, log.count(event.EnemyKilled))
	assert.Zero(t, h.manager.KillAll())
}

func TestManagerResetRestoresDefaults(t *testing.T) {
	h := newHarness(withCatalog(func(c defs.Catalog) {
		g := c[defs.EnemyGrunt]
		g.GroupChance = 1
		c[defs.EnemyGrunt] = g
	}))
	for range 6 {
		h.manager.Enqueue(defs.EnemyGrunt)
	}
	h.manager.SetWaveNumber(8)
	h.clock.Advance(time.Second)
	h.manager.Update(0)
	h.clock.Advance(2 * time.Second)
	h.manager.Update(0)
	require.Equal(t, 2, h.manager.LiveCount())
	require.NotZero(t, h.manager.Groups().Count())

	h.manager.Reset()
	assert.Zero(t, h.manager.LiveCount())
	assert.False(t, h.manager.HasPendingSpawns())
	assert.Zero(t, h.manager.Groups().Count())
	assert.Equal(t, SpawnCooldownFor(h.tuning.Spawn, 1), h.manager.SpawnCooldown())
	assert.Len(t, h.hooks.removed, 2)
	for _, p := range h.manager.SpawnPoints().Points() {
		assert.False(t, p.Used)
	}

	h.manager.Reset()
	assert.Len(t, h.hooks.removed, 2)

	h.manager.Enqueue(defs.EnemyGrunt)
	h.manager.Update(0)
	assert.Equal(t, 1, h.manager.LiveCount(), "first spawn after reset is not throttled")
}
