package system

import (
	"math"
	"testing"
	"time"

	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/defs"
	"shooterx/internal/event"
	"shooterx/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type behaviorFixture struct {
	clock      *utils.ManualClock
	player     *fakePlayer
	dispatcher *event.Dispatcher
	sys        *EnemyBehaviorSystem
	tuning     config.BehaviorTuning
}

func newBehaviorFixture(env fakeEnv, rng utils.Random) *behaviorFixture {
	f := &behaviorFixture{
		clock:      utils.NewManualClock(),
		player:     &fakePlayer{},
		dispatcher: event.NewDispatcher(),
		tuning:     config.DefaultTuning().Behavior,
	}
	f.sys = NewEnemyBehaviorSystem(env, f.player, f.clock, rng, f.tuning, f.dispatcher)
	return f
}

func grunt(pos component.Vec3) *component.Enemy {
	return component.NewEnemy(1, defs.DefaultCatalog()[defs.EnemyGrunt], pos)
}

func TestClassifyDistance(t *testing.T) {
	def := defs.DefaultCatalog()[defs.EnemyGrunt]
	assert.Equal(t, component.Attacking, ClassifyDistance(def.AttackRange, def))
	assert.Equal(t, component.Chasing, ClassifyDistance(def.AttackRange+0.01, def))
	assert.Equal(t, component.Chasing, ClassifyDistance(def.DetectionRange, def))
	assert.Equal(t, component.Roaming, ClassifyDistance(def.DetectionRange+0.01, def))
}

func TestAttackRespectsCooldown(t *testing.T) {
	f := newBehaviorFixture(fakeEnv{}, utils.NewPRNGService(1))
	log := &eventLog{}
	f.dispatcher.Subscribe(event.PlayerDamaged, log)
	e := grunt(component.Vec3{X: 1})

	f.sys.Update(e, 0.016)
	assert.Equal(t, component.Attacking, e.State)
	assert.Equal(t, 10.0, f.player.damage)
	assert.Equal(t, e.Def.AttackDelay, e.AttackCooldown)

	f.sys.Update(e, 0.5)
	assert.Equal(t, 1, f.player.hits)

	f.sys.Update(e, 0.6)
	assert.Equal(t, 2, f.player.hits)
	assert.Equal(t, 2, log.count(event.PlayerDamaged))
}

func TestChaseMovesAtReducedSpeed(t *testing.T) {
	f := newBehaviorFixture(fakeEnv{}, utils.NewPRNGService(1))
	f.player.pos = component.Vec3{X: 10}
	e := grunt(component.Vec3{})

	f.sys.Update(e, 1.0)
	assert.Equal(t, component.Chasing, e.State)
	want := e.Def.Speed * f.tuning.ChaseSpeedFactor
	assert.InDelta(t, want, e.Position.X, 1e-9)
	assert.InDelta(t, 0, e.Position.Z, 1e-9)
	assert.Zero(t, f.player.hits)
}

func TestChaseRotatesGradually(t *testing.T) {
	f := newBehaviorFixture(fakeEnv{}, utils.NewPRNGService(1))
	f.player.pos = component.Vec3{Z: 10}
	e := grunt(component.Vec3{})

	f.sys.Update(e, 0.05)
	step := f.tuning.RotationSpeed * 0.05
	assert.InDelta(t, math.Pi/2*step, e.Rotation, 1e-9)
	assert.Less(t, e.Rotation, math.Pi/2)
}

func TestMovementSlidesAlongWalls(t *testing.T) {
	env := fakeEnv{blocked: func(p component.Vec3) bool { return p.X > 0.5 }}
	f := newBehaviorFixture(env, utils.NewPRNGService(1))
	f.player.pos = component.Vec3{X: 10, Z: 10}
	e := grunt(component.Vec3{})

	f.sys.Update(e, 1.0)
	step := e.Def.Speed * f.tuning.ChaseSpeedFactor / math.Sqrt2
	assert.InDelta(t, 0, e.Position.X, 1e-9)
	assert.InDelta(t, step, e.Position.Z, 1e-9)
	assert.False(t, env.CheckWallCollision(e.Position))
}

func TestFullyBlockedEnemyStaysPut(t *testing.T) {
	start := component.Vec3{X: 3, Z: 3}
	env := fakeEnv{blocked: func(p component.Vec3) bool { return p != start }}
	f := newBehaviorFixture(env, utils.NewPRNGService(1))
	f.player.pos = component.Vec3{X: 10, Z: 10}
	e := grunt(start)

	f.sys.Update(e, 0.5)
	assert.Equal(t, start, e.Position)
	assert.Equal(t, component.Vec3{}, e.Velocity)
}

func TestRoamTargetBiasedInwardNearBoundary(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		f := newBehaviorFixture(fakeEnv{}, utils.NewPRNGService(seed))
		pos := component.Vec3{X: f.tuning.BoundaryDistance + 5}
		e := grunt(pos)
		f.sys.PickRoamTarget(e, 0)

		offset := e.RoamTarget.Sub(pos)
		require.Less(t, offset.X, 0.0, "seed %d", seed)
		// within ±45° of the inward heading
		assert.GreaterOrEqual(t, -offset.X, math.Abs(offset.Z)-1e-9, "seed %d", seed)
		assert.LessOrEqual(t, offset.LenXZ(), e.Def.Roaming.Radius+1e-9)
	}
}

func TestRoamTargetDeadlineWithinWindow(t *testing.T) {
	f := newBehaviorFixture(fakeEnv{}, utils.NewPRNGService(3))
	e := grunt(component.Vec3{})
	now := 10 * time.Second
	f.sys.PickRoamTarget(e, now)
	wait := e.NextRoamChange - now
	assert.GreaterOrEqual(t, wait.Seconds(), e.Def.Roaming.TargetChangeMin)
	assert.LessOrEqual(t, wait.Seconds(), e.Def.Roaming.TargetChangeMax)
	assert.Equal(t, 1, e.RoamTargetSeq)
}

func TestRoamingMovesTowardTarget(t *testing.T) {
	f := newBehaviorFixture(fakeEnv{}, utils.NewPRNGService(5))
	f.player.pos = component.Vec3{X: 500}
	e := grunt(component.Vec3{})

	f.sys.Update(e, 0.1)
	require.True(t, e.HasRoamTarget)
	before := e.RoamTarget.DistanceXZ(component.Vec3{})
	after := e.RoamTarget.DistanceXZ(e.Position)
	assert.Less(t, after, before)
	speed := e.Def.Speed * e.Def.Roaming.SpeedMultiplier
	assert.InDelta(t, speed*0.1, e.Position.LenXZ(), 1e-9)
}

func TestStuckWatchdogForcesNewTarget(t *testing.T) {
	start := component.Vec3{X: 1, Z: 1}
	env := fakeEnv{blocked: func(p component.Vec3) bool { return p != start }}
	f := newBehaviorFixture(env, utils.NewPRNGService(8))
	f.player.pos = component.Vec3{X: 500}
	e := grunt(start)

	f.sys.Update(e, 0.1)
	require.Equal(t, 1, e.RoamTargetSeq)

	f.clock.Advance(f.tuning.StuckCheckInterval.Duration)
	f.sys.Update(e, 0.1)
	assert.Equal(t, 2, e.RoamTargetSeq)
}

func TestFollowerHoldsAtCopiedTarget(t *testing.T) {
	f := newBehaviorFixture(fakeEnv{}, utils.NewPRNGService(2))
	f.player.pos = component.Vec3{X: 500}
	e := grunt(component.Vec3{})
	e.FollowsLeader = true
	e.HasRoamTarget = true
	e.RoamTarget = component.Vec3{X: 0.2}
	e.RoamTargetSeq = 4

	f.clock.Advance(time.Minute)
	f.sys.Update(e, 0.1)
	assert.Equal(t, 4, e.RoamTargetSeq)
	assert.Equal(t, component.Vec3{}, e.Position)
}

func TestDeadEnemyIsNotUpdated(t *testing.T) {
	f := newBehaviorFixture(fakeEnv{}, utils.NewPRNGService(2))
	e := grunt(component.Vec3{X: 1})
	e.TakeDamage(e.Health)
	f.sys.Update(e, 1)
	assert.Zero(t, f.player.hits)
}

func TestSlideStep(t *testing.T) {
	wall := fakeEnv{blocked: func(p component.Vec3) bool { return p.X > 1 }}
	step := component.Vec3{X: 2, Z: 3}

	applied, ok := SlideStep(wall, component.Vec3{}, step)
	require.True(t, ok)
	assert.Equal(t, component.Vec3{Z: 3}, applied)

	applied, ok = SlideStep(fakeEnv{}, component.Vec3{}, step)
	require.True(t, ok)
	assert.Equal(t, step, applied)

	_, ok = SlideStep(wall, component.Vec3{}, component.Vec3{X: 2})
	assert.False(t, ok)
}
