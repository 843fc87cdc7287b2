// internal/system/enemy_behavior.go
package system

import (
	"math"
	"time"

	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/defs"
	"shooterx/internal/event"
	"shooterx/internal/interfaces"
	"shooterx/internal/logger"
	"shooterx/internal/utils"

	bt "github.com/joeycumines/go-behaviortree"
)

// ClassifyDistance maps the distance to the player onto a behavior state.
func ClassifyDistance(distance float64, def defs.EnemyDefinition) component.EnemyBehavior {
	switch {
	case distance <= def.AttackRange:
		return component.Attacking
	case distance <= def.DetectionRange:
		return component.Chasing
	default:
		return component.Roaming
	}
}

// EnemyBehaviorSystem drives one enemy per call: roam, chase or attack
// depending on how far the player is. The choice is a behavior tree
// ticked once per enemy per frame.
type EnemyBehaviorSystem struct {
	env        interfaces.Environment
	player     interfaces.PlayerTarget
	clock      utils.Clock
	rng        utils.Random
	tuning     config.BehaviorTuning
	dispatcher *event.Dispatcher

	tree bt.Node
	cur  behaviorTick
}

// behaviorTick is the per-call context the tree's leaves read.
type behaviorTick struct {
	e         *component.Enemy
	deltaTime float64
	now       time.Duration
	playerPos component.Vec3
	distance  float64
}

func NewEnemyBehaviorSystem(env interfaces.Environment, player interfaces.PlayerTarget, clock utils.Clock, rng utils.Random, tuning config.BehaviorTuning, dispatcher *event.Dispatcher) *EnemyBehaviorSystem {
	s := &EnemyBehaviorSystem{
		env:        env,
		player:     player,
		clock:      clock,
		rng:        rng,
		tuning:     tuning,
		dispatcher: dispatcher,
	}
	s.tree = bt.New(bt.Selector,
		bt.New(bt.Sequence, s.inState(component.Attacking), s.leaf(s.attack)),
		bt.New(bt.Sequence, s.inState(component.Chasing), s.leaf(s.chase)),
		s.leaf(s.roamLeaf),
	)
	return s
}

// inState succeeds when the current enemy is in state b.
func (s *EnemyBehaviorSystem) inState(b component.EnemyBehavior) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if s.cur.e.State == b {
			return bt.Success, nil
		}
		return bt.Failure, nil
	})
}

// leaf wraps an action that always completes within the tick.
func (s *EnemyBehaviorSystem) leaf(action func()) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		action()
		return bt.Success, nil
	})
}

func (s *EnemyBehaviorSystem) Update(e *component.Enemy, deltaTime float64) {
	if !e.Alive {
		return
	}
	now := s.clock.Now()
	playerPos := s.player.Pos()
	distance := e.Position.DistanceXZ(playerPos)

	e.State = ClassifyDistance(distance, e.Def)
	if e.AttackCooldown > 0 {
		e.AttackCooldown = math.Max(0, e.AttackCooldown-deltaTime)
	}
	s.checkStuck(e, now)

	s.cur = behaviorTick{e: e, deltaTime: deltaTime, now: now, playerPos: playerPos, distance: distance}
	defer func() { s.cur = behaviorTick{} }()
	if _, err := s.tree.Tick(); err != nil {
		logger.With("behavior").Warn("behavior tree failed", "enemy", e.ID, "err", err)
	}
}

func (s *EnemyBehaviorSystem) attack() {
	t := s.cur
	t.e.Velocity = component.Vec3{}
	turnTowards(t.e, t.playerPos.Sub(t.e.Position).HeadingXZ(), s.tuning.RotationSpeed, t.deltaTime)
	s.tryAttack(t.e, t.distance)
}

func (s *EnemyBehaviorSystem) chase() {
	t := s.cur
	dir := t.playerPos.Sub(t.e.Position).NormalizeXZ()
	turnTowards(t.e, dir.HeadingXZ(), s.tuning.RotationSpeed, t.deltaTime)
	speed := t.e.Def.Speed * s.tuning.ChaseSpeedFactor
	moveWithSliding(s.env, t.e, dir.Scale(speed*t.deltaTime), t.deltaTime)
}

func (s *EnemyBehaviorSystem) roamLeaf() {
	s.roam(s.cur.e, s.cur.deltaTime, s.cur.now)
}

func (s *EnemyBehaviorSystem) tryAttack(e *component.Enemy, distance float64) {
	if e.AttackCooldown > 0 || distance > e.Def.AttackRange {
		return
	}
	s.player.TakeDamage(e.Def.Damage)
	e.AttackCooldown = e.Def.AttackDelay
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(event.Event{
			Type: event.PlayerDamaged,
			Data: event.DamageData{Amount: e.Def.Damage, Source: e.Type},
		})
	}
}

func (s *EnemyBehaviorSystem) roam(e *component.Enemy, deltaTime float64, now time.Duration) {
	if !e.HasRoamTarget || (!e.FollowsLeader && now >= e.NextRoamChange) {
		s.PickRoamTarget(e, now)
	}

	toTarget := e.RoamTarget.Sub(e.Position)
	if toTarget.LenXZ() < s.tuning.ArrivalDistance {
		if e.FollowsLeader {
			e.Velocity = component.Vec3{}
			return
		}
		s.PickRoamTarget(e, now)
		toTarget = e.RoamTarget.Sub(e.Position)
	}

	dir := toTarget.NormalizeXZ()
	turnTowards(e, dir.HeadingXZ(), s.tuning.RotationSpeed, deltaTime)
	speed := e.Def.Speed * e.Def.Roaming.SpeedMultiplier
	moveWithSliding(s.env, e, dir.Scale(speed*deltaTime), deltaTime)
}

// checkStuck compares the position against the last sample every stuck
// interval. A roaming enemy that covered less than the threshold while it
// still had somewhere to go gets a fresh target.
func (s *EnemyBehaviorSystem) checkStuck(e *component.Enemy, now time.Duration) {
	if now < e.NextStuckCheck {
		return
	}
	moved := e.Position.DistanceXZ(e.LastCheckedPosition)
	arrived := e.Position.DistanceXZ(e.RoamTarget) < s.tuning.ArrivalDistance
	if e.State == component.Roaming && e.HasRoamTarget && !arrived && moved < s.tuning.StuckThreshold {
		s.PickRoamTarget(e, now)
	}
	e.LastCheckedPosition = e.Position
	e.NextStuckCheck = now + s.tuning.StuckCheckInterval.Duration
}

// PickRoamTarget chooses a new point within the roam radius. Past the
// boundary distance the heading is biased back toward the origin (±45°).
func (s *EnemyBehaviorSystem) PickRoamTarget(e *component.Enemy, now time.Duration) {
	pos := e.Position
	var angle float64
	if pos.LenXZ() > s.tuning.BoundaryDistance {
		toCenter := component.Vec3{}.Sub(pos).HeadingXZ()
		angle = toCenter + (s.rng.Float64()-0.5)*(math.Pi/2)
	} else {
		angle = s.rng.Float64() * 2 * math.Pi
	}

	radius := e.Def.Roaming.Radius
	dist := utils.Range(s.rng, radius*0.25, radius)
	e.RoamTarget = component.Vec3{
		X: pos.X + math.Cos(angle)*dist,
		Y: pos.Y,
		Z: pos.Z + math.Sin(angle)*dist,
	}
	e.HasRoamTarget = true
	e.RoamTargetSeq++

	wait := utils.Range(s.rng, e.Def.Roaming.TargetChangeMin, e.Def.Roaming.TargetChangeMax)
	e.NextRoamChange = now + time.Duration(wait*float64(time.Second))
}
