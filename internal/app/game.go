// internal/app/game.go
package app

import (
	"math"
	"time"

	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/defs"
	"shooterx/internal/event"
	"shooterx/internal/logger"
	"shooterx/internal/system"
	"shooterx/internal/telemetry"
	"shooterx/internal/types"
	"shooterx/internal/utils"
)

const tracerLifetime = 0.08 // seconds a shot line stays on screen

// Tracer is a recently fired shot, kept for drawing.
type Tracer struct {
	From, To component.Vec3
	Hit      bool
	TTL      float64
}

// Game holds the main game state and logic.
type Game struct {
	Tuning          config.Tuning
	Catalog         defs.Catalog
	Clock           *utils.ManualClock
	Rng             *utils.PRNGService
	EventDispatcher *event.Dispatcher
	Arena           *Arena
	Player          *component.Player
	EnemyManager    *system.EnemyManager
	WaveController  *system.WaveController
	Telemetry       *telemetry.Sink

	// scene mirrors the enemies the manager has put into the world.
	scene map[types.EntityID]*component.Enemy

	gameTime float64
	gameOver bool
	lastShot time.Duration
	hasShot  bool
	tracers  []Tracer
}

// NewGame wires the core systems together around an arena built from tuning.
func NewGame(tuning config.Tuning, catalog defs.Catalog) *Game {
	clock := utils.NewManualClock()
	rng := utils.NewPRNGService(tuning.Seed)
	dispatcher := event.NewDispatcher()

	g := &Game{
		Tuning:          tuning,
		Catalog:         catalog,
		Clock:           clock,
		Rng:             rng,
		EventDispatcher: dispatcher,
		Arena:           NewArena(tuning.ArenaHalfSize, DefaultPillars(tuning.ArenaHalfSize)...),
		Player:          component.NewPlayer(tuning.Player.MaxHealth),
		scene:           make(map[types.EntityID]*component.Enemy),
	}
	g.EnemyManager = system.NewEnemyManager(system.EnemyManagerDeps{
		Catalog:     catalog,
		Tuning:      tuning,
		Environment: g.Arena,
		Player:      g.Player,
		Clock:       clock,
		Rng:         rng,
		Dispatcher:  dispatcher,
		Hooks:       g,
	})
	g.WaveController = system.NewWaveController(g.EnemyManager, catalog, tuning, clock, rng, dispatcher)

	listener := &gameEventListener{game: g}
	dispatcher.Subscribe(event.PlayerDamaged, listener)
	dispatcher.Subscribe(event.WaveCompleted, listener)

	logger.With("game").Info("game created", "seed", rng.Seed(), "enemy_types", len(catalog))
	return g
}

// AttachTelemetry subscribes sink to the event bus and feeds it frame times.
func (g *Game) AttachTelemetry(sink *telemetry.Sink) {
	g.Telemetry = sink
	sink.Subscribe(g.EventDispatcher)
	logger.With("game").Info("telemetry attached", "run", sink.RunID)
}

// AddToWorld implements interfaces.WorldHooks.
func (g *Game) AddToWorld(e *component.Enemy) {
	g.scene[e.ID] = e
}

// RemoveFromWorld implements interfaces.WorldHooks.
func (g *Game) RemoveFromWorld(e *component.Enemy) {
	delete(g.scene, e.ID)
}

// SceneSize is the number of enemies currently mirrored into the world.
func (g *Game) SceneSize() int {
	return len(g.scene)
}

// Update advances the simulation by deltaTime seconds. A finished game
// stays frozen until Restart.
func (g *Game) Update(deltaTime float64) {
	if g.Telemetry != nil {
		g.Telemetry.Frame(deltaTime)
	}
	if g.gameOver {
		return
	}

	g.gameTime += deltaTime
	g.Clock.AdvanceSeconds(deltaTime)

	if g.WaveController.GetCurrentState().State == component.WaveWaiting && !g.WaveController.RestartPending() {
		g.WaveController.StartWave()
	}

	g.EnemyManager.Update(deltaTime)
	g.WaveController.Update(deltaTime)
	g.updateTracers(deltaTime)

	if !g.Player.Alive {
		g.gameOver = true
		snap := g.WaveController.GetCurrentState()
		logger.With("game").Info("player died", "wave", snap.Wave, "total", snap.TotalScore, "time", g.gameTime)
	}
}

func (g *Game) updateTracers(deltaTime float64) {
	kept := g.tracers[:0]
	for _, t := range g.tracers {
		t.TTL -= deltaTime
		if t.TTL > 0 {
			kept = append(kept, t)
		}
	}
	g.tracers = kept
}

// MovePlayer moves the player along (dx, dz) at player speed, sliding
// along walls the same way enemies do.
func (g *Game) MovePlayer(dx, dz, deltaTime float64) {
	if g.gameOver || !g.Player.Alive {
		return
	}
	dir := component.Vec3{X: dx, Z: dz}.NormalizeXZ()
	if dir.LenXZ() == 0 {
		return
	}
	step := dir.Scale(g.Tuning.Player.Speed * deltaTime)
	if applied, ok := system.SlideStep(g.Arena, g.Player.Position, step); ok {
		g.Player.Position = g.Player.Position.Add(applied)
	}
}

// AimAt turns the player toward a world position.
func (g *Game) AimAt(target component.Vec3) {
	to := target.Sub(g.Player.Position)
	if to.LenXZ() > 0 {
		g.Player.Aim = to.HeadingXZ()
	}
}

// Fire shoots a hitscan ray along the player's aim. It reports whether a
// shot left the barrel and whether it hit an enemy.
func (g *Game) Fire() (fired, hit bool) {
	if g.gameOver || !g.Player.Alive {
		return false, false
	}
	now := g.Clock.Now()
	if g.hasShot && now-g.lastShot < g.Tuning.Player.FireCooldown.Duration {
		return false, false
	}
	g.lastShot = now
	g.hasShot = true

	origin := g.Player.Position
	dir := component.Vec3{X: math.Cos(g.Player.Aim), Z: math.Sin(g.Player.Aim)}
	reach := g.Arena.Raycast(origin, dir, g.Tuning.Player.ShotRange)

	target, dist := g.firstEnemyOnRay(origin, dir, reach)
	hit = target != nil

	g.WaveController.OnShotFired()
	if hit {
		g.WaveController.OnShotHit()
		g.EnemyManager.ResolveHit(target, g.Tuning.Player.ShotDamage)
		reach = dist
	}
	g.tracers = append(g.tracers, Tracer{From: origin, To: origin.Add(dir.Scale(reach)), Hit: hit, TTL: tracerLifetime})
	g.EventDispatcher.Dispatch(event.Event{Type: event.ShotFired, Data: event.ShotData{Hit: hit}})
	return true, hit
}

// firstEnemyOnRay returns the nearest live enemy whose hitbox the ray
// enters within reach, and the distance at which it does.
func (g *Game) firstEnemyOnRay(origin, dir component.Vec3, reach float64) (*component.Enemy, float64) {
	var best *component.Enemy
	bestDist := math.Inf(1)
	for _, e := range g.EnemyManager.Enemies() {
		to := e.Position.Sub(origin)
		along := to.X*dir.X + to.Z*dir.Z
		if along < 0 {
			continue
		}
		r := e.Def.HitboxRadius
		perp2 := to.X*to.X + to.Z*to.Z - along*along
		if perp2 > r*r {
			continue
		}
		entry := max(0, along-math.Sqrt(r*r-perp2))
		if entry > reach || entry >= bestDist {
			continue
		}
		best, bestDist = e, entry
	}
	return best, bestDist
}

// KillAll is a debug command that kills every live enemy.
func (g *Game) KillAll() int {
	n := g.EnemyManager.KillAll()
	logger.With("game").Debug("debug kill all", "killed", n)
	return n
}

// ForceMaxWave is a debug command that jumps to the first wave whose kill
// requirement reaches the cap.
func (g *Game) ForceMaxWave() int {
	limit := g.Tuning.Spawn.RequiredKillCap
	wave := 1
	for system.EnemiesRequired(wave, limit) < limit {
		wave++
	}
	g.WaveController.JumpToWave(wave)
	logger.With("game").Debug("debug jump to max wave", "wave", wave)
	return wave
}

// SpawnEnemy is a debug command that queues one enemy of type t.
func (g *Game) SpawnEnemy(t defs.EnemyType) bool {
	return g.EnemyManager.Enqueue(t)
}

// Restart throws away the current run and begins again at wave 1.
func (g *Game) Restart() {
	g.WaveController.Reset()
	g.Player.Reset()
	g.tracers = nil
	g.gameOver = false
	g.hasShot = false
	g.gameTime = 0
	logger.With("game").Info("game restarted")
}

func (g *Game) IsGameOver() bool { return g.gameOver }

func (g *Game) GetGameTime() float64 { return g.gameTime }

func (g *Game) Tracers() []Tracer { return g.tracers }

// Snapshot is the read-only HUD view of the wave controller.
func (g *Game) Snapshot() component.WaveSnapshot {
	return g.WaveController.GetCurrentState()
}

type gameEventListener struct {
	game *Game
}

func (l *gameEventListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.PlayerDamaged:
		if data, ok := e.Data.(event.DamageData); ok {
			logger.With("game").Debug("player hit", "amount", data.Amount, "source", string(data.Source), "health", l.game.Player.Health)
		}
	case event.WaveCompleted:
		if data, ok := e.Data.(event.WaveData); ok {
			logger.With("game").Info("wave cleared", "wave", data.Wave, "score", data.Score, "total", data.Total, "health", l.game.Player.Health)
		}
	}
}
