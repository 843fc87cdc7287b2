package system

import (
	"time"

	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/defs"
	"shooterx/internal/event"
	"shooterx/internal/types"
	"shooterx/internal/utils"
)

type fakeEnv struct {
	blocked func(component.Vec3) bool
}

func (e fakeEnv) CheckWallCollision(p component.Vec3) bool {
	if e.blocked == nil {
		return false
	}
	return e.blocked(p)
}

type fakePlayer struct {
	pos    component.Vec3
	damage float64
	hits   int
}

func (p *fakePlayer) Pos() component.Vec3 { return p.pos }

func (p *fakePlayer) TakeDamage(amount float64) bool {
	p.damage += amount
	p.hits++
	return false
}

// fixedRandom returns the same draw forever.
type fixedRandom struct {
	f float64
	i int
}

func (r fixedRandom) Float64() float64 { return r.f }

func (r fixedRandom) Intn(n int) int { return min(r.i, n-1) }

type hookRecorder struct {
	added   []types.EntityID
	removed []types.EntityID
}

func (h *hookRecorder) AddToWorld(e *component.Enemy)      { h.added = append(h.added, e.ID) }
func (h *hookRecorder) RemoveFromWorld(e *component.Enemy) { h.removed = append(h.removed, e.ID) }

type eventLog struct {
	events []event.Event
}

func (l *eventLog) OnEvent(e event.Event) { l.events = append(l.events, e) }

func (l *eventLog) count(t event.EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

type harness struct {
	clock      *utils.ManualClock
	rng        utils.Random
	player     *fakePlayer
	env        fakeEnv
	hooks      *hookRecorder
	dispatcher *event.Dispatcher
	catalog    defs.Catalog
	tuning     config.Tuning
	manager    *EnemyManager
	wave       *WaveController
}

type harnessOption func(*harness)

func withEnv(env fakeEnv) harnessOption { return func(h *harness) { h.env = env } }

func withRandom(r utils.Random) harnessOption { return func(h *harness) { h.rng = r } }

func withTuning(f func(*config.Tuning)) harnessOption { return func(h *harness) { f(&h.tuning) } }

func withCatalog(f func(defs.Catalog)) harnessOption { return func(h *harness) { f(h.catalog) } }

func newHarness(opts ...harnessOption) *harness {
	h := &harness{
		clock:      utils.NewManualClock(),
		rng:        utils.NewPRNGService(1234),
		player:     &fakePlayer{pos: component.Vec3{X: 1000}},
		hooks:      &hookRecorder{},
		dispatcher: event.NewDispatcher(),
		catalog:    defs.DefaultCatalog(),
		tuning:     config.DefaultTuning(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.manager = NewEnemyManager(EnemyManagerDeps{
		Catalog:     h.catalog,
		Tuning:      h.tuning,
		Environment: h.env,
		Player:      h.player,
		Clock:       h.clock,
		Rng:         h.rng,
		Dispatcher:  h.dispatcher,
		Hooks:       h.hooks,
	})
	h.wave = NewWaveController(h.manager, h.catalog, h.tuning, h.clock, h.rng, h.dispatcher)
	return h
}

// step advances the clock by dt and ticks manager then wave controller,
// the order the game loop uses.
func (h *harness) step(dt time.Duration) {
	h.clock.Advance(dt)
	h.manager.Update(dt.Seconds())
	h.wave.Update(dt.Seconds())
}

// drainQueue ticks until every queued enemy has spawned.
func (h *harness) drainQueue() {
	for i := 0; i < 1000 && h.manager.HasPendingSpawns(); i++ {
		h.clock.Advance(2 * time.Second)
		h.manager.Update(0)
	}
}
