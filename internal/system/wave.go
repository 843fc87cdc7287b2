// internal/system/wave.go
package system

import (
	"math"
	"time"

	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/defs"
	"shooterx/internal/event"
	"shooterx/internal/logger"
	"shooterx/internal/utils"
)

const (
	baseWaveSize     = 5
	waveGrowth       = 1.2
	baseExpectedSecs = 30.0
	expectedPerWave  = 5.0
	minAccuracyBonus = 0.5
	maxAccuracyBonus = 1.5
	minTimeBonus     = 1.0
	maxTimeBonus     = 1.2
	timeBonusFalloff = 0.2
)

// EnemiesRequired is min(floor(5 × 1.2^(wave−1)), limit).
func EnemiesRequired(wave, limit int) int {
	if wave < 1 {
		wave = 1
	}
	n := int(math.Floor(baseWaveSize * math.Pow(waveGrowth, float64(wave-1))))
	return min(n, limit)
}

// AccuracyBonus is clamp(0.5 + hits/fired, 0.5, 1.5). With no shots fired
// it is 1.0, matching the 100% accuracy the HUD shows.
func AccuracyBonus(fired, hit int) float64 {
	if fired <= 0 {
		return 1.0
	}
	return utils.Clamp(minAccuracyBonus+float64(hit)/float64(fired), minAccuracyBonus, maxAccuracyBonus)
}

// TimeBonus decays from 1.2 to 1.0 as the wave runs past its expected
// duration of 30 + 5×wave seconds.
func TimeBonus(elapsed time.Duration, wave int) float64 {
	expected := baseExpectedSecs + float64(wave)*expectedPerWave
	return utils.Clamp(maxTimeBonus-(elapsed.Seconds()/expected)*timeBonusFalloff, minTimeBonus, maxTimeBonus)
}

// WaveController runs the WAITING → ACTIVE → COMPLETE cycle, sizes and
// enqueues each wave and keeps the score.
type WaveController struct {
	manager    *EnemyManager
	catalog    defs.Catalog
	tuning     config.Tuning
	clock      utils.Clock
	rng        utils.Random
	dispatcher *event.Dispatcher
	scheduler  *utils.TaskScheduler

	wave      int
	state     component.WavePhase
	required  int
	kills     int
	score     component.ScoreRecord
	startedAt time.Duration
	roster    []defs.EnemyType

	restartTask utils.TaskID
}

func NewWaveController(manager *EnemyManager, catalog defs.Catalog, tuning config.Tuning, clock utils.Clock, rng utils.Random, dispatcher *event.Dispatcher) *WaveController {
	w := &WaveController{
		manager:    manager,
		catalog:    catalog,
		tuning:     tuning,
		clock:      clock,
		rng:        rng,
		dispatcher: dispatcher,
		scheduler:  utils.NewTaskScheduler(clock),
	}
	w.Reset()
	dispatcher.Subscribe(event.EnemyKilled, w)
	dispatcher.Subscribe(event.EnemyFaulted, w)
	return w
}

// OnEvent counts kills and faults reported by the enemy manager.
func (w *WaveController) OnEvent(e event.Event) {
	data, ok := e.Data.(event.EnemyData)
	if !ok {
		return
	}
	switch e.Type {
	case event.EnemyKilled:
		w.OnEnemyKill(data.Type)
	case event.EnemyFaulted:
		w.OnEnemyFaulted(data.Type)
	}
}

// ComposeRoster builds the shuffled list of enemy tokens for a wave.
// Elite waves carry exactly one elite token and one fewer filler.
func (w *WaveController) ComposeRoster(wave int) []defs.EnemyType {
	fillers := EnemiesRequired(wave, w.tuning.Spawn.RequiredKillCap)

	var roster []defs.EnemyType
	if elite, ok := defs.EliteForWave(wave); ok && w.catalog.Has(elite) {
		roster = append(roster, elite)
		fillers = max(fillers-1, 1)
	}

	weights := w.availableWeights(wave)
	for range fillers {
		roster = append(roster, utils.ChooseWeighted(w.rng, weights))
	}

	utils.Shuffle(w.rng, roster)
	return roster
}

// availableWeights drops rows for types the catalog does not carry.
func (w *WaveController) availableWeights(wave int) []defs.WeightedEntry {
	var out []defs.WeightedEntry
	for _, entry := range defs.WeightsForWave(wave) {
		if w.catalog.Has(entry.Type) {
			out = append(out, entry)
		}
	}
	if len(out) == 0 {
		for _, t := range w.catalog.Types() {
			if def := w.catalog[t]; !def.Elite {
				out = append(out, defs.WeightedEntry{Type: t, Weight: 1})
			}
		}
	}
	return out
}

// StartWave sizes the current wave and hands its roster to the enemy
// manager. It only acts from WAITING.
func (w *WaveController) StartWave() bool {
	if w.state != component.WaveWaiting {
		logger.With("wave").Debug("start ignored", "wave", w.wave, "state", w.state.String())
		return false
	}

	w.roster = w.ComposeRoster(w.wave)
	w.manager.SetWaveNumber(w.wave)
	enqueued := 0
	for _, t := range w.roster {
		if w.manager.Enqueue(t) {
			enqueued++
		}
	}

	w.required = enqueued
	w.kills = 0
	w.score.Current = 0
	w.score.ShotsFired = 0
	w.score.ShotsHit = 0
	w.startedAt = w.clock.Now()
	w.state = component.WaveActive
	w.recomputeMultiplier()

	logger.With("wave").Info("wave started", "wave", w.wave, "required", w.required)
	w.dispatcher.Dispatch(event.Event{
		Type: event.WaveStarted,
		Data: event.WaveData{Wave: w.wave, Required: w.required, Total: int(math.Round(w.score.Total))},
	})
	return true
}

// Update fires a due wave restart, then, while ACTIVE, refreshes the
// multiplier and completes the wave once every required kill landed and
// nothing is left to spawn.
func (w *WaveController) Update(deltaTime float64) {
	w.scheduler.Poll()

	if w.state != component.WaveActive {
		return
	}
	w.recomputeMultiplier()
	if w.kills >= w.required && !w.manager.HasPendingSpawns() {
		w.CompleteWave()
	}
}

func (w *WaveController) recomputeMultiplier() {
	w.score.AccuracyBonus = AccuracyBonus(w.score.ShotsFired, w.score.ShotsHit)
	w.score.TimeBonus = TimeBonus(w.clock.Now()-w.startedAt, w.wave)
	w.score.Multiplier = w.score.AccuracyBonus * w.score.TimeBonus
}

// OnEnemyKill counts a kill and awards round(points × multiplier).
func (w *WaveController) OnEnemyKill(t defs.EnemyType) component.WaveSnapshot {
	if w.state != component.WaveActive {
		return w.GetCurrentState()
	}
	w.kills++
	w.recomputeMultiplier()

	def, err := w.catalog.Lookup(t)
	if err != nil {
		logger.With("wave").Warn("kill of unknown type scores nothing", "type", string(t))
		return w.GetCurrentState()
	}
	w.score.Current += math.Round(float64(def.Points) * w.score.Multiplier)
	return w.GetCurrentState()
}

// OnEnemyFaulted drops one enemy from the wave's requirement. The enemy
// can no longer be killed, so waiting on it would hold the wave open forever.
func (w *WaveController) OnEnemyFaulted(t defs.EnemyType) component.WaveSnapshot {
	if w.state != component.WaveActive {
		return w.GetCurrentState()
	}
	if w.required > w.kills {
		w.required--
	}
	logger.With("wave").Warn("enemy faulted; requirement lowered", "wave", w.wave, "type", string(t), "required", w.required)
	return w.GetCurrentState()
}

func (w *WaveController) OnShotFired() {
	if w.state == component.WaveActive {
		w.score.ShotsFired++
	}
}

func (w *WaveController) OnShotHit() {
	if w.state == component.WaveActive {
		w.score.ShotsHit++
	}
}

// CompleteWave folds the wave score into the total, moves to the next
// wave number and schedules the next wave after the restart delay.
func (w *WaveController) CompleteWave() {
	if w.state != component.WaveActive {
		return
	}
	w.state = component.WaveComplete
	w.score.Total += w.score.Current
	finished := w.wave
	w.wave++

	logger.With("wave").Info("wave complete", "wave", finished, "score", w.score.Current, "total", w.score.Total)
	w.dispatcher.Dispatch(event.Event{
		Type: event.WaveCompleted,
		Data: event.WaveData{
			Wave:     finished,
			Required: w.required,
			Score:    int(math.Round(w.score.Current)),
			Total:    int(math.Round(w.score.Total)),
		},
	})

	w.scheduler.Cancel(w.restartTask)
	w.restartTask = w.scheduler.After(w.tuning.Wave.RestartDelay.Duration, w.restart)
}

func (w *WaveController) restart() {
	w.restartTask = 0
	if w.state != component.WaveComplete {
		return
	}
	w.state = component.WaveWaiting
	w.StartWave()
}

// RestartPending reports whether an automatic next-wave start is scheduled.
func (w *WaveController) RestartPending() bool {
	return w.restartTask != 0
}

// GetCurrentState returns a read-only snapshot for the UI. TotalScore
// includes the running wave's score while it is ACTIVE.
func (w *WaveController) GetCurrentState() component.WaveSnapshot {
	total := w.score.Total
	if w.state == component.WaveActive {
		total += w.score.Current
	}
	accuracy := 100.0
	if w.score.ShotsFired > 0 {
		accuracy = float64(w.score.ShotsHit) / float64(w.score.ShotsFired) * 100
	}
	return component.WaveSnapshot{
		Wave:          w.wave,
		State:         w.state,
		Kills:         w.kills,
		Required:      w.required,
		Score:         int(math.Round(w.score.Current)),
		TotalScore:    int(math.Round(total)),
		Multiplier:    w.score.Multiplier,
		Accuracy:      accuracy,
		AccuracyBonus: w.score.AccuracyBonus,
		TimeBonus:     w.score.TimeBonus,
		ShotsFired:    w.score.ShotsFired,
		ShotsHit:      w.score.ShotsHit,
	}
}

// Roster returns the composition of the most recently started wave.
func (w *WaveController) Roster() []defs.EnemyType {
	return append([]defs.EnemyType(nil), w.roster...)
}

// JumpToWave abandons the current wave and starts wave n from scratch,
// keeping the accumulated total.
func (w *WaveController) JumpToWave(n int) bool {
	if n < 1 {
		return false
	}
	w.scheduler.CancelAll()
	w.restartTask = 0
	w.manager.Reset()
	w.wave = n
	w.state = component.WaveWaiting
	w.kills = 0
	w.required = 0
	return w.StartWave()
}

// Reset returns to wave 1, WAITING, with a zeroed score. A pending
// automatic restart is cancelled and the enemy manager is cleared.
func (w *WaveController) Reset() {
	w.scheduler.CancelAll()
	w.restartTask = 0
	w.manager.Reset()
	w.wave = 1
	w.state = component.WaveWaiting
	w.required = 0
	w.kills = 0
	w.roster = nil
	w.startedAt = w.clock.Now()
	w.score = component.ScoreRecord{
		Multiplier:    1,
		TimeBonus:     1,
		AccuracyBonus: 1,
	}
}
