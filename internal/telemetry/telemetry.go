// internal/telemetry/telemetry.go
package telemetry

import (
	"sync"
	"time"

	"shooterx/internal/event"
	"shooterx/internal/logger"

	"github.com/google/uuid"
)

const (
	flushInterval = 5 * time.Second
	bufferSize    = 256
)

// Batch is one flushed summary of the events seen since the last flush.
type Batch struct {
	RunID      string
	Spawns     int
	Kills      int
	Faults     int
	Shots      int
	Hits       int
	Damage     float64
	WavesDone  int
	LastWave   int
	TotalScore int
	Frames     int
	AvgDt      float64
	Dropped    int
}

func (b Batch) empty() bool {
	return b.Spawns == 0 && b.Kills == 0 && b.Faults == 0 && b.Shots == 0 && b.Damage == 0 && b.WavesDone == 0 && b.Frames == 0
}

// Sink aggregates bus events off the game thread and flushes a summary
// every interval. Sends never block the tick: a full buffer drops the event.
type Sink struct {
	RunID string

	in        chan event.Event
	frames    chan float64
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	dropped int
}

// NewSink starts a sink that logs its batches through the shared logger.
func NewSink() *Sink {
	log := logger.With("telemetry")
	return newSink(flushInterval, func(b Batch) {
		if b.empty() {
			return
		}
		log.Info("run summary",
			"run", b.RunID,
			"spawns", b.Spawns,
			"kills", b.Kills,
			"faults", b.Faults,
			"shots", b.Shots,
			"hits", b.Hits,
			"damage", b.Damage,
			"waves_done", b.WavesDone,
			"wave", b.LastWave,
			"total", b.TotalScore,
			"frames", b.Frames,
			"avg_dt", b.AvgDt,
			"dropped", b.Dropped,
		)
	})
}

func newSink(interval time.Duration, flush func(Batch)) *Sink {
	s := &Sink{
		RunID:  uuid.NewString(),
		in:     make(chan event.Event, bufferSize),
		frames: make(chan float64, bufferSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.loop(interval, flush)
	return s
}

// Subscribe registers the sink for every event type it summarizes.
func (s *Sink) Subscribe(d *event.Dispatcher) {
	for _, t := range []event.EventType{
		event.EnemySpawned,
		event.EnemyKilled,
		event.EnemyFaulted,
		event.WaveStarted,
		event.WaveCompleted,
		event.PlayerDamaged,
		event.ShotFired,
	} {
		d.Subscribe(t, s)
	}
}

// OnEvent implements event.Listener.
func (s *Sink) OnEvent(e event.Event) {
	select {
	case s.in <- e:
	default:
		s.drop()
	}
}

// Frame records one host frame duration.
func (s *Sink) Frame(deltaTime float64) {
	select {
	case s.frames <- deltaTime:
	default:
		s.drop()
	}
}

func (s *Sink) drop() {
	s.mu.Lock()
	s.dropped++
	s.mu.Unlock()
}

func (s *Sink) takeDropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.dropped
	s.dropped = 0
	return n
}

// Close stops the background loop after a final flush. Safe to call twice.
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
	<-s.done
}

func (s *Sink) loop(interval time.Duration, flush func(Batch)) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	batch := Batch{RunID: s.RunID}
	var dtSum float64
	emit := func() {
		if batch.Frames > 0 {
			batch.AvgDt = dtSum / float64(batch.Frames)
		}
		batch.Dropped = s.takeDropped()
		if flush != nil {
			flush(batch)
		}
		batch = Batch{RunID: s.RunID, LastWave: batch.LastWave, TotalScore: batch.TotalScore}
		dtSum = 0
	}

	for {
		select {
		case <-s.quit:
			s.drain(&batch, &dtSum)
			emit()
			return
		case e := <-s.in:
			batch.apply(e)
		case dt := <-s.frames:
			batch.Frames++
			dtSum += dt
		case <-ticker.C:
			emit()
		}
	}
}

// drain folds whatever is still buffered into the final batch.
func (s *Sink) drain(batch *Batch, dtSum *float64) {
	for {
		select {
		case e := <-s.in:
			batch.apply(e)
		case dt := <-s.frames:
			batch.Frames++
			*dtSum += dt
		default:
			return
		}
	}
}

func (b *Batch) apply(e event.Event) {
	switch e.Type {
	case event.EnemySpawned:
		b.Spawns++
	case event.EnemyKilled:
		b.Kills++
	case event.EnemyFaulted:
		b.Faults++
	case event.ShotFired:
		b.Shots++
		if data, ok := e.Data.(event.ShotData); ok && data.Hit {
			b.Hits++
		}
	case event.PlayerDamaged:
		if data, ok := e.Data.(event.DamageData); ok {
			b.Damage += data.Amount
		}
	case event.WaveStarted:
		if data, ok := e.Data.(event.WaveData); ok {
			b.LastWave = data.Wave
		}
	case event.WaveCompleted:
		b.WavesDone++
		if data, ok := e.Data.(event.WaveData); ok {
			b.LastWave = data.Wave
			b.TotalScore = data.Total
		}
	}
}
