package telemetry

import (
	"testing"
	"time"

	"shooterx/internal/defs"
	"shooterx/internal/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkBatchesBusEvents(t *testing.T) {
	out := make(chan Batch, 16)
	s := newSink(10*time.Millisecond, func(b Batch) { out <- b })
	defer s.Close()

	d := event.NewDispatcher()
	s.Subscribe(d)
	d.Dispatch(event.Event{Type: event.EnemySpawned, Data: event.EnemyData{ID: 1, Type: defs.EnemyGrunt}})
	d.Dispatch(event.Event{Type: event.EnemyKilled, Data: event.EnemyData{ID: 1, Type: defs.EnemyGrunt}})
	d.Dispatch(event.Event{Type: event.EnemyFaulted, Data: event.EnemyData{ID: 2, Type: defs.EnemyGrunt}})
	d.Dispatch(event.Event{Type: event.ShotFired, Data: event.ShotData{Hit: true}})
	d.Dispatch(event.Event{Type: event.ShotFired, Data: event.ShotData{Hit: false}})
	d.Dispatch(event.Event{Type: event.PlayerDamaged, Data: event.DamageData{Amount: 10, Remaining: 90}})
	d.Dispatch(event.Event{Type: event.WaveCompleted, Data: event.WaveData{Wave: 1, Total: 540}})
	s.Frame(0.016)
	s.Frame(0.018)

	deadline := time.After(time.Second)
	var got Batch
	for {
		select {
		case b := <-out:
			got.Spawns += b.Spawns
			got.Kills += b.Kills
			got.Faults += b.Faults
			got.Shots += b.Shots
			got.Hits += b.Hits
			got.Damage += b.Damage
			got.WavesDone += b.WavesDone
			got.Frames += b.Frames
			if b.TotalScore != 0 {
				got.TotalScore = b.TotalScore
			}
			if got.WavesDone == 1 && got.Frames == 2 && got.Shots == 2 {
				assert.Equal(t, 1, got.Spawns)
				assert.Equal(t, 1, got.Kills)
				assert.Equal(t, 1, got.Faults)
				assert.Equal(t, 1, got.Hits)
				assert.InDelta(t, 10, got.Damage, 1e-9)
				assert.Equal(t, 540, got.TotalScore)
				assert.Equal(t, s.RunID, b.RunID)
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for telemetry batch, have %+v", got)
		}
	}
}

func TestSinkRunIDIsUUID(t *testing.T) {
	s := newSink(time.Hour, nil)
	defer s.Close()
	_, err := uuid.Parse(s.RunID)
	require.NoError(t, err)
}

func TestSinkCloseFlushesAndIsIdempotent(t *testing.T) {
	out := make(chan Batch, 4)
	s := newSink(time.Hour, func(b Batch) { out <- b })
	s.OnEvent(event.Event{Type: event.EnemyKilled})

	done := make(chan struct{})
	go func() {
		s.Close()
		s.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("sink close blocked")
	}
	require.Len(t, out, 1)
	assert.Equal(t, 1, (<-out).Kills)
}

func TestSinkNeverBlocksTheCaller(t *testing.T) {
	block := make(chan struct{})
	s := newSink(time.Millisecond, func(Batch) { <-block })

	finished := make(chan struct{})
	go func() {
		for range bufferSize * 4 {
			s.OnEvent(event.Event{Type: event.EnemySpawned})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("OnEvent blocked on a full buffer")
	}
	close(block)
	s.Close()
}
