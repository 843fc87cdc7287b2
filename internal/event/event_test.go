package event

import (
	"testing"

	"shooterx/internal/defs"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	got []Event
}

func (r *recorder) OnEvent(e Event) { r.got = append(r.got, e) }

func TestDispatchToSubscribers(t *testing.T) {
	d := NewDispatcher()
	a, b := &recorder{}, &recorder{}
	d.Subscribe(EnemyKilled, a)
	d.Subscribe(EnemyKilled, b)
	d.Subscribe(WaveStarted, b)

	d.Dispatch(Event{Type: EnemyKilled, Data: EnemyData{Type: defs.EnemyGrunt}})
	d.Dispatch(Event{Type: WaveStarted})
	d.Dispatch(Event{Type: ShotFired})

	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 2)
	assert.Equal(t, defs.EnemyGrunt, a.got[0].Data.(EnemyData).Type)
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	a, b := &recorder{}, &recorder{}
	d.Subscribe(EnemyKilled, a)
	d.Subscribe(EnemyKilled, b)
	d.Unsubscribe(EnemyKilled, a)
	d.Dispatch(Event{Type: EnemyKilled})
	assert.Empty(t, a.got)
	assert.Len(t, b.got, 1)
}

func TestSubscribeDuringDispatchIsNotDeliveredTwice(t *testing.T) {
	d := NewDispatcher()
	late := &recorder{}
	calls := 0
	d.Subscribe(EnemyKilled, ListenerFunc(func(Event) {
		calls++
		d.Subscribe(EnemyKilled, late)
	}))
	d.Dispatch(Event{Type: EnemyKilled})
	assert.Equal(t, 1, calls)
	assert.Empty(t, late.got)

	d.Dispatch(Event{Type: EnemyKilled})
	assert.Len(t, late.got, 1)
}
