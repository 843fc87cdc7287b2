// internal/utils/scheduler.go
package utils

import (
	"sort"
	"time"
)

// TaskID names a scheduled task. The zero value never names a live task.
type TaskID uint64

type scheduledTask struct {
	id  TaskID
	due time.Duration
	fn  func()
}

// TaskScheduler holds deferred callbacks that fire from the owner's tick
// once the clock passes their due time. Nothing runs on another goroutine.
type TaskScheduler struct {
	clock  Clock
	nextID TaskID
	tasks  []scheduledTask
}

func NewTaskScheduler(clock Clock) *TaskScheduler {
	return &TaskScheduler{clock: clock}
}

// After schedules fn to run once delay has elapsed.
func (s *TaskScheduler) After(delay time.Duration, fn func()) TaskID {
	s.nextID++
	s.tasks = append(s.tasks, scheduledTask{
		id:  s.nextID,
		due: s.clock.Now() + delay,
		fn:  fn,
	})
	return s.nextID
}

// Cancel drops a pending task. It reports whether the task was still pending.
func (s *TaskScheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending task.
func (s *TaskScheduler) CancelAll() {
	s.tasks = nil
}

// Pending returns the number of tasks not yet fired.
func (s *TaskScheduler) Pending() int {
	return len(s.tasks)
}

// Poll runs every task whose due time has passed, in due order.
// Due tasks are detached before any of them runs, so callbacks may
// schedule or cancel freely.
func (s *TaskScheduler) Poll() int {
	if len(s.tasks) == 0 {
		return 0
	}
	now := s.clock.Now()

	var due []scheduledTask
	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		if t.due <= now {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	s.tasks = remaining

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, t := range due {
		t.fn()
	}
	return len(due)
}
