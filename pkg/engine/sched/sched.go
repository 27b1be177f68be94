// Package sched provides cancellable delayed tasks for game events that
// fire after a delay (floor auto-advance, dialog auto-close). Expired
// tasks never run on the timer goroutine: they are posted to a due
// queue, and the owning loop drains the queue between handling input and
// rendering. Game state therefore has a single mutator, and a cancel
// that lands after the delay expired but before the task ran still wins.
package sched

import (
	"sync"
	"time"
)

// Handle identifies a scheduled task and allows cancelling it.
type Handle struct {
	mu       sync.Mutex
	timer    *time.Timer
	done     bool
	canceled bool
}

// Cancel stops the task. A task that already expired but has not been
// run from the due queue yet is also stopped. Returns true unless the
// task already ran or was already cancelled.
func (h *Handle) Cancel() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done || h.canceled {
		return false
	}
	h.canceled = true
	if h.timer != nil {
		h.timer.Stop()
	}
	return true
}

// Fired reports whether the task has already run.
func (h *Handle) Fired() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

// start marks the task as running. Returns false when the task was
// cancelled, including cancels that landed after expiry.
func (h *Handle) start() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done || h.canceled {
		return false
	}
	h.done = true
	return true
}

// Task is an expired scheduled task awaiting execution.
type Task struct {
	h  *Handle
	fn func()
}

// Run executes the task on the caller's goroutine. Returns false when
// the task was cancelled between expiring and being drained.
func (t Task) Run() bool {
	if !t.h.start() {
		return false
	}
	t.fn()
	return true
}

// dueBuffer bounds the queue; a full queue blocks the timer goroutine
// until the owner drains, never drops.
const dueBuffer = 16

// Scheduler runs delayed tasks and tracks their handles.
type Scheduler struct {
	mu      sync.Mutex
	pending map[*Handle]struct{}
	due     chan Task
}

// New creates an empty scheduler
func New() *Scheduler {
	return &Scheduler{
		pending: make(map[*Handle]struct{}),
		due:     make(chan Task, dueBuffer),
	}
}

// After schedules fn to run once the delay expires and the owner drains
// the due queue. Returns a cancellable handle.
func (s *Scheduler) After(d time.Duration, fn func()) *Handle {
	h := &Handle{}
	s.mu.Lock()
	s.pending[h] = struct{}{}
	s.mu.Unlock()

	h.timer = time.AfterFunc(d, func() {
		s.forget(h)
		s.due <- Task{h: h, fn: fn}
	})
	return h
}

// Due exposes the expired-task queue for select loops.
func (s *Scheduler) Due() <-chan Task {
	return s.due
}

// RunDue executes every expired task without blocking, skipping
// cancelled ones. Returns the number of tasks that actually ran.
func (s *Scheduler) RunDue() int {
	ran := 0
	for {
		select {
		case t := <-s.due:
			if t.Run() {
				ran++
			}
		default:
			return ran
		}
	}
}

// CancelAll cancels every pending task. Used when the floor changes so no
// timer from the previous floor can fire into the new one.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	handles := make([]*Handle, 0, len(s.pending))
	for h := range s.pending {
		handles = append(handles, h)
	}
	s.pending = make(map[*Handle]struct{})
	s.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
}

func (s *Scheduler) forget(h *Handle) {
	s.mu.Lock()
	delete(s.pending, h)
	s.mu.Unlock()
}
