// Package burn schedules one-shot deferred actions keyed by message ID.
// It backs the ephemeral-message lifecycle: each keyed entry is the pending
// delete for one message, re-armed explicitly as cancel-then-schedule so a
// duplicate snapshot never races two deletes for the same message.
package burn

import (
	"sync"
	"time"
)

// Scheduler runs at most one pending action per key. Schedule on an
// existing key replaces the pending action; Cancel and CancelAll stop
// pending actions without running them. Actions already started cannot be
// stopped, matching the "deletes in flight are not cancellable" contract.
type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[string]*time.Timer)}
}

// Schedule arms fn to run after delay, replacing any pending action for
// the same key. A non-positive delay still goes through the timer with a
// zero wait so the single-pending-per-key guarantee holds for expired
// messages observed late.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.timers[key] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()
		fn()
	})
}

// Cancel stops the pending action for key, if any. Idempotent.
func (s *Scheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// CancelAll stops every pending action and refuses further scheduling.
// Called on session teardown: stop observing means stop scheduling.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
	s.closed = true
}

// Pending returns the number of armed actions.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
