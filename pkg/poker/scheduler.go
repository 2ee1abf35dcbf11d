package poker

import (
	"sync"
	"time"
)

// continuation is a deferred piece of engine work. The guard is
// re-evaluated under the table lock at execution time so a stale
// continuation (the phase moved on, a new hand started) is dropped
// instead of corrupting state.
type continuation struct {
	guard func() bool
	fn    func()
}

// scheduler tracks the timers that pace automated opponents and the
// all-in fast-forward. Timers are cosmetic pacing, not concurrency: the
// scheduled work still runs under the table lock.
type scheduler struct {
	mu     sync.Mutex
	timers map[int]*time.Timer
	nextID int
	closed bool
}

func newScheduler() *scheduler {
	return &scheduler{timers: make(map[int]*time.Timer)}
}

// after runs fn once the delay elapses, unless the scheduler is closed
// first.
func (s *scheduler) after(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	id := s.nextID
	s.nextID++
	s.timers[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}
		fn()
	})
}

// close cancels all pending timers; further after calls are no-ops.
func (s *scheduler) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
