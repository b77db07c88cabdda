package core

import (
	"sort"
	"time"
)

// Scheduler is a virtual clock with an ordered queue of timed callbacks.
// Nothing runs on its own: a driver calls Advance once per frame, and
// every callback due by the new time runs in (due time, insertion) order.
// Callbacks may schedule further callbacks; those run in the same Advance
// if they fall due before its end.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks []task
}

type task struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// After queues fn to run once d has elapsed. A non-positive d still waits
// for the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := task{at: s.now + d, seq: s.seq, fn: fn}

	i := sort.Search(len(s.tasks), func(i int) bool {
		o := s.tasks[i]
		return o.at > t.at || (o.at == t.at && o.seq > t.seq)
	})
	s.tasks = append(s.tasks, task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
}

// Advance moves the clock forward by dt, running every callback that
// falls due on the way.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now + dt
	for len(s.tasks) > 0 && s.tasks[0].at <= target {
		s.pop()
	}
	s.now = target
}

// RunNext jumps the clock to the earliest queued callback and runs it.
// It returns false when the queue is empty.
func (s *Scheduler) RunNext() bool {
	if len(s.tasks) == 0 {
		return false
	}
	s.pop()
	return true
}

// Drain runs callbacks until the queue is empty or limit callbacks have
// run. It returns the number run.
func (s *Scheduler) Drain(limit int) int {
	n := 0
	for n < limit && s.RunNext() {
		n++
	}
	return n
}

// Halt drops every queued callback.
func (s *Scheduler) Halt() {
	s.tasks = nil
}

func (s *Scheduler) pop() {
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	if t.at > s.now {
		s.now = t.at
	}
	t.fn()
}
