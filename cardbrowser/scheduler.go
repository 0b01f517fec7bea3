package cardbrowser

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks after a delay.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock schedules on the runtime timer.
type RealClock struct{}

// AfterFunc wraps time.AfterFunc.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Executor runs a task on the single logical thread that owns engine state.
type Executor interface {
	Do(fn func())
}

// ExecutorFunc adapts a function such as fyne.Do to Executor.
type ExecutorFunc func(fn func())

// Do runs fn through the wrapped function.
func (f ExecutorFunc) Do(fn func()) { f(fn) }

// Inline runs tasks immediately on the calling goroutine.
var Inline Executor = ExecutorFunc(func(fn func()) { fn() })

// Scheduler coalesces deferred work by key: scheduling a key again replaces
// the pending task, so only the most recent one ever runs.
type Scheduler struct {
	clock Clock
	exec  Executor

	mu      sync.Mutex
	pending map[string]*scheduled
	gen     uint64
	stopped bool
}

type scheduled struct {
	gen   uint64
	timer Timer
}

// NewScheduler builds a scheduler. Fired tasks run through exec.
func NewScheduler(clock Clock, exec Executor) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	if exec == nil {
		exec = Inline
	}
	return &Scheduler{clock: clock, exec: exec, pending: make(map[string]*scheduled)}
}

// Schedule runs fn after delay unless key is scheduled again or cancelled first.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if prev, ok := s.pending[key]; ok {
		prev.timer.Stop()
	}
	s.gen++
	gen := s.gen
	entry := &scheduled{gen: gen}
	s.pending[key] = entry
	entry.timer = s.clock.AfterFunc(delay, func() {
		s.exec.Do(func() {
			if !s.claim(key, gen) {
				return
			}
			fn()
		})
	})
}

// claim removes the pending entry if it still belongs to generation gen.
// A task replaced after its timer already fired loses here and never runs.
func (s *Scheduler) claim(key string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.pending[key]
	if !ok || entry.gen != gen {
		return false
	}
	delete(s.pending, key)
	return true
}

// Cancel drops the pending task for key, if any.
func (s *Scheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.pending[key]; ok {
		entry.timer.Stop()
		delete(s.pending, key)
	}
}

// Pending reports whether a task is waiting under key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Stop cancels every pending task and rejects new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for key, entry := range s.pending {
		entry.timer.Stop()
		delete(s.pending, key)
	}
}

// ManualClock is a logical clock for tests: callbacks fire only from Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
}

// NewManualClock returns a clock at time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// AfterFunc registers f to fire once the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, at: c.now + d, seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the elapsed logical time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves time forward, firing due callbacks in deadline order on the
// calling goroutine. Callbacks may schedule further timers.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()
	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
	}
	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

func (c *ManualClock) nextDue(target time.Duration) *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	c.timers = live
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at == c.timers[j].at {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at < c.timers[j].at
	})
	if len(c.timers) == 0 || c.timers[0].at > target {
		return nil
	}
	t := c.timers[0]
	c.timers = c.timers[1:]
	t.stopped = true
	if t.at > c.now {
		c.now = t.at
	}
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}
