package schedule

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled task handle.
type Timer interface {
	// Stop cancels the task. It reports false if the task already ran or
	// was already stopped.
	Stop() bool
}

// Clock schedules tasks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock uses time.AfterFunc.
func RealClock() Clock {
	return realClock{}
}

// ManualClock is a Clock driven by Advance, for deterministic tests.
// Tasks run synchronously inside Advance.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, at: c.now + d, seq: c.seq, f: f}
	c.tasks = append(c.tasks, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now is the elapsed manual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending is the number of armed tasks.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves time forward by d and runs every task that comes due, in
// deadline order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		c.now = next.at
		c.mu.Unlock()

		next.f()
	}
}

func (c *ManualClock) nextDue(target time.Duration) *manualTimer {
	live := c.tasks[:0]
	for _, t := range c.tasks {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.tasks = live
	sort.Slice(c.tasks, func(i, j int) bool {
		if c.tasks[i].at != c.tasks[j].at {
			return c.tasks[i].at < c.tasks[j].at
		}
		return c.tasks[i].seq < c.tasks[j].seq
	})
	if len(c.tasks) == 0 || c.tasks[0].at > target {
		return nil
	}
	return c.tasks[0]
}
