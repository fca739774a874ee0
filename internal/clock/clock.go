// Package clock abstracts wall-clock time and one-shot scheduling so that
// timer-driven components can be driven by a simulated clock in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled task that can be cancelled.
type Timer interface {
	// Stop cancels the task. It reports false if the task already ran or was stopped.
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Fake is a manually advanced clock. Tasks run synchronously inside Advance,
// in deadline order, on the caller's goroutine.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks []*fakeTimer
}

type fakeTimer struct {
	c     *Fake
	at    time.Time
	seq   uint64
	f     func()
	fired bool
	done  bool
}

func NewFake(start time.Time) *Fake { return &Fake{now: start} }

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{c: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.tasks = append(c.tasks, t)
	return t
}

// Pending returns the number of scheduled tasks that have not run or been stopped.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Advance moves the clock forward by d and runs every task that falls due.
// Tasks scheduled by a running task fire in the same call if they are due.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.Slice(c.tasks, func(i, j int) bool {
			if c.tasks[i].at.Equal(c.tasks[j].at) {
				return c.tasks[i].seq < c.tasks[j].seq
			}
			return c.tasks[i].at.Before(c.tasks[j].at)
		})
		if len(c.tasks) == 0 || c.tasks[0].at.After(target) {
			c.now = target
			c.mu.Unlock()
			return
		}
		t := c.tasks[0]
		c.tasks = c.tasks[1:]
		c.now = t.at
		t.fired = true
		c.mu.Unlock()

		t.f()
	}
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.fired || t.done {
		return false
	}
	t.done = true
	for i, x := range t.c.tasks {
		if x == t {
			t.c.tasks = append(t.c.tasks[:i], t.c.tasks[i+1:]...)
			break
		}
	}
	return true
}
