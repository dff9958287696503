// Package undo implements delete with a timed undo window.
package undo

import (
	"time"

	"todoapp/internal/logs"
	"todoapp/internal/tasks/data"
)

// DefaultWindow is how long a deleted task can be restored
const DefaultWindow = 5 * time.Second

// State of the controller
type State int

const (
	Idle State = iota
	PendingUndo
)

func (s State) String() string {
	if s == PendingUndo {
		return "pending-undo"
	}
	return "idle"
}

// Mutator is the subset of the task store the controller drives
type Mutator interface {
	Add(task data.Task)
	Delete(id string)
}

// Expiry reports that the countdown armed for Generation ran out
type Expiry struct {
	Generation uint64
}

// Controller tracks at most one pending deletion. Its methods must be
// called from a single goroutine; timer callbacks are routed back through
// the expiry handler instead of touching state directly.
type Controller struct {
	store  Mutator
	sched  Scheduler
	window time.Duration
	now    func() time.Time

	onExpire func(Expiry)

	state    State
	pending  data.Task
	gen      uint64
	timer    Timer
	deadline time.Time
}

// NewController creates an idle controller. A non-positive window uses
// DefaultWindow. By default expiries are applied immediately in the timer
// callback, which is only correct for schedulers that fire on the caller's
// goroutine; use OnExpire to route them elsewhere.
func NewController(store Mutator, sched Scheduler, window time.Duration) *Controller {
	if window <= 0 {
		window = DefaultWindow
	}
	c := &Controller{
		store:  store,
		sched:  sched,
		window: window,
		now:    time.Now,
	}
	c.onExpire = func(e Expiry) { c.Expire(e) }
	return c
}

// OnExpire replaces the handler invoked from the timer callback
func (c *Controller) OnExpire(fn func(Expiry)) {
	c.onExpire = fn
}

// SetClock replaces the time source used for deadlines
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// RequestDelete removes task from the store and opens the undo window for
// it. Any deletion still pending is made permanent and its countdown
// cancelled.
func (c *Controller) RequestDelete(task data.Task) {
	if c.state == PendingUndo {
		logs.Logger.Printf("undo: %s superseded by %s", c.pending.ShortID(), task.ShortID())
		c.stopTimer()
	}

	c.store.Delete(task.ID)

	c.gen++
	gen := c.gen
	c.pending = task
	c.state = PendingUndo
	c.deadline = c.now().Add(c.window)
	notify := c.onExpire
	c.timer = c.sched.AfterFunc(c.window, func() {
		notify(Expiry{Generation: gen})
	})
	logs.Logger.Printf("undo: %s pending (gen=%d, window=%s)", task.ShortID(), gen, c.window)
}

// RequestUndo restores the pending task. It returns false, doing nothing,
// when no deletion is pending.
func (c *Controller) RequestUndo() bool {
	if c.state != PendingUndo {
		return false
	}
	c.stopTimer()
	task := c.pending
	c.clear()
	c.store.Add(task)
	logs.Logger.Printf("undo: %s restored", task.ShortID())
	return true
}

// Expire closes the undo window if e belongs to the current countdown.
// Stale expiries are ignored. It returns true if the state changed.
func (c *Controller) Expire(e Expiry) bool {
	if c.state != PendingUndo || e.Generation != c.gen {
		return false
	}
	logs.Logger.Printf("undo: %s expired, deletion is permanent", c.pending.ShortID())
	c.timer = nil
	c.clear()
	return true
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Pending returns the task awaiting undo, if any
func (c *Controller) Pending() (data.Task, bool) {
	if c.state != PendingUndo {
		return data.Task{}, false
	}
	return c.pending, true
}

// Generation identifies the most recent countdown
func (c *Controller) Generation() uint64 {
	return c.gen
}

// Window returns the undo window length
func (c *Controller) Window() time.Duration {
	return c.window
}

// Remaining returns how long the undo window stays open, or zero when idle
func (c *Controller) Remaining(now time.Time) time.Duration {
	if c.state != PendingUndo {
		return 0
	}
	left := c.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) clear() {
	c.pending = data.Task{}
	c.state = Idle
	c.deadline = time.Time{}
}
