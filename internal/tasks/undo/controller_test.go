package undo

import (
	"testing"
	"time"

	"todoapp/internal/tasks/data"
	"todoapp/internal/tasks/store"
	"todoapp/internal/tasks/view"
)

var created = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func seeded(t *testing.T, tasks ...data.Task) *store.Store {
	t.Helper()
	s := store.New()
	for _, task := range tasks {
		s.Add(task)
	}
	return s
}

func pendingTask(id string, minutes int) data.Task {
	return data.Task{
		ID:     id,
		Text:   "task " + id,
		Status: data.StatusPending,
		Time:   created.Add(time.Duration(minutes) * time.Minute),
	}
}

func visibleIDs(s *store.Store) []string {
	derived := view.Derive(s.Tasks(), s.Filter())
	out := make([]string, len(derived))
	for i, t := range derived {
		out[i] = t.ID
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewController_StartsIdle(t *testing.T) {
	c := NewController(store.New(), NewManualScheduler(), 0)
	if c.State() != Idle {
		t.Errorf("expected idle, got %s", c.State())
	}
	if c.Window() != DefaultWindow {
		t.Errorf("expected default window, got %s", c.Window())
	}
	if _, ok := c.Pending(); ok {
		t.Error("expected nothing pending")
	}
}

func TestRequestDelete_RemovesAndOpensWindow(t *testing.T) {
	t1 := pendingTask("1", 0)
	s := seeded(t, t1)
	sched := NewManualScheduler()
	c := NewController(s, sched, 5*time.Second)

	c.RequestDelete(t1)

	if s.Len() != 0 {
		t.Errorf("expected store to be empty, got %d", s.Len())
	}
	if c.State() != PendingUndo {
		t.Errorf("expected pending-undo, got %s", c.State())
	}
	got, ok := c.Pending()
	if !ok || got.ID != "1" {
		t.Errorf("expected task 1 pending, got %+v (%v)", got, ok)
	}
	if sched.Pending() != 1 {
		t.Errorf("expected one armed timer, got %d", sched.Pending())
	}
}

func TestDeleteThenUndo_RestoresView(t *testing.T) {
	s := seeded(t, pendingTask("1", 0), pendingTask("2", 5), pendingTask("3", 10))
	before := visibleIDs(s)
	sched := NewManualScheduler()
	c := NewController(s, sched, 5*time.Second)

	victim, _ := s.Get("2")
	c.RequestDelete(victim)
	if !c.RequestUndo() {
		t.Fatal("expected undo to succeed")
	}

	if after := visibleIDs(s); !sameIDs(before, after) {
		t.Errorf("expected %v after undo, got %v", before, after)
	}
	if c.State() != Idle {
		t.Errorf("expected idle, got %s", c.State())
	}
	if sched.Pending() != 0 {
		t.Errorf("undo must cancel the countdown, %d timers still armed", sched.Pending())
	}
}

func TestExpiry_MakesDeletionPermanent(t *testing.T) {
	t1 := pendingTask("1", 0)
	s := seeded(t, t1)
	sched := NewManualScheduler()
	c := NewController(s, sched, 5*time.Second)

	c.RequestDelete(t1)
	sched.Advance(4 * time.Second)
	if c.State() != PendingUndo {
		t.Fatal("window closed too early")
	}
	sched.Advance(time.Second)

	if c.State() != Idle {
		t.Errorf("expected idle after expiry, got %s", c.State())
	}
	if c.RequestUndo() {
		t.Error("undo after expiry must be a no-op")
	}
	if _, ok := s.Get("1"); ok {
		t.Error("task must stay deleted after expiry")
	}
}

func TestSecondDelete_SupersedesFirst(t *testing.T) {
	a := pendingTask("a", 0)
	b := pendingTask("b", 1)
	s := seeded(t, a, b)
	sched := NewManualScheduler()
	c := NewController(s, sched, 5*time.Second)

	c.RequestDelete(a)
	sched.Advance(3 * time.Second)
	c.RequestDelete(b)

	if sched.Pending() != 1 {
		t.Fatalf("expected the first countdown to be cancelled, %d armed", sched.Pending())
	}

	if !c.RequestUndo() {
		t.Fatal("expected undo to succeed")
	}
	if _, ok := s.Get("b"); !ok {
		t.Error("expected b to be restored")
	}
	if _, ok := s.Get("a"); ok {
		t.Error("a must never be restored once superseded")
	}
}

func TestSecondDelete_OldCountdownDoesNotClearNewPending(t *testing.T) {
	a := pendingTask("a", 0)
	b := pendingTask("b", 1)
	s := seeded(t, a, b)
	sched := NewManualScheduler()
	c := NewController(s, sched, 5*time.Second)

	c.RequestDelete(a)
	sched.Advance(3 * time.Second)
	c.RequestDelete(b)

	// a's original deadline passes here
	sched.Advance(2 * time.Second)
	if c.State() != PendingUndo {
		t.Fatal("a's countdown must not close b's undo window")
	}
	got, _ := c.Pending()
	if got.ID != "b" {
		t.Errorf("expected b pending, got %q", got.ID)
	}

	sched.Advance(3 * time.Second)
	if c.State() != Idle {
		t.Errorf("expected b's own countdown to expire, state %s", c.State())
	}
}

func TestExpire_IgnoresStaleGeneration(t *testing.T) {
	a := pendingTask("a", 0)
	b := pendingTask("b", 1)
	s := seeded(t, a, b)

	var fired []Expiry
	c := NewController(s, NewManualScheduler(), 5*time.Second)
	c.OnExpire(func(e Expiry) { fired = append(fired, e) })

	c.RequestDelete(a)
	stale := Expiry{Generation: c.Generation()}
	c.RequestDelete(b)

	if c.Expire(stale) {
		t.Error("stale expiry must be ignored")
	}
	if c.State() != PendingUndo {
		t.Errorf("expected pending-undo, got %s", c.State())
	}
	if !c.Expire(Expiry{Generation: c.Generation()}) {
		t.Error("current expiry must close the window")
	}
}

func TestExpiryInFlight_UndoWins(t *testing.T) {
	t1 := pendingTask("1", 0)
	s := seeded(t, t1)
	sched := NewManualScheduler()

	var inFlight []Expiry
	c := NewController(s, sched, 5*time.Second)
	c.OnExpire(func(e Expiry) { inFlight = append(inFlight, e) })

	c.RequestDelete(t1)
	sched.Advance(5 * time.Second)
	if len(inFlight) != 1 {
		t.Fatalf("expected one queued expiry, got %d", len(inFlight))
	}

	// undo is processed before the queued expiry reaches the controller
	if !c.RequestUndo() {
		t.Fatal("expected undo to win")
	}
	if c.Expire(inFlight[0]) {
		t.Error("expiry delivered after undo must be ignored")
	}
	if _, ok := s.Get("1"); !ok {
		t.Error("expected task to stay restored")
	}
}

func TestRequestUndo_IdleIsNoop(t *testing.T) {
	s := seeded(t, pendingTask("1", 0))
	c := NewController(s, NewManualScheduler(), time.Second)
	if c.RequestUndo() {
		t.Error("undo with nothing pending must return false")
	}
	if s.Len() != 1 {
		t.Errorf("store must be untouched, got %d tasks", s.Len())
	}
}

func TestRemaining(t *testing.T) {
	t1 := pendingTask("1", 0)
	c := NewController(seeded(t, t1), NewManualScheduler(), 5*time.Second)
	now := created
	c.SetClock(func() time.Time { return now })

	if c.Remaining(now) != 0 {
		t.Error("idle controller has nothing remaining")
	}
	c.RequestDelete(t1)
	if got := c.Remaining(now.Add(2 * time.Second)); got != 3*time.Second {
		t.Errorf("expected 3s remaining, got %s", got)
	}
	if got := c.Remaining(now.Add(time.Minute)); got != 0 {
		t.Errorf("expected 0 past the deadline, got %s", got)
	}
}

func TestScenario_FilterDoneMidPendingUndo(t *testing.T) {
	t1 := pendingTask("1", 0)
	t2 := pendingTask("2", 1)
	s := seeded(t, t1, t2)
	c := NewController(s, NewManualScheduler(), 5*time.Second)

	c.RequestDelete(t1)
	s.SetFilter(data.FilterDone)

	if got := visibleIDs(s); len(got) != 0 {
		t.Errorf("expected empty done view, got %v", got)
	}
	c.RequestUndo()
	if got := visibleIDs(s); len(got) != 0 {
		t.Errorf("expected empty done view after undo, got %v", got)
	}
}

func TestScenario_SingleTaskDeleteUndo(t *testing.T) {
	t1 := pendingTask("1", 0)
	s := seeded(t, t1)
	c := NewController(s, NewManualScheduler(), 5*time.Second)

	if got := visibleIDs(s); !sameIDs(got, []string{"1"}) {
		t.Fatalf("expected [1], got %v", got)
	}
	c.RequestDelete(t1)
	if s.Len() != 0 || len(visibleIDs(s)) != 0 {
		t.Fatal("expected empty store and view after delete")
	}
	if c.State() != PendingUndo {
		t.Fatal("expected undo affordance state")
	}
	c.RequestUndo()
	if got := visibleIDs(s); !sameIDs(got, []string{"1"}) {
		t.Errorf("expected [1] after undo, got %v", got)
	}
	if c.State() != Idle {
		t.Error("expected undo affordance hidden")
	}
}

func TestClockScheduler_StopPreventsCallback(t *testing.T) {
	fired := make(chan struct{}, 1)
	timer := ClockScheduler{}.AfterFunc(time.Hour, func() { fired <- struct{}{} })
	if !timer.Stop() {
		t.Fatal("expected Stop to cancel a pending timer")
	}
	if timer.Stop() {
		t.Error("second Stop should report already stopped")
	}
	select {
	case <-fired:
		t.Error("callback fired after Stop")
	default:
	}
}
