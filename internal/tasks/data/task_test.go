package data

import (
	"testing"
	"time"
)

func TestNewTask_AssignsUniqueIDs(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	a := NewTask("Buy groceries", now)
	b := NewTask("Buy groceries", now)
	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both were %q", a.ID)
	}
	if a.Status != StatusPending {
		t.Errorf("expected pending, got %q", a.Status)
	}
	if !a.Time.Equal(now) {
		t.Errorf("expected time %v, got %v", now, a.Time)
	}
}

func TestNewTask_TrimsText(t *testing.T) {
	task := NewTask("  Call plumber \n", time.Now())
	if task.Text != "Call plumber" {
		t.Errorf("expected 'Call plumber', got %q", task.Text)
	}
}

func TestToggled(t *testing.T) {
	task := Task{ID: "1", Status: StatusPending}
	done := task.Toggled()
	if done.Status != StatusDone {
		t.Errorf("expected done, got %q", done.Status)
	}
	if task.Status != StatusPending {
		t.Error("Toggled must not modify the receiver")
	}
	if done.Toggled().Status != StatusPending {
		t.Error("expected toggling twice to return to pending")
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"":           StatusPending,
		"pending":    StatusPending,
		"Done":       StatusDone,
		"complete":   StatusDone,
		"incomplete": StatusPending,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseStatus(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseStatus("archived"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestFilterMatches(t *testing.T) {
	pending := Task{ID: "1", Status: StatusPending}
	done := Task{ID: "2", Status: StatusDone}

	if !FilterAll.Matches(pending) || !FilterAll.Matches(done) {
		t.Error("all should match every task")
	}
	if !FilterPending.Matches(pending) || FilterPending.Matches(done) {
		t.Error("pending should match only pending tasks")
	}
	if FilterDone.Matches(pending) || !FilterDone.Matches(done) {
		t.Error("done should match only done tasks")
	}
	if Filter("archived").Matches(pending) || Filter("archived").Matches(done) {
		t.Error("unknown filter should match nothing")
	}
}

func TestFilterNext_Cycles(t *testing.T) {
	f := FilterAll
	seen := []Filter{f}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	want := []Filter{FilterAll, FilterPending, FilterDone, FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle step %d: got %q, want %q", i, seen[i], want[i])
		}
	}
	if Filter("bogus").Next() != FilterAll {
		t.Error("unknown filter should cycle back to all")
	}
}

func TestParseFilter(t *testing.T) {
	if ParseFilter("") != FilterAll {
		t.Error("empty filter should be all")
	}
	if ParseFilter(" DONE ") != FilterDone {
		t.Error("expected case-insensitive done")
	}
	if ParseFilter("incomplete") != FilterPending {
		t.Error("expected incomplete alias for pending")
	}
	if f := ParseFilter("archived"); f.Valid() {
		t.Errorf("expected %q to be invalid", f)
	}
}

func TestTaskCount(t *testing.T) {
	tasks := []Task{
		{ID: "1", Status: StatusPending},
		{ID: "2", Status: StatusDone},
		{ID: "3", Status: StatusPending},
	}
	todo, done := TaskCount(tasks)
	if todo != 2 || done != 1 {
		t.Errorf("expected 2 pending / 1 done, got %d / %d", todo, done)
	}
}
