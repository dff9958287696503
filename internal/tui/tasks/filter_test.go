package tasks

import (
	"strings"
	"testing"

	"todoapp/internal/tasks/data"
)

func makeTasks() []data.Task {
	return []data.Task{
		task("1", 0, data.StatusPending),
		task("2", 1, data.StatusDone),
		task("3", 2, data.StatusPending),
		task("4", 3, data.StatusDone),
	}
}

func TestFilterAll_ShowsBothPendingAndDone(t *testing.T) {
	h := newHarness(t, makeTasks()...)
	h.press("1")
	if ids := h.ids(); len(ids) != 4 {
		t.Errorf("FilterAll: expected 4 tasks, got %v", ids)
	}
}

func TestFilterPending_ExcludesDone(t *testing.T) {
	h := newHarness(t, makeTasks()...)
	h.press("2")
	if h.store.Filter() != data.FilterPending {
		t.Fatalf("expected store filter pending, got %q", h.store.Filter())
	}
	for _, task := range h.model.DisplayTasks() {
		if task.IsDone() {
			t.Errorf("FilterPending: got done task %q", task.Text)
		}
	}
	if ids := h.ids(); !equalIDs(ids, "3", "1") {
		t.Errorf("FilterPending: unexpected rows %v", ids)
	}
}

func TestFilterDone_ExcludesPending(t *testing.T) {
	h := newHarness(t, makeTasks()...)
	h.press("3")
	if ids := h.ids(); !equalIDs(ids, "4", "2") {
		t.Errorf("FilterDone: unexpected rows %v", ids)
	}
}

func TestCycleFilter(t *testing.T) {
	h := newHarness(t, makeTasks()...)
	want := []data.Filter{data.FilterPending, data.FilterDone, data.FilterAll}
	for _, f := range want {
		h.press("f")
		if h.store.Filter() != f {
			t.Errorf("expected %q, got %q", f, h.store.Filter())
		}
	}
}

func TestFilterDone_NoDoneTasksMidPendingUndo(t *testing.T) {
	h := newHarness(t, task("1", 0, data.StatusPending), task("2", 1, data.StatusPending))
	h.press("d")
	h.press("3")
	if ids := h.ids(); len(ids) != 0 {
		t.Errorf("expected empty done view, got %v", ids)
	}
	if !strings.Contains(h.model.View(), EmptyPlaceholder) {
		t.Error("expected placeholder")
	}
	if !strings.Contains(h.model.View(), "Deleted") {
		t.Error("undo bar should stay visible under any filter")
	}
}

func TestToggle_LeavesFilteredView(t *testing.T) {
	h := newHarness(t, makeTasks()...)
	h.press("2", " ")
	if ids := h.ids(); !equalIDs(ids, "1") {
		t.Errorf("expected toggled task to leave pending view, got %v", ids)
	}
}

func TestInfoBar_ShowsCountsAndActiveFilter(t *testing.T) {
	h := newHarness(t, makeTasks()...)
	h.press("3")
	out := h.model.View()
	if !strings.Contains(out, "2 pending  2 done") {
		t.Errorf("expected counts in view:\n%s", out)
	}
	if !strings.Contains(out, "[3:Done]") {
		t.Errorf("expected active done tab:\n%s", out)
	}
}
