package view

import "todoapp/internal/tasks/data"

// ChangeKind is the type of a list membership change
type ChangeKind int

const (
	Removed ChangeKind = iota
	Added
)

func (k ChangeKind) String() string {
	if k == Added {
		return "added"
	}
	return "removed"
}

// Change is a single row entering or leaving the rendered list.
// Index is the row position in prev for Removed and in next for Added.
type Change struct {
	Kind  ChangeKind
	Task  data.Task
	Index int
}

// Diff compares two derived views by task ID. Removals are listed first in
// prev order, then additions in next order. Rows present in both are not
// reported even if their content or position changed.
func Diff(prev, next []data.Task) []Change {
	inPrev := make(map[string]struct{}, len(prev))
	for _, t := range prev {
		inPrev[t.ID] = struct{}{}
	}
	inNext := make(map[string]struct{}, len(next))
	for _, t := range next {
		inNext[t.ID] = struct{}{}
	}

	var changes []Change
	for i, t := range prev {
		if _, ok := inNext[t.ID]; !ok {
			changes = append(changes, Change{Kind: Removed, Task: t, Index: i})
		}
	}
	for i, t := range next {
		if _, ok := inPrev[t.ID]; !ok {
			changes = append(changes, Change{Kind: Added, Task: t, Index: i})
		}
	}
	return changes
}

// AddedIDs returns the set of task IDs that entered the list
func AddedIDs(changes []Change) map[string]bool {
	added := make(map[string]bool)
	for _, c := range changes {
		if c.Kind == Added {
			added[c.Task.ID] = true
		}
	}
	return added
}
