package data

import "strings"

// Filter selects which tasks the derived view shows
type Filter string

const (
	FilterAll     Filter = "all"
	FilterPending Filter = Filter(StatusPending)
	FilterDone    Filter = Filter(StatusDone)
)

// Filters lists the closed set of filter values in cycle order
var Filters = []Filter{FilterAll, FilterPending, FilterDone}

// Matches reports whether a task passes the filter.
// A filter outside the closed set matches nothing.
func (f Filter) Matches(t Task) bool {
	return f == FilterAll || Status(f) == t.Status
}

// Valid reports whether f belongs to the closed set
func (f Filter) Valid() bool {
	for _, known := range Filters {
		if f == known {
			return true
		}
	}
	return false
}

// Next returns the filter after f in cycle order: all -> pending -> done -> all
func (f Filter) Next() Filter {
	for i, known := range Filters {
		if f == known {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label returns the display name of the filter
func (f Filter) Label() string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// ParseFilter normalizes user input into a Filter. Unknown values are
// returned as-is so the caller decides whether to reject them.
func ParseFilter(s string) Filter {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return FilterAll
	case "incomplete", "todo":
		return FilterPending
	case "complete", "completed":
		return FilterDone
	}
	return Filter(s)
}

// TaskCount returns the number of pending and done tasks
func TaskCount(tasks []Task) (int, int) {
	todoCount := 0
	doneCount := 0
	for _, task := range tasks {
		if task.IsDone() {
			doneCount++
		} else {
			todoCount++
		}
	}
	return todoCount, doneCount
}
