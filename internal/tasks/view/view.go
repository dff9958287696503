// Package view derives the ordered, filtered task sequence the UI renders.
// Everything here is a pure function of its arguments.
package view

import (
	"sort"

	"github.com/sahilm/fuzzy"
	"todoapp/internal/tasks/data"
)

// Derive sorts tasks by creation time, most recent first, and keeps those
// matching filter. Ties keep their source order. The input is not modified.
func Derive(tasks []data.Task, filter data.Filter) []data.Task {
	sorted := make([]data.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.After(sorted[j].Time)
	})

	out := make([]data.Task, 0, len(sorted))
	for _, t := range sorted {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Search keeps the tasks whose text fuzzy-matches query, in their original
// order. An empty query returns the input unchanged.
func Search(tasks []data.Task, query string) []data.Task {
	if query == "" {
		return tasks
	}

	texts := make([]string, len(tasks))
	for i, t := range tasks {
		texts[i] = t.Text
	}
	matches := fuzzy.Find(query, texts)

	indexes := make([]int, len(matches))
	for i, match := range matches {
		indexes[i] = match.Index
	}
	sort.Ints(indexes)

	out := make([]data.Task, len(indexes))
	for i, idx := range indexes {
		out[i] = tasks[idx]
	}
	return out
}
