package store

import (
	"todoapp/internal/logs"
	"todoapp/internal/tasks/data"
)

// EventKind identifies the mutation an Event describes
type EventKind int

const (
	EventAdded EventKind = iota
	EventUpdated
	EventDeleted
	EventFilterChanged
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventUpdated:
		return "updated"
	case EventDeleted:
		return "deleted"
	case EventFilterChanged:
		return "filter"
	}
	return "unknown"
}

// Event is delivered to subscribers after every effective mutation
type Event struct {
	Kind   EventKind
	Task   data.Task
	Filter data.Filter
}

// Store holds the task collection and the filter selection.
// It is not safe for concurrent use; all calls happen on the UI loop.
type Store struct {
	order  []string
	tasks  map[string]data.Task
	filter data.Filter

	subs   map[int]func(Event)
	nextID int
}

// New creates an empty store with the all filter selected
func New() *Store {
	return &Store{
		tasks:  make(map[string]data.Task),
		filter: data.FilterAll,
		subs:   make(map[int]func(Event)),
	}
}

// Add inserts a task keyed by its ID. An existing task with the same ID is
// overwritten in place and keeps its insertion position.
func (s *Store) Add(task data.Task) {
	kind := EventAdded
	if _, exists := s.tasks[task.ID]; exists {
		kind = EventUpdated
	} else {
		s.order = append(s.order, task.ID)
	}
	s.tasks[task.ID] = task
	s.notify(Event{Kind: kind, Task: task, Filter: s.filter})
}

// Delete removes the task with the given ID. Absent IDs are ignored.
func (s *Store) Delete(id string) {
	task, exists := s.tasks[id]
	if !exists {
		return
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.notify(Event{Kind: EventDeleted, Task: task, Filter: s.filter})
}

// Toggle flips the status of the task with the given ID.
// Returns false when no such task exists.
func (s *Store) Toggle(id string) (data.Task, bool) {
	task, exists := s.tasks[id]
	if !exists {
		return data.Task{}, false
	}
	task = task.Toggled()
	s.Add(task)
	return task, true
}

// SetFilter replaces the filter selection. Values are not validated.
func (s *Store) SetFilter(f data.Filter) {
	if f == s.filter {
		return
	}
	s.filter = f
	s.notify(Event{Kind: EventFilterChanged, Filter: f})
}

// Filter returns the current filter selection
func (s *Store) Filter() data.Filter {
	return s.filter
}

// Tasks returns a copy of the collection in insertion order
func (s *Store) Tasks() []data.Task {
	out := make([]data.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id])
	}
	return out
}

// Get returns the task with the given ID
func (s *Store) Get(id string) (data.Task, bool) {
	task, ok := s.tasks[id]
	return task, ok
}

// Len returns the number of tasks in the collection
func (s *Store) Len() int {
	return len(s.order)
}

// Subscribe registers fn to be called synchronously after each mutation.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Event)) func() {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		delete(s.subs, id)
	}
}

func (s *Store) notify(e Event) {
	logs.Logger.Printf("store: %s %s (filter=%s)", e.Kind, e.Task.ShortID(), e.Filter)
	for _, id := range s.subscriberIDs() {
		if fn, ok := s.subs[id]; ok {
			fn(e)
		}
	}
}

// subscriberIDs returns subscription IDs in registration order so
// delivery is deterministic even though subs is a map.
func (s *Store) subscriberIDs() []int {
	ids := make([]int, 0, len(s.subs))
	for id := 0; id < s.nextID; id++ {
		if _, ok := s.subs[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
