package data

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the display format for a task's creation time
const TimeLayout = "3:04 PM, 01/02/2006"

// Status is the completion state of a task
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Task is a single todo entry
type Task struct {
	ID     string
	Text   string
	Status Status
	Time   time.Time
}

// NewTask creates a pending task with a fresh ID
func NewTask(text string, created time.Time) Task {
	return Task{
		ID:     NewID(),
		Text:   strings.TrimSpace(text),
		Status: StatusPending,
		Time:   created,
	}
}

// NewID returns a new unique task identifier
func NewID() string {
	return uuid.NewString()
}

// IsDone reports whether the task is completed
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// Toggled returns a copy of the task with its status flipped.
// Statuses outside the closed set become pending.
func (t Task) Toggled() Task {
	if t.Status == StatusDone {
		t.Status = StatusPending
	} else {
		t.Status = StatusDone
	}
	return t
}

// FormatTime renders the creation time for display
func (t Task) FormatTime() string {
	if t.Time.IsZero() {
		return ""
	}
	return t.Time.Local().Format(TimeLayout)
}

func (t Task) String() string {
	return fmt.Sprintf("%s [%s] %s", shortID(t.ID), t.Status, t.Text)
}

// ShortID returns the first 8 characters of the task ID
func (t Task) ShortID() string {
	return shortID(t.ID)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ParseStatus parses a status name. Empty input is pending.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pending", "incomplete", "todo":
		return StatusPending, nil
	case "done", "complete", "completed", "x":
		return StatusDone, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}
