// Package seed reads the tasks the store is pre-populated with at startup.
package seed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"todoapp/internal/logs"
	"todoapp/internal/tasks/data"
)

// ErrUnknownFormat is returned for seed files with an unsupported extension
var ErrUnknownFormat = errors.New("unknown seed format")

// Adder receives seeded tasks
type Adder interface {
	Add(task data.Task)
}

// Load reads the seed document at path. The format is chosen by extension:
// .yaml/.yml for a task list, .md/.markdown for a checklist.
func Load(path string, now time.Time) ([]data.Task, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		tasks, err := ReadYAML(content, now)
		if err != nil {
			return nil, fmt.Errorf("parse seed %s: %w", path, err)
		}
		return tasks, nil
	case ".md", ".markdown":
		created := now
		if info, err := os.Stat(path); err == nil {
			created = info.ModTime()
		}
		tasks, err := ReadMarkdown(content, created)
		if err != nil {
			return nil, fmt.Errorf("parse seed %s: %w", path, err)
		}
		return tasks, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Populate adds tasks in order. Later tasks with a repeated ID overwrite
// earlier ones. It returns the number of distinct IDs added.
func Populate(dst Adder, tasks []data.Task) int {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			logs.Logger.Printf("seed: duplicate id %s, later entry wins", t.ID)
		}
		seen[t.ID] = true
		dst.Add(t)
	}
	return len(seen)
}
