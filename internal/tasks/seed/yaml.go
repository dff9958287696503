package seed

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"todoapp/internal/tasks/data"
)

type yamlDocument struct {
	Tasks []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	ID     string    `yaml:"id,omitempty"`
	Text   string    `yaml:"text"`
	Status string    `yaml:"status,omitempty"`
	Time   time.Time `yaml:"time,omitempty"`
}

// ReadYAML parses a document of the form
//
//	tasks:
//	  - text: Buy milk
//	    status: done
//	    time: 2026-10-14T09:00:00Z
//
// Missing IDs get a fresh one, missing status is pending and missing time
// is now.
func ReadYAML(content []byte, now time.Time) ([]data.Task, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	tasks := make([]data.Task, 0, len(doc.Tasks))
	for i, entry := range doc.Tasks {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			return nil, fmt.Errorf("task %d: text is empty", i+1)
		}
		status, err := data.ParseStatus(entry.Status)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			id = data.NewID()
		}
		created := entry.Time
		if created.IsZero() {
			created = now
		}
		tasks = append(tasks, data.Task{ID: id, Text: text, Status: status, Time: created})
	}
	return tasks, nil
}

// WriteYAML renders tasks in the format ReadYAML accepts
func WriteYAML(tasks []data.Task) ([]byte, error) {
	doc := yamlDocument{Tasks: make([]yamlTask, len(tasks))}
	for i, t := range tasks {
		doc.Tasks[i] = yamlTask{ID: t.ID, Text: t.Text, Status: string(t.Status), Time: t.Time}
	}
	return yaml.Marshal(doc)
}
