package shared

import (
	"strings"

	"todoapp/internal/tasks/data"
	"todoapp/internal/tui/theme"
)

// StyledTaskLine renders a task in a simple, readable format.
// Format: [x] Text  3:04 PM, 01/02/2006
// Entering rows are highlighted for one render after they appear.
func StyledTaskLine(t data.Task, entering bool) string {
	var parts []string

	// Status checkbox
	if t.IsDone() {
		parts = append(parts, theme.Done.Render("[x]"))
	} else {
		parts = append(parts, "[ ]")
	}

	// Text
	switch {
	case entering:
		parts = append(parts, theme.Entering.Render(t.Text))
	case t.IsDone():
		parts = append(parts, theme.Done.Render(t.Text))
	default:
		parts = append(parts, t.Text)
	}

	// Creation time
	parts = append(parts, " "+theme.Timestamp.Render(t.FormatTime()))

	return strings.Join(parts, " ")
}
