package messages

import tea "github.com/charmbracelet/bubbletea"

// StatusMsg sets the text shown on the status line
type StatusMsg struct {
	Text string
}

// Status returns a command that posts text to the status line
func Status(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}
