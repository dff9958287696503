package tui

import (
	"github.com/charmbracelet/lipgloss"
	"todoapp/internal/tui/theme"
)

var (
	// Status bar
	StatusBarStyle = theme.StatusBar

	// Help text
	HelpStyle = lipgloss.NewStyle().Foreground(theme.TextMuted)

	// Status line messages
	StatusMessageStyle = lipgloss.NewStyle().Foreground(theme.Warning)
)
