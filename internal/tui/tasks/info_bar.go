package tasks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"todoapp/internal/config"
	"todoapp/internal/tasks/data"
	"todoapp/internal/tui/shared"
	"todoapp/internal/tui/theme"
)

var (
	modeStyle    = theme.NavActive
	hintStyle    = theme.HelpHint
	countStyle   = lipgloss.NewStyle().Foreground(theme.Warning)
	searchStyle  = lipgloss.NewStyle().Foreground(theme.Success)
	messageStyle = lipgloss.NewStyle().Foreground(theme.Danger)
	infoBarStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(theme.Border)
)

// InputMode is the interaction mode of the task list
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCreateTask
	ModeSearch
)

func (m InputMode) String() string {
	switch m {
	case ModeCreateTask:
		return "New Task"
	case ModeSearch:
		return "Search"
	}
	return "Normal"
}

// InfoBarModel displays mode, filter tabs, counts, search and status messages
type InfoBarModel struct {
	Mode        InputMode
	Filter      data.Filter
	Pending     int
	Done        int
	SearchQuery string
	Message     string
	Keys        config.Keymap
	Width       int
}

// NewInfoBar creates a new info bar
func NewInfoBar(keys config.Keymap) InfoBarModel {
	return InfoBarModel{
		Keys:  keys,
		Width: 80,
	}
}

// View renders the info bar (3 fixed lines)
func (m *InfoBarModel) View() string {
	var lines [3]string

	lines[0] = m.renderModeLine()
	lines[1] = m.renderCountsLine()
	lines[2] = m.renderSearchLine()

	content := strings.Join(lines[:], "\n")
	return infoBarStyle.Width(m.Width).Render(content)
}

func (m *InfoBarModel) renderModeLine() string {
	tabs := make([]string, 0, len(data.Filters))
	shortcuts := []string{m.Keys.FilterAll, m.Keys.FilterPending, m.Keys.FilterDone}
	for i, f := range data.Filters {
		label := shortcuts[i] + ":" + f.Label()
		if f == m.Filter {
			tabs = append(tabs, theme.TabActive.Render("["+label+"]"))
		} else {
			tabs = append(tabs, theme.TabInactive.Render(" "+label+" "))
		}
	}
	return modeStyle.Render("["+m.Mode.String()+"]") + "  " + strings.Join(tabs, " ")
}

func (m *InfoBarModel) renderCountsLine() string {
	return countStyle.Render(fmt.Sprintf("%d pending  %d done", m.Pending, m.Done))
}

func (m *InfoBarModel) renderSearchLine() string {
	if m.Message != "" {
		return messageStyle.Render(m.Message)
	}

	if m.SearchQuery != "" {
		return searchStyle.Render("Search: \"" + m.SearchQuery + "\"")
	}

	return ""
}

// RenderHints returns the styled keybind hints for the current mode.
func (m *InfoBarModel) RenderHints() string {
	return hintStyle.Render(m.RenderHintsRaw())
}

// RenderHintsRaw returns the raw (unstyled) keybind hints for the current mode.
func (m *InfoBarModel) RenderHintsRaw() string {
	k := m.Keys
	switch m.Mode {
	case ModeCreateTask:
		return k.Confirm + ":add  " + k.Cancel + ":cancel"
	case ModeSearch:
		return "type to filter  " + k.Confirm + ":done  " + k.Cancel + ":clear"
	}
	return strings.Join([]string{
		k.Help + ":help",
		k.Add + ":new",
		shared.KeyLabel(k.Toggle) + ":done",
		k.Delete + ":delete",
		k.Undo + ":undo",
		k.CycleFilter + ":filter",
		k.Search + ":search",
		k.Quit + ":quit",
	}, "  ")
}
