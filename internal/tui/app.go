package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"todoapp/internal/config"
	"todoapp/internal/logs"
	"todoapp/internal/tasks/store"
	"todoapp/internal/tasks/undo"
	"todoapp/internal/tui/messages"
	"todoapp/internal/tui/shared"
	taskview "todoapp/internal/tui/tasks"
)

// AppModel is the root model that owns global keys and overlays
type AppModel struct {
	cfg             config.Config
	taskManagerView taskview.TaskManagerModel
	quitConfirm     *taskview.ConfirmationModal
	status          string
	initialStatus   string
	showHelp        bool
	width           int
	height          int
	ready           bool
}

// NewAppModel creates the root application model over s. The undo
// controller runs on wall-clock timers whose expiries are delivered back
// into Update.
func NewAppModel(cfg config.Config, s *store.Store) (AppModel, error) {
	window, err := cfg.UndoDuration()
	if err != nil {
		return AppModel{}, err
	}

	expiries := make(chan undo.Expiry, 1)
	ctrl := undo.NewController(s, undo.ClockScheduler{}, window)
	ctrl.OnExpire(func(e undo.Expiry) {
		expiries <- e
	})

	return newAppModel(cfg, taskview.NewTaskManagerModel(s, ctrl, expiries, cfg.Keys)), nil
}

func newAppModel(cfg config.Config, tasks taskview.TaskManagerModel) AppModel {
	return AppModel{
		cfg:             cfg,
		taskManagerView: tasks,
	}
}

// WithStatus shows text on the status line once the program starts
func (m AppModel) WithStatus(text string) AppModel {
	m.initialStatus = text
	return m
}

func (m AppModel) Init() tea.Cmd {
	if m.initialStatus == "" {
		return m.taskManagerView.Init()
	}
	return tea.Batch(m.taskManagerView.Init(), messages.Status(m.initialStatus))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 3 // Reserve space for status bar
		m.taskManagerView.SetSize(msg.Width, contentHeight)
		return m, nil

	case messages.StatusMsg:
		m.status = msg.Text
		return m, nil

	case taskview.ConfirmationResultMsg:
		m.quitConfirm = nil
		if msg.Confirmed {
			return m, m.quit()
		}
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

		if m.quitConfirm != nil {
			return m, m.quitConfirm.Update(msg)
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Let the task list handle all keys while typing
		if !m.taskManagerView.IsInModalState() {
			switch msg.String() {
			case m.cfg.Keys.Quit:
				if pending, ok := m.taskManagerView.PendingUndo(); ok {
					m.quitConfirm = taskview.NewQuitConfirmation(pending)
					return m, nil
				}
				return m, m.quit()
			case m.cfg.Keys.Help:
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.taskManagerView, cmd = m.taskManagerView.Update(msg)
	return m, cmd
}

func (m AppModel) quit() tea.Cmd {
	if pending, ok := m.taskManagerView.PendingUndo(); ok {
		logs.Logger.Printf("tui: quitting with %s pending, deletion is permanent", pending.ShortID())
	}
	m.taskManagerView.Close()
	return tea.Quit
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup(m.helpSections(), m.width, m.height)
	}

	if m.quitConfirm != nil {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.quitConfirm.View(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	content := m.taskManagerView.View()

	statusText := HelpStyle.Render(fmt.Sprintf("Todos | %s:help | %s:quit", m.cfg.Keys.Help, m.cfg.Keys.Quit))
	if m.status != "" {
		statusText += "  " + StatusMessageStyle.Render(m.status)
	}
	statusBar := StatusBarStyle.Width(m.width).Render(statusText)

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m AppModel) helpSections() []shared.HelpSection {
	k := m.cfg.Keys
	return []shared.HelpSection{
		{
			Title: "Todos - Keyboard Shortcuts",
			Binds: []shared.HelpBind{
				{Key: k.Up + " / " + k.Down, Desc: "Navigate tasks"},
				{Key: k.Add, Desc: "New task"},
				{Key: shared.KeyLabel(k.Toggle), Desc: "Toggle done"},
				{Key: k.Delete, Desc: "Delete task"},
				{Key: k.Undo, Desc: "Undo last delete"},
			},
		},
		{
			Title: "Filter & Search",
			Binds: []shared.HelpBind{
				{Key: k.CycleFilter, Desc: "Cycle filter"},
				{Key: k.FilterAll + " / " + k.FilterPending + " / " + k.FilterDone, Desc: "All / pending / done"},
				{Key: k.Search, Desc: "Search"},
				{Key: k.Cancel, Desc: "Clear search"},
			},
		},
		{
			Title: "Global",
			Binds: []shared.HelpBind{
				{Key: k.Help, Desc: "Show this help"},
				{Key: k.Quit, Desc: "Quit"},
				{Key: "ctrl+c", Desc: "Force quit"},
			},
		},
	}
}
