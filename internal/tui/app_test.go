package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"todoapp/internal/config"
	"todoapp/internal/tasks/data"
	"todoapp/internal/tasks/store"
	"todoapp/internal/tasks/undo"
	"todoapp/internal/tui/messages"
	taskview "todoapp/internal/tui/tasks"
)

func newTestApp(t *testing.T, tasks ...data.Task) AppModel {
	t.Helper()
	s := store.New()
	for _, task := range tasks {
		s.Add(task)
	}
	cfg := config.Default()
	ctrl := undo.NewController(s, undo.NewManualScheduler(), time.Minute)
	m := newAppModel(cfg, taskview.NewTaskManagerModel(s, ctrl, nil, cfg.Keys))
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func key(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

var milk = data.Task{ID: "1", Text: "Buy milk", Status: data.StatusPending, Time: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}

func TestAppModel_QuitWhenIdle(t *testing.T) {
	m := newTestApp(t, milk)
	_, cmd := m.Update(key("q"))
	if !isQuit(cmd) {
		t.Error("expected quit when nothing is pending")
	}
}

func TestAppModel_QuitWithPendingUndoAsks(t *testing.T) {
	m := newTestApp(t, milk)
	m = update(t, m, key("d"))

	next, cmd := m.Update(key("q"))
	m = next.(AppModel)
	if cmd != nil {
		t.Fatal("expected confirmation instead of quitting")
	}
	if !strings.Contains(m.View(), "Quit now?") {
		t.Fatalf("expected confirmation modal:\n%s", m.View())
	}

	// Declining keeps the app running with the deletion still undoable
	_, cmd = m.Update(key("n"))
	m = update(t, m, cmd())
	if strings.Contains(m.View(), "Quit now?") {
		t.Error("modal should close after declining")
	}
	m = update(t, m, key("u"))
	if !strings.Contains(m.View(), "Buy milk") {
		t.Error("expected undo to work after declining quit")
	}

	m = update(t, m, key("d"))
	m = update(t, m, key("q"))
	_, cmd = m.Update(key("y"))
	_, cmd = m.Update(cmd())
	if !isQuit(cmd) {
		t.Error("expected quit after confirming")
	}
}

func TestAppModel_HelpOverlay(t *testing.T) {
	m := newTestApp(t)
	m = update(t, m, key("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("expected help overlay:\n%s", m.View())
	}
	m = update(t, m, key("x"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected any key to dismiss help")
	}
}

func TestAppModel_QuitKeyTypedInModal(t *testing.T) {
	m := newTestApp(t)
	m = update(t, m, key("n"))
	_, cmd := m.Update(key("q"))
	if isQuit(cmd) {
		t.Error("typing q in the add modal must not quit")
	}
}

func TestAppModel_StatusLine(t *testing.T) {
	m := newTestApp(t)
	m = update(t, m, messages.Status("Loaded 3 tasks")())
	if !strings.Contains(m.View(), "Loaded 3 tasks") {
		t.Errorf("expected status message:\n%s", m.View())
	}
}

func TestNewAppModel_RejectsInvalidWindow(t *testing.T) {
	cfg := config.Default()
	cfg.UndoWindow = "later"
	if _, err := NewAppModel(cfg, store.New()); err == nil {
		t.Error("expected error for invalid undo window")
	}
}
