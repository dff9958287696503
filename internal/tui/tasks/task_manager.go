package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"todoapp/internal/config"
	"todoapp/internal/logs"
	"todoapp/internal/tasks/data"
	"todoapp/internal/tasks/store"
	"todoapp/internal/tasks/undo"
	"todoapp/internal/tasks/view"
	"todoapp/internal/tui/shared"
	"todoapp/internal/tui/theme"
)

var (
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	affordanceStyle  = theme.Muted
)

// EmptyPlaceholder is shown when no task passes the filter and search
const EmptyPlaceholder = "No Todos"

// ExpiryMsg carries an undo countdown expiry into Update
type ExpiryMsg undo.Expiry

// CountdownTickMsg refreshes the undo bar once per second while the
// countdown of Generation is running
type CountdownTickMsg struct {
	Generation uint64
}

// storeFeed collects store events between renders. It is shared by all
// copies of the model.
type storeFeed struct {
	events []store.Event
}

func (f *storeFeed) drain() []store.Event {
	events := f.events
	f.events = nil
	return events
}

// TaskManagerModel manages the task list view with filtering, search and
// delete with undo
type TaskManagerModel struct {
	// Data
	store        *store.Store
	undo         *undo.Controller
	expiries     <-chan undo.Expiry
	feed         *storeFeed
	unsubscribe  func()
	displayTasks []data.Task
	entering     map[string]bool

	// Navigation
	cursor       int
	scrollOffset int

	// State
	mode    InputMode
	keys    config.Keymap
	message string
	now     func() time.Time

	// Sub-components
	infoBar   InfoBarModel
	textInput *TextInputModel

	// Inline search
	searchActive     bool
	searchFilterMode bool // true when actively typing in search filter
	searchInput      textinput.Model
	searchQuery      string

	// Dimensions
	width  int
	height int
}

// NewTaskManagerModel creates a task list over s. Deletions go through ctrl;
// expiries delivered on the channel are applied inside Update. A nil
// channel means ctrl expires on its own.
func NewTaskManagerModel(s *store.Store, ctrl *undo.Controller, expiries <-chan undo.Expiry, keys config.Keymap) TaskManagerModel {
	feed := &storeFeed{}
	m := TaskManagerModel{
		store:    s,
		undo:     ctrl,
		expiries: expiries,
		feed:     feed,
		keys:     keys,
		now:      time.Now,
		infoBar:  NewInfoBar(keys),
	}
	m.unsubscribe = s.Subscribe(func(e store.Event) {
		feed.events = append(feed.events, e)
	})
	m.refreshDisplayTasks(false)
	feed.drain()
	return m
}

// SetClock replaces the time source for new tasks and the undo countdown
func (m *TaskManagerModel) SetClock(now func() time.Time) {
	m.now = now
}

// SetSize updates the dimensions
func (m *TaskManagerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.infoBar.Width = width
	m.ensureCursorVisible()
}

// Close detaches the model from the store
func (m *TaskManagerModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init starts listening for undo expiries
func (m TaskManagerModel) Init() tea.Cmd {
	return waitForExpiry(m.expiries)
}

// FocusTask moves the cursor to a specific task by ID
func (m *TaskManagerModel) FocusTask(taskID string) {
	for i, task := range m.displayTasks {
		if task.ID == taskID {
			m.cursor = i
			m.ensureCursorVisible()
			return
		}
	}
}

// Update handles messages for the task manager
func (m TaskManagerModel) Update(msg tea.Msg) (TaskManagerModel, tea.Cmd) {
	m, cmd := m.update(msg)
	if events := m.feed.drain(); len(events) > 0 {
		m.refreshDisplayTasks(hasArrival(events))
	}
	return m, cmd
}

func (m TaskManagerModel) update(msg tea.Msg) (TaskManagerModel, tea.Cmd) {
	// Handle sub-component results first
	switch msg := msg.(type) {
	case ExpiryMsg:
		m.undo.Expire(undo.Expiry(msg))
		return m, waitForExpiry(m.expiries)
	case CountdownTickMsg:
		if _, ok := m.undo.Pending(); ok && msg.Generation == m.undo.Generation() {
			return m, countdownTick(msg.Generation)
		}
		return m, nil
	case TextInputResultMsg:
		return m.handleTextInputResult(msg)
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		// The entrance highlight lasts until the next key press
		m.entering = nil
		m.message = ""
	}

	// Handle inline search mode (before other sub-components)
	if m.searchActive {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			return m.handleSearchMode(msg)
		default:
			// Forward non-key messages (like blink) to searchInput
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}
	}

	if m.textInput != nil {
		var cmd tea.Cmd
		_, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleNormalMode(msg)
	}

	return m, nil
}

// View renders the task manager
func (m TaskManagerModel) View() string {
	var b strings.Builder

	// Update info bar with current state
	pending, done := data.TaskCount(m.store.Tasks())
	m.infoBar.Mode = m.mode
	m.infoBar.Filter = m.store.Filter()
	m.infoBar.Pending = pending
	m.infoBar.Done = done
	m.infoBar.SearchQuery = m.searchQuery
	m.infoBar.Message = m.message

	// Info bar (always visible)
	b.WriteString(m.infoBar.View())
	b.WriteString("\n\n")

	if m.textInput != nil {
		b.WriteString(m.textInput.View())
		return b.String()
	}

	// Inline search line (when active)
	if m.searchActive {
		searchLine := searchStyle.Render("/") + m.searchInput.View()
		b.WriteString(searchLine)
		b.WriteString("\n")
	}

	b.WriteString(m.renderFlatTasks())

	if bar := m.renderUndoBar(); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}

	// Compute hints for bottom
	var hintsText string
	if m.searchActive {
		if m.searchFilterMode {
			hintsText = "[enter] done  [esc] clear"
		} else if m.searchQuery != "" {
			hintsText = "[/] filter  [j/k] navigate  [enter] done  [esc] clear"
		} else {
			hintsText = "[/] filter  [j/k] navigate  [enter] done  [esc] cancel"
		}
		hintsText = hintStyle.Render(hintsText)
	} else {
		hintsText = m.infoBar.RenderHints()
	}
	hints := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hintsText)

	return shared.CenterWithBottomHints(b.String(), hints, m.height)
}

func (m *TaskManagerModel) renderFlatTasks() string {
	var b strings.Builder

	if len(m.displayTasks) == 0 {
		b.WriteString(placeholderStyle.Render(EmptyPlaceholder))
		return b.String()
	}

	visible := m.visibleTaskRows()
	end := m.scrollOffset + visible
	if end > len(m.displayTasks) {
		end = len(m.displayTasks)
	}

	for i := m.scrollOffset; i < end; i++ {
		task := m.displayTasks[i]
		prefix := "  "
		line := shared.StyledTaskLine(task, m.entering[task.ID])
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
			line += "  " + affordanceStyle.Render("["+m.keys.Delete+"] delete")
		}
		b.WriteString(prefix + line + "\n")
	}

	return b.String()
}

// renderUndoBar shows the pending deletion, or nothing when idle
func (m *TaskManagerModel) renderUndoBar() string {
	task, ok := m.undo.Pending()
	if !ok {
		return ""
	}
	return theme.UndoBar.Render(UndoBarText(task, m.keys.Undo, m.undo.Remaining(m.now())))
}

// UndoBarText formats the undo bar for a pending deletion. Remaining time
// is rounded up to whole seconds.
func UndoBarText(task data.Task, undoKey string, remaining time.Duration) string {
	secs := int((remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("Deleted %q  [%s] undo (%ds)", task.Text, undoKey, secs)
}

// Input handlers

func (m TaskManagerModel) handleNormalMode(msg tea.KeyMsg) (TaskManagerModel, tea.Cmd) {
	k := m.keys
	switch {
	case keyMatches(msg, k.Down) || msg.String() == "down":
		m.moveCursor(1)
	case keyMatches(msg, k.Up) || msg.String() == "up":
		m.moveCursor(-1)
	case keyMatches(msg, k.Add):
		return m.startNewTask()
	case keyMatches(msg, k.Toggle):
		return m.toggleTaskDone()
	case keyMatches(msg, k.Delete):
		return m.deleteSelected()
	case keyMatches(msg, k.Undo):
		return m.undoDelete()
	case keyMatches(msg, k.CycleFilter):
		m.store.SetFilter(m.store.Filter().Next())
	case keyMatches(msg, k.FilterAll):
		m.store.SetFilter(data.FilterAll)
	case keyMatches(msg, k.FilterPending):
		m.store.SetFilter(data.FilterPending)
	case keyMatches(msg, k.FilterDone):
		m.store.SetFilter(data.FilterDone)
	case keyMatches(msg, k.Search):
		return m.startSearch()
	case keyMatches(msg, k.Cancel):
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.refreshDisplayTasks(false)
		}
	}
	return m, nil
}

func (m TaskManagerModel) handleSearchMode(msg tea.KeyMsg) (TaskManagerModel, tea.Cmd) {
	// Handle filter typing mode
	if m.searchFilterMode {
		switch {
		case keyMatches(msg, m.keys.Confirm):
			// Exit filter mode, keep query, stay in search mode
			m.searchFilterMode = false
			m.searchInput.Blur()
			return m, nil

		case keyMatches(msg, m.keys.Cancel):
			// Clear query, exit filter mode, stay in search mode
			m.searchInput.SetValue("")
			m.searchQuery = ""
			m.searchFilterMode = false
			m.searchInput.Blur()
			m.refreshDisplayTasks(false)
			return m, nil

		default:
			// Forward all keys to textinput (including j/k)
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			// Live filter on every keystroke
			m.searchQuery = m.searchInput.Value()
			m.refreshDisplayTasks(false)
			return m, cmd
		}
	}

	// Navigation mode (not typing in filter)
	switch {
	case keyMatches(msg, m.keys.Search):
		// Re-enter filter typing mode
		m.searchFilterMode = true
		return m, m.searchInput.Focus()

	case keyMatches(msg, m.keys.Confirm):
		// Confirm search: exit search mode, keep the query applied
		m.searchActive = false
		m.mode = ModeNormal
		return m, nil

	case keyMatches(msg, m.keys.Cancel):
		// If query exists, clear it; otherwise exit search mode
		if m.searchQuery != "" {
			m.searchInput.SetValue("")
			m.searchQuery = ""
			m.refreshDisplayTasks(false)
			return m, nil
		}
		m.searchActive = false
		m.mode = ModeNormal
		return m, nil

	case keyMatches(msg, m.keys.Up) || msg.String() == "up":
		m.moveCursor(-1)
	case keyMatches(msg, m.keys.Down) || msg.String() == "down":
		m.moveCursor(1)

	// Allow acting on tasks while in search navigation mode
	case keyMatches(msg, m.keys.Toggle):
		return m.toggleTaskDone()
	case keyMatches(msg, m.keys.Delete):
		return m.deleteSelected()
	case keyMatches(msg, m.keys.Undo):
		return m.undoDelete()
	}

	return m, nil
}

// Actions

func (m TaskManagerModel) startSearch() (TaskManagerModel, tea.Cmd) {
	// Use inline search mode with lightweight textinput
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "type to filter..."
	m.searchInput.CharLimit = 256
	m.searchInput.Width = 40
	m.searchInput.SetValue(m.searchQuery)
	m.searchActive = true
	m.searchFilterMode = true // Start in filter typing mode
	m.mode = ModeSearch
	m.ensureCursorVisible()
	return m, m.searchInput.Focus()
}

func (m TaskManagerModel) startNewTask() (TaskManagerModel, tea.Cmd) {
	m.textInput = NewTextInput("New Task", "What needs to be done?", m.keys.Confirm, m.keys.Cancel, nil)
	if m.width > 0 {
		m.textInput.SetWidth(m.width)
	}
	m.mode = ModeCreateTask
	return m, m.textInput.Focus()
}

func (m TaskManagerModel) toggleTaskDone() (TaskManagerModel, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	m.store.Toggle(task.ID)
	return m, nil
}

func (m TaskManagerModel) deleteSelected() (TaskManagerModel, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	m.undo.RequestDelete(*task)
	return m, countdownTick(m.undo.Generation())
}

func (m TaskManagerModel) undoDelete() (TaskManagerModel, tea.Cmd) {
	task, ok := m.undo.Pending()
	if !ok || !m.undo.RequestUndo() {
		return m, nil
	}
	// Refresh now so the restored row can take the cursor
	m.feed.drain()
	m.refreshDisplayTasks(true)
	m.FocusTask(task.ID)
	return m, nil
}

// Result handlers

func (m TaskManagerModel) handleTextInputResult(msg TextInputResultMsg) (TaskManagerModel, tea.Cmd) {
	m.textInput = nil
	m.mode = ModeNormal

	if msg.Cancelled {
		return m, nil
	}

	if err := ValidateTaskText(msg.Value); err != nil {
		m.message = err.Error()
		return m, nil
	}

	task := data.NewTask(msg.Value, m.now())
	m.store.Add(task)
	logs.Logger.Printf("tui: added %s", task.ShortID())
	return m, nil
}

// Helpers

func (m *TaskManagerModel) refreshDisplayTasks(highlight bool) {
	next := view.Derive(m.store.Tasks(), m.store.Filter())
	if m.searchQuery != "" {
		next = view.Search(next, m.searchQuery)
	}

	changes := view.Diff(m.displayTasks, next)
	if len(changes) > 0 {
		logs.Logger.Printf("tui: view changed (%d changes, %d rows)", len(changes), len(next))
	}
	if highlight {
		m.entering = view.AddedIDs(changes)
	}
	m.displayTasks = next

	// Clamp cursor
	if m.cursor >= len(m.displayTasks) {
		m.cursor = len(m.displayTasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *TaskManagerModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.displayTasks) {
		m.cursor = len(m.displayTasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *TaskManagerModel) selectedTask() *data.Task {
	if m.cursor >= 0 && m.cursor < len(m.displayTasks) {
		return &m.displayTasks[m.cursor]
	}
	return nil
}

// DisplayTasks returns the rows currently shown
func (m *TaskManagerModel) DisplayTasks() []data.Task {
	return m.displayTasks
}

// Entering reports whether the row for id is highlighted as new
func (m *TaskManagerModel) Entering(id string) bool {
	return m.entering[id]
}

// Message returns the current status message
func (m *TaskManagerModel) Message() string {
	return m.message
}

// PendingUndo returns the deletion that quitting would make permanent
func (m *TaskManagerModel) PendingUndo() (data.Task, bool) {
	return m.undo.Pending()
}

// visibleTaskRows returns the number of task lines that fit in the viewport.
// The info bar uses 4 lines (3 content + border), gap uses 1 line, hints use 1 line.
func (m *TaskManagerModel) visibleTaskRows() int {
	used := 6 // info bar (4) + gap (1) + hints (1)
	if m.searchActive {
		used++ // search input line
	}
	if _, ok := m.undo.Pending(); ok {
		used += 2 // undo bar + spacing
	}
	visible := m.height - used
	if visible < 1 {
		visible = 1
	}
	return visible
}

// ensureCursorVisible adjusts scrollOffset so the cursor is within the visible window.
func (m *TaskManagerModel) ensureCursorVisible() {
	visible := m.visibleTaskRows()
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// IsInModalState returns true if the task manager is in a mode that should
// block global key handling (input or search)
func (m *TaskManagerModel) IsInModalState() bool {
	return m.textInput != nil || m.searchActive
}

func hasArrival(events []store.Event) bool {
	for _, e := range events {
		if e.Kind == store.EventAdded {
			return true
		}
	}
	return false
}

// waitForExpiry blocks on the expiry channel off the update loop
func waitForExpiry(expiries <-chan undo.Expiry) tea.Cmd {
	if expiries == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-expiries
		if !ok {
			return nil
		}
		return ExpiryMsg(e)
	}
}

func countdownTick(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return CountdownTickMsg{Generation: gen}
	})
}

// keyMatches compares a key press against a configured binding. Space may
// be configured as " " or "space".
func keyMatches(msg tea.KeyMsg, binding string) bool {
	if binding == "" {
		return false
	}
	pressed := msg.String()
	if pressed == binding {
		return true
	}
	isSpace := func(s string) bool { return s == " " || s == "space" }
	return isSpace(pressed) && isSpace(binding)
}
