package tasks

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	inputPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	inputErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	inputBoxStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("4")).Padding(0, 1)
)

// ErrEmptyText is reported when a task is submitted without text
var ErrEmptyText = errors.New("task text cannot be empty")

// TextInputModel wraps bubbles/textinput with validation
type TextInputModel struct {
	Input       textinput.Model
	Prompt      string
	Validator   func(string) error
	Placeholder string
	Error       string
	Width       int

	confirmKey string
	cancelKey  string
}

// TextInputResultMsg is sent when input is confirmed or cancelled
type TextInputResultMsg struct {
	Value     string
	Cancelled bool
}

// NewTextInput creates a new text input component confirmed and cancelled
// with the given keys
func NewTextInput(prompt, placeholder, confirmKey, cancelKey string, validator func(string) error) *TextInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 256
	return &TextInputModel{
		Input:       ti,
		Prompt:      prompt,
		Placeholder: placeholder,
		Validator:   validator,
		confirmKey:  confirmKey,
		cancelKey:   cancelKey,
	}
}

// Init implements tea.Model
func (m *TextInputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *TextInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMatches(msg, m.confirmKey):
			// Validate before accepting
			if m.Validator != nil {
				if err := m.Validator(m.Input.Value()); err != nil {
					m.Error = err.Error()
					return m, nil
				}
			}
			value := m.Input.Value()
			return m, func() tea.Msg {
				return TextInputResultMsg{Value: value}
			}

		case keyMatches(msg, m.cancelKey):
			return m, func() tea.Msg {
				return TextInputResultMsg{Cancelled: true}
			}
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	// Clear error when user types
	m.Error = ""

	return m, cmd
}

// View implements tea.Model
func (m *TextInputModel) View() string {
	var content string

	content += inputPromptStyle.Render(m.Prompt+": ") + m.Input.View() + "\n"

	if m.Error != "" {
		content += inputErrorStyle.Render("Error: "+m.Error) + "\n"
	}

	content += lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("[" + m.confirmKey + "] confirm  [" + m.cancelKey + "] cancel")

	return inputBoxStyle.Width(m.Width).Render(content)
}

// Value returns the current input value
func (m *TextInputModel) Value() string {
	return m.Input.Value()
}

// SetValue sets the input value
func (m *TextInputModel) SetValue(v string) {
	m.Input.SetValue(v)
}

// SetWidth sets both the outer box and inner input widths
func (m *TextInputModel) SetWidth(w int) {
	// Account for border (2) and padding (2)
	m.Width = w - 4
	// Inner input accounts for prompt text
	m.Input.Width = m.Width - lipgloss.Width(m.Prompt+": ")
}

// Focus focuses the input
func (m *TextInputModel) Focus() tea.Cmd {
	return m.Input.Focus()
}

// ValidateTaskText rejects blank task text
func ValidateTaskText(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyText
	}
	return nil
}
