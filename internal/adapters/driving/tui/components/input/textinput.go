// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/styles"
)

// AskInput wraps a bubbles textinput for entering questions.
type AskInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewAskInput creates a new question input component.
func NewAskInput(s *styles.Styles) *AskInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask something about your PDFs..."
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &AskInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (a *AskInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (a *AskInput) Update(msg tea.Msg) (*AskInput, tea.Cmd) {
	var cmd tea.Cmd
	a.textinput, cmd = a.textinput.Update(msg)
	return a, cmd
}

// View renders the input.
func (a *AskInput) View() string {
	label := a.styles.Title.Render("Ask: ")
	field := a.styles.InputField.Render(a.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (a *AskInput) Value() string {
	return a.textinput.Value()
}

// SetValue sets the input value.
func (a *AskInput) SetValue(value string) {
	a.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (a *AskInput) Focus() tea.Cmd {
	return a.textinput.Focus()
}

// Blur removes focus from the input.
func (a *AskInput) Blur() {
	a.textinput.Blur()
}

// Focused returns whether the input is focused.
func (a *AskInput) Focused() bool {
	return a.textinput.Focused()
}

// SetWidth sets the width of the input.
func (a *AskInput) SetWidth(width int) {
	a.width = width
	// Account for label and padding
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	a.textinput.Width = inputWidth
}

// Width returns the current width.
func (a *AskInput) Width() int {
	return a.width
}

// Reset clears the input.
func (a *AskInput) Reset() {
	a.textinput.Reset()
}
