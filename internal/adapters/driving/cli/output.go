package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Output styles. lipgloss drops colour automatically when stdout is not a TTY.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
)

// preview flattens text onto one line and cuts it to at most width runes.
func preview(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if width <= 3 || len(runes) <= width {
		return flat
	}
	return string(runes[:width-3]) + "..."
}
