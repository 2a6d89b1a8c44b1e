// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
)

// HitList displays retrieved passages in a navigable list.
type HitList struct {
	hits     []domain.Hit
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHitList creates a new hit list component.
func NewHitList(s *styles.Styles) *HitList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HitList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (h *HitList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (h *HitList) Update(msg tea.Msg) (*HitList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			h.MoveUp()
		case "down", "j":
			h.MoveDown()
		}
	}
	return h, nil
}

// View renders the list. The selected passage is shown in full,
// the others as one-line previews.
func (h *HitList) View() string {
	if len(h.hits) == 0 {
		return h.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(h.hits)+2)
	lines = append(lines, h.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(h.hits))), "")

	for i := range h.hits {
		lines = append(lines, h.renderHit(i))
	}

	return strings.Join(lines, "\n")
}

func (h *HitList) renderHit(i int) string {
	hit := h.hits[i]
	score := fmt.Sprintf("%.3f", hit.Similarity)
	label := fmt.Sprintf("%d. [#%d]", i+1, hit.Position)

	if i == h.selected {
		head := h.styles.Selected.Render(fmt.Sprintf("> %s %s", label, score))
		return head + "\n" + h.styles.Normal.Render(wrap(hit.Text, h.width-4, "    "))
	}

	preview := strings.Join(strings.Fields(hit.Text), " ")
	maxLen := h.width - len(label) - len(score) - 6
	if maxLen < 10 {
		maxLen = 10
	}
	if len(preview) > maxLen {
		preview = preview[:maxLen-3] + "..."
	}
	return h.styles.Normal.Render("  "+label+" ") + h.styles.Muted.Render(score+" "+preview)
}

// wrap breaks text into indented lines of at most width characters.
func wrap(text string, width int, indent string) string {
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	lineLen := 0
	b.WriteString(indent)
	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+1+len(word) > width {
			b.WriteString("\n" + indent)
			lineLen = 0
		}
		if lineLen > 0 {
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}

// SetHits replaces the list contents and selects the first hit.
func (h *HitList) SetHits(hits []domain.Hit) {
	h.hits = hits
	h.selected = 0
}

// Hits returns the current hits.
func (h *HitList) Hits() []domain.Hit {
	return h.hits
}

// Selected returns the index of the selected hit.
func (h *HitList) Selected() int {
	return h.selected
}

// SelectedHit returns the currently selected hit, or nil if none.
func (h *HitList) SelectedHit() *domain.Hit {
	if h.selected < 0 || h.selected >= len(h.hits) {
		return nil
	}
	return &h.hits[h.selected]
}

// MoveUp moves selection up.
func (h *HitList) MoveUp() {
	if h.selected > 0 {
		h.selected--
	}
}

// MoveDown moves selection down.
func (h *HitList) MoveDown() {
	if h.selected < len(h.hits)-1 {
		h.selected++
	}
}

// SetDimensions sets the component dimensions.
func (h *HitList) SetDimensions(width, height int) {
	h.width = width
	h.height = height
}

// Count returns the number of hits.
func (h *HitList) Count() int {
	return len(h.hits)
}
