// Package ask provides the question view for the TUI.
package ask

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
)

// View represents the ask view with input, hit list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.AskInput
	list      *list.HitList
	statusbar *status.Bar

	retrievalService driving.RetrievalService
	index            driving.Index
	files            []string
	k                int
	ctx              context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a question, false = navigating results
}

// NewView creates a new ask view returning up to k passages per question.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	retrievalService driving.RetrievalService,
	k int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	statusbar := status.NewBar(s, km)
	statusbar.SetHints(km.AskHelp())

	return &View{
		styles:           s,
		keymap:           km,
		input:            input.NewAskInput(s),
		list:             list.NewHitList(s),
		statusbar:        statusbar,
		retrievalService: retrievalService,
		k:                k,
		ctx:              context.Background(),
		width:            80,
		height:           24,
		focusInput:       true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetK sets the number of passages returned per question.
func (v *View) SetK(k int) {
	v.k = k
}

// K returns the number of passages returned per question.
func (v *View) K() int {
	return v.k
}

// SetIndex sets the index questions are answered from and resets the view.
func (v *View) SetIndex(idx driving.Index, files []string) {
	v.index = idx
	v.files = files
	v.Reset()
}

// Index returns the index being queried.
func (v *View) Index() driving.Index {
	return v.index
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RetrievalCompleted:
		v.handleRetrievalCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always goes back to the picker
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewUpload}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(v.input.Value())
			if query == "" {
				return v, nil
			}
			v.statusbar.SetState(status.StateRetrieving)
			v.focusInput = false
			v.input.Blur()
			return v, v.performRetrieve(query)
		}

		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if keymap.Matches(msg.String(), v.keymap.NewQuestion) {
		v.focusInput = true
		v.input.SetValue("")
		v.statusbar.SetHints(v.keymap.AskHelp())
		return v, v.input.Focus()
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// performRetrieve asks the retrieval service for the passages nearest query.
func (v *View) performRetrieve(query string) tea.Cmd {
	ctx, svc, idx, k := v.ctx, v.retrievalService, v.index, v.k

	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoRetrievalService}
		}
		if idx == nil {
			return messages.ErrorOccurred{Err: ErrNoIndex}
		}

		hits, err := svc.RetrieveHits(ctx, idx, query, driving.WithK(k))
		return messages.RetrievalCompleted{Query: query, Hits: hits, Err: err}
	}
}

// handleRetrievalCompleted shows the retrieved passages.
func (v *View) handleRetrievalCompleted(msg messages.RetrievalCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetHits(msg.Hits)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Hits))
	v.statusbar.SetHints(v.keymap.ResultsHelp())
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("pdfqa"))

	if v.index != nil {
		summary := fmt.Sprintf("%d passage(s) from %s | %s | top %d",
			v.index.Len(), strings.Join(v.files, ", "), v.index.Model(), v.k)
		sections = append(sections, v.styles.Muted.Render(summary))
	}
	sections = append(sections, "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current question.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the current question.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Hits returns the current results.
func (v *View) Hits() []domain.Hit {
	return v.list.Hits()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to input mode with no results.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetHits(nil)
	v.err = nil
	v.statusbar.Clear()
	v.statusbar.SetHints(v.keymap.AskHelp())
}
