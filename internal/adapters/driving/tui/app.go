package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/views/ask"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// uploadView is the PDF picker.
	uploadView *upload.View

	// askView answers questions against the built index.
	askView *ask.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when help is closed.
	previousView messages.ViewType

	// index is the most recently built index.
	index driving.Index

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		uploadView:  upload.NewView(s, km, ports.Upload, ports.Ingest, ports.Retrieval),
		askView:     ask.NewView(s, km, ports.Retrieval, domain.DefaultK),
		currentView: messages.ViewUpload,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.uploadView.WithContext(ctx)
	a.askView.WithContext(ctx)
	return a
}

// WithDirectory sets the directory the file picker starts in.
func (a *App) WithDirectory(dir string) *App {
	a.uploadView.SetDirectory(dir)
	return a
}

// WithK sets the number of passages returned per question.
func (a *App) WithK(k int) *App {
	a.askView.SetK(k)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("pdfqa"),
		a.uploadView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.FilesUploaded:
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case messages.IndexBuilt:
		a.uploadView, _ = a.uploadView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.err = nil
		a.index = msg.Index
		a.askView.SetIndex(msg.Index, msg.Files)
		a.currentView = messages.ViewAsk
		return a, a.askView.Init()

	case messages.RetrievalCompleted:
		a.askView, cmd = a.askView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.ViewChanged:
		if msg.View == messages.ViewAsk && a.index == nil {
			return a, nil
		}
		a.currentView = msg.View
		if msg.View == messages.ViewAsk {
			return a, a.askView.Init()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewUpload:
			a.uploadView, cmd = a.uploadView.Update(msg)
		case messages.ViewAsk:
			a.askView, cmd = a.askView.Update(msg)
		case messages.ViewHelp:
			// Help view doesn't show errors
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// handleKeyMsg applies global keys, then forwards to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// q and ? are only global when no text input has focus
	typing := a.currentView == messages.ViewAsk && a.askView.InputFocused()
	if !typing {
		switch {
		case keymap.Matches(msg.String(), a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(msg.String(), a.keymap.Help):
			if a.currentView == messages.ViewHelp {
				a.currentView = a.previousView
			} else {
				a.previousView = a.currentView
				a.currentView = messages.ViewHelp
			}
			return a, nil
		}
	}

	switch a.currentView {
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.currentView = a.previousView
		}
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewUpload:
		return a.uploadView.View()
	case messages.ViewAsk:
		return a.askView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.uploadView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Upload:
  j/k, ↑/↓    Navigate files
  enter       Open directory / pick or unpick a PDF
  h, ←        Parent directory
  u           Upload the picked files and build the index
  x           Clear the selection

Ask:
  (type)      Enter a question
  enter       Retrieve the most similar passages
  n           New question
  j/k, ↑/↓    Navigate results
  esc         Back to the file picker

Global:
  ?           Toggle help
  q, ctrl+c   Quit

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Index returns the most recently built index, or nil.
func (a *App) Index() driving.Index {
	return a.index
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and its views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.uploadView.SetDimensions(width, height)
	a.askView.SetDimensions(width, height)
}
