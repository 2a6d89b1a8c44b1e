// Package upload provides the PDF picker view for the TUI.
package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfqa/internal/adapters/driving/picker"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
)

// reservedRows is the space kept for header, selection and status bar.
const reservedRows = 12

// View lets the user browse for PDF files, collect a selection and
// upload it. After a successful upload it extracts the text and builds
// the index the ask view queries.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	browser   filepicker.Model
	statusbar *status.Bar
	opts      domain.PickerOptions

	uploadService    driving.UploadService
	ingestService    driving.IngestService
	retrievalService driving.RetrievalService
	ctx              context.Context

	selected []string
	upload   domain.Upload
	width    int
	height   int
	ready    bool
	busy     bool
	err      error
}

// NewView creates a new upload view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	uploadService driving.UploadService,
	ingestService driving.IngestService,
	retrievalService driving.RetrievalService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	var opts domain.PickerOptions
	if uploadService != nil {
		opts = uploadService.Options()
	}

	browser := filepicker.New()
	browser.AllowedTypes = opts.AllowedExtensions()
	browser.ShowPermissions = false
	browser.ShowSize = true

	statusbar := status.NewBar(s, km)
	statusbar.SetHints(km.UploadHelp())

	return &View{
		styles:           s,
		keymap:           km,
		browser:          browser,
		statusbar:        statusbar,
		opts:             opts,
		uploadService:    uploadService,
		ingestService:    ingestService,
		retrievalService: retrievalService,
		ctx:              context.Background(),
		width:            80,
		height:           24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDirectory sets the directory the browser starts in.
// It takes effect on the next Init.
func (v *View) SetDirectory(dir string) {
	if dir != "" {
		v.browser.CurrentDirectory = dir
	}
}

// Directory returns the directory being browsed.
func (v *View) Directory() string {
	return v.browser.CurrentDirectory
}

// Init reads the starting directory.
func (v *View) Init() tea.Cmd {
	return v.browser.Init()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.FilesUploaded:
		return v, v.handleUploaded(msg)

	case messages.IndexBuilt:
		v.handleIndexBuilt(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.browser, cmd = v.browser.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.busy {
		return v, nil
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Upload):
		return v, v.submit()
	case keymap.Matches(msg.String(), v.keymap.Clear):
		v.Reset()
		return v, nil
	}

	var cmd tea.Cmd
	v.browser, cmd = v.browser.Update(msg)

	if ok, path := v.browser.DidSelectFile(msg); ok {
		v.Toggle(path)
	} else if ok, path := v.browser.DidSelectDisabledFile(msg); ok {
		v.setError(fmt.Errorf("%w: %s is not a PDF file", domain.ErrInvalidInput, filepath.Base(path)))
	}

	return v, cmd
}

// Toggle adds path to the selection, or removes it when already selected.
// Without multiple selection the path replaces the selection.
func (v *View) Toggle(path string) {
	if !v.opts.Accepts(path) {
		v.setError(fmt.Errorf("%w: %s is not a PDF file", domain.ErrInvalidInput, filepath.Base(path)))
		return
	}

	v.err = nil
	v.statusbar.SetState(status.StateReady)

	switch i := slices.Index(v.selected, path); {
	case i >= 0:
		v.selected = slices.Delete(v.selected, i, i+1)
	case !v.opts.Multiple:
		v.selected = []string{path}
	default:
		v.selected = append(v.selected, path)
	}
	v.statusbar.SetMessage(fmt.Sprintf("%d file(s) selected", len(v.selected)))
}

// submit uploads the selected files.
func (v *View) submit() tea.Cmd {
	if v.uploadService == nil {
		v.setError(ErrNoUploadService)
		return nil
	}

	paths := slices.Clone(v.selected)
	ctx := v.ctx
	uploadService := v.uploadService

	v.busy = true
	v.err = nil
	v.statusbar.SetState(status.StateUploading)

	return func() tea.Msg {
		files, err := picker.Load(ctx, paths)
		if err != nil {
			return messages.FilesUploaded{Err: err}
		}
		upload, err := uploadService.Upload(ctx, files)
		return messages.FilesUploaded{Upload: upload, Err: err}
	}
}

// handleUploaded records the upload and starts indexing when it is non-empty.
func (v *View) handleUploaded(msg messages.FilesUploaded) tea.Cmd {
	if msg.Err != nil {
		v.busy = false
		v.setError(msg.Err)
		return nil
	}

	v.upload = msg.Upload
	if msg.Upload.Empty() {
		v.busy = false
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("No files selected")
		return nil
	}

	if v.ingestService == nil || v.retrievalService == nil {
		v.busy = false
		v.setError(ErrNoIndexServices)
		return nil
	}

	v.statusbar.SetState(status.StateIndexing)
	return buildIndex(v.ctx, v.ingestService, v.retrievalService, msg.Upload)
}

// buildIndex extracts the upload's text and indexes it.
func buildIndex(
	ctx context.Context,
	ingest driving.IngestService,
	retrieval driving.RetrievalService,
	upload domain.Upload,
) tea.Cmd {
	return func() tea.Msg {
		texts, err := ingest.Texts(ctx, upload.Files)
		if err != nil {
			return messages.IndexBuilt{Err: fmt.Errorf("extract text: %w", err)}
		}

		idx, err := retrieval.Build(ctx, texts)
		if err != nil {
			return messages.IndexBuilt{Err: err}
		}
		return messages.IndexBuilt{Index: idx, Files: upload.Names()}
	}
}

func (v *View) handleIndexBuilt(msg messages.IndexBuilt) {
	v.busy = false
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(fmt.Sprintf("Indexed %d passage(s)", msg.Index.Len()))
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	title := v.opts.Title
	if title == "" {
		title = "Upload"
	}
	sections = append(sections,
		v.styles.Title.Render(title),
		v.styles.Normal.Render(v.opts.Label)+" "+v.styles.Muted.Render(v.browser.CurrentDirectory),
		"",
		v.browser.View(),
		"",
	)

	if len(v.selected) == 0 {
		sections = append(sections, v.styles.Muted.Render("No files selected"))
	} else {
		names := make([]string, 0, len(v.selected))
		for _, p := range v.selected {
			names = append(names, v.styles.Picked.Render("  + "+filepath.Base(p)))
		}
		sections = append(sections,
			v.styles.Subtitle.Render(fmt.Sprintf("Selected (%d)", len(v.selected))),
			strings.Join(names, "\n"),
		)
	}

	if v.upload.Acknowledged {
		sections = append(sections, "", v.styles.Acknowledgement.Render(v.upload.Message))
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	pickerHeight := height - reservedRows
	if pickerHeight < 3 {
		pickerHeight = 3
	}
	v.browser, _ = v.browser.Update(tea.WindowSizeMsg{Width: width, Height: pickerHeight})
	v.statusbar.SetWidth(width)
}

// Selected returns the selected file paths in selection order.
func (v *View) Selected() []string {
	return slices.Clone(v.selected)
}

// Upload returns the last upload result.
func (v *View) Upload() domain.Upload {
	return v.upload
}

// Busy reports whether an upload or index build is in progress.
func (v *View) Busy() bool {
	return v.busy
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the selection and the last upload.
func (v *View) Reset() {
	v.selected = nil
	v.upload = domain.Upload{}
	v.err = nil
	v.busy = false
	v.statusbar.Clear()
}
