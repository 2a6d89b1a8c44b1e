package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa/internal/adapters/driven/embedding/hashing"
	vectormemory "github.com/custodia-labs/pdfqa/internal/adapters/driven/vectorindex/memory"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/services"
)

// splitIngest treats each file's content as "|"-separated passages.
type splitIngest struct {
	err error
}

func (s *splitIngest) Extract(context.Context, []domain.UploadedFile) ([]domain.Document, error) {
	return nil, s.err
}

func (s *splitIngest) Texts(_ context.Context, files []domain.UploadedFile) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	var texts []string
	for _, f := range files {
		texts = append(texts, strings.Split(string(f.Content), "|")...)
	}
	return texts, nil
}

func newTestView(ingest *splitIngest) *View {
	retrieval := services.NewRetrievalService(
		hashing.NewEmbeddingService(hashing.Config{}),
		vectormemory.Factory(),
	)
	v := NewView(nil, nil, services.NewUploadService(nil), ingest, retrieval)
	v.SetDimensions(100, 40)
	return v
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, services.NewUploadService(nil), nil, nil)

	require.NotNil(t, v)
	assert.Equal(t, []string{".pdf"}, v.browser.AllowedTypes)
	assert.Empty(t, v.Selected())
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Toggle(t *testing.T) {
	v := newTestView(&splitIngest{})

	v.Toggle("/docs/a.pdf")
	v.Toggle("/docs/b.PDF")
	assert.Equal(t, []string{"/docs/a.pdf", "/docs/b.PDF"}, v.Selected())

	v.Toggle("/docs/a.pdf")
	assert.Equal(t, []string{"/docs/b.PDF"}, v.Selected())
	assert.NoError(t, v.Err())
}

func TestView_Toggle_RejectsNonPDF(t *testing.T) {
	v := newTestView(&splitIngest{})

	v.Toggle("/docs/notes.txt")

	assert.Empty(t, v.Selected())
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
}

func TestView_Toggle_SingleSelection(t *testing.T) {
	v := newTestView(&splitIngest{})
	v.opts.Multiple = false

	v.Toggle("/docs/a.pdf")
	v.Toggle("/docs/b.pdf")

	assert.Equal(t, []string{"/docs/b.pdf"}, v.Selected())
}

func TestView_PickFileWithBrowser(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "paper.pdf", "content")

	v := newTestView(&splitIngest{})
	v.SetDirectory(dir)
	assert.Equal(t, dir, v.Directory())

	cmd := v.Init()
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{path}, v.Selected())
}

func TestView_Upload_EmptySelection(t *testing.T) {
	v := newTestView(&splitIngest{})

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	require.NotNil(t, cmd)
	assert.True(t, v.Busy())

	msg := cmd()
	uploaded, ok := msg.(messages.FilesUploaded)
	require.True(t, ok)
	require.NoError(t, uploaded.Err)
	assert.True(t, uploaded.Upload.Empty())
	assert.False(t, uploaded.Upload.Acknowledged)

	v, cmd = v.Update(msg)
	assert.Nil(t, cmd)
	assert.False(t, v.Busy())
	assert.NotContains(t, v.View(), domain.UploadAcknowledgement)
}

func TestView_Upload_BuildsIndex(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", "The cat sat on the mat.|Quantum computing uses qubits.")
	b := writeFile(t, dir, "b.pdf", "Dogs chase cats.")

	v := newTestView(&splitIngest{})
	v.Toggle(a)
	v.Toggle(b)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateUploading, v.statusbar.State())

	uploaded, ok := cmd().(messages.FilesUploaded)
	require.True(t, ok)
	require.NoError(t, uploaded.Err)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, uploaded.Upload.Names())
	assert.True(t, uploaded.Upload.Acknowledged)

	v, cmd = v.Update(uploaded)
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateIndexing, v.statusbar.State())
	assert.Contains(t, v.View(), domain.UploadAcknowledgement)

	built, ok := cmd().(messages.IndexBuilt)
	require.True(t, ok)
	require.NoError(t, built.Err)
	assert.Equal(t, 3, built.Index.Len())
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, built.Files)

	v, _ = v.Update(built)
	assert.False(t, v.Busy())
	assert.Contains(t, v.statusbar.Message(), "Indexed 3")
}

func TestView_Upload_IgnoresKeysWhileBusy(t *testing.T) {
	v := newTestView(&splitIngest{})
	v.busy = true

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})

	assert.Nil(t, cmd)
}

func TestView_Upload_MissingFile(t *testing.T) {
	v := newTestView(&splitIngest{})
	v.Toggle(filepath.Join(t.TempDir(), "gone.pdf"))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	v, _ = v.Update(cmd())

	assert.Error(t, v.Err())
	assert.False(t, v.Busy())
	assert.Equal(t, status.StateError, v.statusbar.State())
}

func TestView_Upload_IngestError(t *testing.T) {
	ingestErr := errors.New("pdftotext failed")
	path := writeFile(t, t.TempDir(), "a.pdf", "x")

	v := newTestView(&splitIngest{err: ingestErr})
	v.Toggle(path)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	v, cmd = v.Update(cmd())
	built := cmd().(messages.IndexBuilt)
	v, _ = v.Update(built)

	assert.ErrorIs(t, built.Err, ingestErr)
	assert.ErrorIs(t, v.Err(), ingestErr)
}

func TestView_Upload_NoServices(t *testing.T) {
	v := NewView(nil, nil, nil, nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), ErrNoUploadService)
}

func TestView_Clear(t *testing.T) {
	v := newTestView(&splitIngest{})
	v.Toggle("/docs/a.pdf")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Empty(t, v.Selected())
	assert.Equal(t, domain.Upload{}, v.Upload())
}

func TestView_View(t *testing.T) {
	v := newTestView(&splitIngest{})

	view := v.View()
	assert.Contains(t, view, services.UploaderTitle)
	assert.Contains(t, view, services.UploaderLabel)
	assert.Contains(t, view, "No files selected")

	v.Toggle("/docs/a.pdf")
	view = v.View()
	assert.Contains(t, view, "Selected (1)")
	assert.Contains(t, view, "a.pdf")
}
