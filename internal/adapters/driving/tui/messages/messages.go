// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewUpload is the PDF picker.
	ViewUpload ViewType = iota
	// ViewAsk is the question input and results view.
	ViewAsk
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewUpload:
		return "upload"
	case ViewAsk:
		return "ask"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// FilesUploaded carries the uploader's result for the picked files.
type FilesUploaded struct {
	Upload domain.Upload
	Err    error
}

// IndexBuilt carries the index over the uploaded files' text.
type IndexBuilt struct {
	Index driving.Index
	Files []string
	Err   error
}

// RetrievalCompleted carries the passages most similar to a question.
type RetrievalCompleted struct {
	Query string
	Hits  []domain.Hit
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
