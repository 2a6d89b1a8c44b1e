// Package tui provides an interactive terminal user interface for pdfqa.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Upload accepts the files picked in the upload view.
	Upload driving.UploadService

	// Ingest extracts and chunks uploaded files.
	Ingest driving.IngestService

	// Retrieval builds the index and answers questions.
	Retrieval driving.RetrievalService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
