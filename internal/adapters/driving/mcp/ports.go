package mcp

import (
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Upload accepts files for index_files.
	Upload driving.UploadService

	// Ingest extracts and chunks uploaded files.
	Ingest driving.IngestService

	// Retrieval builds indexes and answers queries.
	Retrieval driving.RetrievalService
}

// Validate ensures all required ports are set.
// Upload and Ingest are optional; without them only index_texts works.
func (p *Ports) Validate() error {
	if p == nil || p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}

// canIndexFiles reports whether index_files is available.
func (p *Ports) canIndexFiles() bool {
	return p.Upload != nil && p.Ingest != nil
}
