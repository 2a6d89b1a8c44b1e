package ask

import "errors"

// Error definitions for the ask view.
var (
	// ErrNoRetrievalService indicates that no retrieval service was provided.
	ErrNoRetrievalService = errors.New("retrieval service is required")

	// ErrNoIndex indicates a question was asked before any upload was indexed.
	ErrNoIndex = errors.New("upload PDF files before asking")
)
