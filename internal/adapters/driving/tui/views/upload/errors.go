package upload

import "errors"

// Error definitions for the upload view.
var (
	// ErrNoUploadService indicates that no upload service was provided.
	ErrNoUploadService = errors.New("upload service is required")

	// ErrNoIndexServices indicates that ingest or retrieval is missing.
	ErrNoIndexServices = errors.New("ingest and retrieval services are required")
)
