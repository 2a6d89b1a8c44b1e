// Package mcp provides an MCP (Model Context Protocol) server adapter for pdfqa.
// It lets AI assistants index PDF files or text and retrieve the passages
// most similar to a query.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// ErrMissingUploadService is returned by index_files when no uploader is configured.
var ErrMissingUploadService = errors.New("mcp: upload and ingest services are required to index files")

// ErrNoIndex is returned by retrieve before anything has been indexed.
var ErrNoIndex = errors.New("mcp: nothing indexed yet, call index_files or index_texts first")
