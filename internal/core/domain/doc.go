// Package domain defines the core entities for pdfqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - UploadedFile: A user-selected file handle
//   - Upload: The outcome of a file selection
//   - Document: Text extracted from an uploaded file
//   - Chunk: A caller-side slice of a document
//   - Hit: A single retrieval result
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
