package domain

import (
	"path/filepath"
	"strings"
)

// UploadAcknowledgement is the message shown after a non-empty selection.
const UploadAcknowledgement = "File uploaded successfully!"

// UploadedFile is an opaque handle to a user-supplied file.
type UploadedFile struct {
	// Name is the base file name as selected by the user.
	Name string

	// Path is the location on disk, when the file was picked from a filesystem.
	Path string

	// MIMEType is the declared content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw file bytes.
	Content []byte
}

// Size returns the content length in bytes.
func (f UploadedFile) Size() int {
	return len(f.Content)
}

// PickerOptions describes the file-selection control a widget must render.
type PickerOptions struct {
	// Title is the heading shown above the picker.
	Title string

	// Label is the prompt shown next to the picker.
	Label string

	// AcceptedTypes lists accepted file extensions without the dot (e.g., "pdf").
	// Empty means any file is accepted.
	AcceptedTypes []string

	// Multiple allows more than one file to be selected.
	Multiple bool
}

// Accepts reports whether a file name matches one of the accepted types.
// Matching is case-insensitive on the extension.
func (o PickerOptions) Accepts(name string) bool {
	if len(o.AcceptedTypes) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, t := range o.AcceptedTypes {
		if strings.EqualFold(strings.TrimPrefix(t, "."), ext) {
			return true
		}
	}
	return false
}

// AllowedExtensions returns the accepted types as dotted extensions (".pdf").
func (o PickerOptions) AllowedExtensions() []string {
	exts := make([]string, 0, len(o.AcceptedTypes))
	for _, t := range o.AcceptedTypes {
		exts = append(exts, "."+strings.TrimPrefix(strings.ToLower(t), "."))
	}
	return exts
}

// Upload is the result of a file selection.
// The zero value represents "no selection".
type Upload struct {
	// Files are exactly the selected files, in selection order.
	Files []UploadedFile

	// Acknowledged is true when a success acknowledgement was rendered.
	Acknowledged bool

	// Message is the acknowledgement text, empty when nothing was selected.
	Message string
}

// Empty returns true if no files were selected.
func (u Upload) Empty() bool {
	return len(u.Files) == 0
}

// Names returns the selected file names in order.
func (u Upload) Names() []string {
	names := make([]string, len(u.Files))
	for i := range u.Files {
		names[i] = u.Files[i].Name
	}
	return names
}
