package domain

// RawDocument is an uploaded file before text extraction.
type RawDocument struct {
	// URI is the original location (file path or upload name).
	URI string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains uploader-specific key-value pairs.
	Metadata map[string]any
}

// RawFromUpload converts an uploaded file handle into a raw document.
func RawFromUpload(f UploadedFile) *RawDocument {
	uri := f.Path
	if uri == "" {
		uri = f.Name
	}
	return &RawDocument{
		URI:      uri,
		MIMEType: f.MIMEType,
		Content:  f.Content,
		Metadata: map[string]any{"title": f.Name},
	}
}
