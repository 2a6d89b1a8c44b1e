package driving

import (
	"context"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
)

// IngestService turns uploaded files into the text corpus an index is built from.
type IngestService interface {
	// Extract converts each file into a normalised document.
	Extract(ctx context.Context, files []domain.UploadedFile) ([]domain.Document, error)

	// Texts extracts and, when configured, chunks the files into an ordered
	// sequence of non-empty strings.
	Texts(ctx context.Context, files []domain.UploadedFile) ([]string, error)
}
