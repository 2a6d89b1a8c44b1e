package driving

import (
	"context"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
)

// UploadService is the uploader: it describes the file-selection control a
// widget must present and accepts what the user selected through it.
type UploadService interface {
	// Options returns the picker contract (PDF only, multiple files).
	Options() domain.PickerOptions

	// Upload accepts the selected files. The returned Upload holds exactly
	// those files and is acknowledged when non-empty. An empty selection is
	// not an error.
	Upload(ctx context.Context, files []domain.UploadedFile) (domain.Upload, error)
}
