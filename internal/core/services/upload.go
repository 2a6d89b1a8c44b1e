package services

import (
	"context"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
	"github.com/custodia-labs/pdfqa/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// Picker labels shown by every upload widget.
const (
	UploaderTitle = "PDF Uploader"
	UploaderLabel = "Choose a PDF file"
)

// UploadService accepts the files a user picked and acknowledges them.
type UploadService struct {
	notifier driven.Notifier
}

// NewUploadService creates a new upload service.
// The notifier is optional (can be nil).
func NewUploadService(notifier driven.Notifier) *UploadService {
	return &UploadService{notifier: notifier}
}

// Options returns the picker contract: PDF only, multiple files.
func (s *UploadService) Options() domain.PickerOptions {
	return domain.PickerOptions{
		Title:         UploaderTitle,
		Label:         UploaderLabel,
		AcceptedTypes: []string{"pdf"},
		Multiple:      true,
	}
}

// Upload returns exactly the given files. A non-empty selection is
// acknowledged and reported through the notifier.
func (s *UploadService) Upload(_ context.Context, files []domain.UploadedFile) (domain.Upload, error) {
	if len(files) == 0 {
		logger.Debug("Upload: empty selection")
		return domain.Upload{}, nil
	}

	upload := domain.Upload{
		Files:        files,
		Acknowledged: true,
		Message:      domain.UploadAcknowledgement,
	}
	logger.Debug("Upload: %d file(s) %v", len(files), upload.Names())

	if s.notifier != nil {
		s.notifier.Success(upload.Message)
	}
	return upload, nil
}

