// Package picker turns paths chosen in a file-selection widget into
// uploaded file handles. It is shared by the CLI, TUI and MCP adapters.
package picker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/normalisers"
)

// Filter splits paths into those the picker accepts and those it rejects.
// When the picker does not allow multiple files only the first accepted
// path is kept; the others are rejected.
func Filter(paths []string, opts domain.PickerOptions) (accepted, rejected []string) {
	for _, p := range paths {
		switch {
		case !opts.Accepts(p):
			rejected = append(rejected, p)
		case !opts.Multiple && len(accepted) == 1:
			rejected = append(rejected, p)
		default:
			accepted = append(accepted, p)
		}
	}
	return accepted, rejected
}

// Load reads each path into an UploadedFile, in order.
// Directories and unreadable paths are errors.
func Load(ctx context.Context, paths []string) ([]domain.UploadedFile, error) {
	files := make([]domain.UploadedFile, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file, err := loadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func loadFile(path string) (domain.UploadedFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("open %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.UploadedFile{}, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(abs)
	return domain.UploadedFile{
		Name:     name,
		Path:     abs,
		MIMEType: normalisers.DetectMIMEType(name, ""),
		Content:  content,
	}, nil
}
