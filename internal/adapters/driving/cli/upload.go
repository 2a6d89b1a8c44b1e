package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfqa/internal/adapters/driving/picker"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload PDF files",
	Long: `Select one or more PDF files and confirm the upload.

Only .pdf files are accepted; other files are skipped with a notice.
With no files nothing is uploaded and no acknowledgement is shown.`,
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	upload, err := uploadFiles(cmd, args)
	if err != nil {
		return err
	}

	if upload.Empty() {
		cmd.Println(mutedStyle.Render("No files selected."))
		return nil
	}

	for _, f := range upload.Files {
		cmd.Printf("  %s (%d bytes)\n", f.Name, f.Size())
	}
	return nil
}

// uploadFiles filters paths through the uploader's picker options, reads
// the accepted files and hands them to the uploader. Rejected paths are
// reported; the acknowledgement is printed when the upload is non-empty.
func uploadFiles(cmd *cobra.Command, paths []string) (domain.Upload, error) {
	if uploadService == nil {
		return domain.Upload{}, errors.New("upload service not configured")
	}

	opts := uploadService.Options()
	accepted, rejected := picker.Filter(paths, opts)
	for _, p := range rejected {
		cmd.PrintErrln(warnStyle.Render(fmt.Sprintf("Skipping %s: %s accepts %v files only", p, opts.Title, opts.AcceptedTypes)))
	}

	ctx := commandContext(cmd)
	files, err := picker.Load(ctx, accepted)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("failed to read files: %w", err)
	}

	upload, err := uploadService.Upload(ctx, files)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("upload failed: %w", err)
	}
	if upload.Acknowledged {
		cmd.PrintErrln(successStyle.Render(upload.Message))
	}
	return upload, nil
}
