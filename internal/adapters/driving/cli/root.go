// Package cli provides the cobra command tree for pdfqa.
// It is a driving adapter: commands translate flags and arguments into
// calls on the core's driving ports.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
	"github.com/custodia-labs/pdfqa/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// verbose enables diagnostic logging to stderr.
var verbose bool

// Services injected by main.
var (
	uploadService    driving.UploadService
	ingestService    driving.IngestService
	settingsService  driving.SettingsService
	retrievalService driving.RetrievalService
	retrievalFactory RetrievalFactory
)

// RetrievalFactory creates the retrieval service on first use, so commands
// that never embed anything do not contact the embedding provider.
type RetrievalFactory func(ctx context.Context) (driving.RetrievalService, error)

var rootCmd = &cobra.Command{
	Use:   "pdfqa",
	Short: "Ask questions about PDF files",
	Long: `pdfqa uploads PDF files, splits their text into chunks, embeds the
chunks with a sentence-embedding model and answers queries with the most
similar chunks.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic logs to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetUploadService sets the uploader.
func SetUploadService(s driving.UploadService) {
	uploadService = s
}

// SetIngestService sets the text extraction service.
func SetIngestService(s driving.IngestService) {
	ingestService = s
}

// SetSettingsService sets the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetRetrievalService sets a ready retrieval service.
func SetRetrievalService(s driving.RetrievalService) {
	retrievalService = s
}

// SetRetrievalFactory sets a lazily invoked retrieval service constructor.
func SetRetrievalFactory(f RetrievalFactory) {
	retrievalFactory = f
	retrievalService = nil
}

// getRetrievalService returns the retrieval service, creating it on first use.
func getRetrievalService(ctx context.Context) (driving.RetrievalService, error) {
	if retrievalService != nil {
		return retrievalService, nil
	}
	if retrievalFactory == nil {
		return nil, errors.New("retrieval service not configured")
	}

	svc, err := retrievalFactory(ctx)
	if err != nil {
		return nil, err
	}
	retrievalService = svc
	return svc, nil
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
