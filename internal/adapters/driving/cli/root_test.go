package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa/internal/adapters/driven/ai"
	configmemory "github.com/custodia-labs/pdfqa/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/pdfqa/internal/adapters/driven/embedding/hashing"
	vectormemory "github.com/custodia-labs/pdfqa/internal/adapters/driven/vectorindex/memory"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/services"
)

// splitIngest treats each file's content as "|"-separated passages.
type splitIngest struct{}

func (splitIngest) Extract(_ context.Context, files []domain.UploadedFile) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(files))
	for _, f := range files {
		docs = append(docs, domain.Document{Title: f.Name, Content: string(f.Content)})
	}
	return docs, nil
}

func (splitIngest) Texts(_ context.Context, files []domain.UploadedFile) ([]string, error) {
	var texts []string
	for _, f := range files {
		texts = append(texts, strings.Split(string(f.Content), "|")...)
	}
	return texts, nil
}

// setupTestServices wires in-memory services into the command globals and
// restores the previous ones when the test ends.
func setupTestServices(t *testing.T) *services.SettingsService {
	t.Helper()

	prevUpload, prevIngest := uploadService, ingestService
	prevSettings, prevRetrieval, prevFactory := settingsService, retrievalService, retrievalFactory
	t.Cleanup(func() {
		uploadService, ingestService = prevUpload, prevIngest
		settingsService, retrievalService, retrievalFactory = prevSettings, prevRetrieval, prevFactory
	})

	settings := services.NewSettingsService(configmemory.NewConfigStore(), ai.NewConfigValidator())
	uploadService = services.NewUploadService(nil)
	ingestService = splitIngest{}
	settingsService = settings
	retrievalService = services.NewRetrievalService(
		hashing.NewEmbeddingService(hashing.Config{}),
		vectormemory.Factory(),
	)
	retrievalFactory = nil

	return settings
}

// resetFlags restores every flag of cmd to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
}

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	for _, c := range rootCmd.Commands() {
		resetFlags(c)
		for _, sub := range c.Commands() {
			resetFlags(sub)
		}
	}

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestFile creates a file named name with content in a temp directory.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
