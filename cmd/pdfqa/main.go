// Command pdfqa uploads PDF files and answers questions about them with
// an in-memory similarity index.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/pdfqa/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/pdfqa/internal/adapters/driven/config/file"
	configmemory "github.com/custodia-labs/pdfqa/internal/adapters/driven/config/memory"
	vectormemory "github.com/custodia-labs/pdfqa/internal/adapters/driven/vectorindex/memory"
	"github.com/custodia-labs/pdfqa/internal/adapters/driving/cli"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
	"github.com/custodia-labs/pdfqa/internal/core/services"
	"github.com/custodia-labs/pdfqa/internal/logger"
	"github.com/custodia-labs/pdfqa/internal/normalisers"
	"github.com/custodia-labs/pdfqa/internal/postprocessors"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	loadEnvFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	settingsService := services.NewSettingsService(newConfigStore(), ai.NewConfigValidator())

	uploadService := services.NewUploadService(driven.NotifierFunc(func(message string) {
		logger.Info("%s", message)
	}))

	ingestService := services.NewIngestService(normalisers.NewDefaultRegistry(), nil)
	if settings, err := settingsService.Get(); err == nil {
		registry := postprocessors.NewRegistry()
		postprocessors.RegisterDefaults(registry)
		pipeline, err := postprocessors.FromSettings(registry, settings.Chunking)
		switch {
		case err != nil:
			logger.Warn("chunking disabled: %v", err)
		case pipeline != nil:
			ingestService.SetPipeline(pipeline)
		}
	} else {
		logger.Warn("failed to load settings: %v", err)
	}

	cli.SetVersion(version)
	cli.SetUploadService(uploadService)
	cli.SetIngestService(ingestService)
	cli.SetSettingsService(settingsService)
	cli.SetRetrievalFactory(func(ctx context.Context) (driving.RetrievalService, error) {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		embedder, err := ai.CreateAndValidateEmbeddingService(ctx, &settings.Embedding)
		if err != nil {
			return nil, err
		}
		logger.Debug("Embedding model: %s (%d dimensions)", embedder.ModelName(), embedder.Dimensions())
		return services.NewRetrievalService(embedder, vectormemory.Factory()), nil
	})

	return cli.ExecuteContext(ctx)
}

// loadEnvFile loads API keys such as OPENAI_API_KEY or HF_TOKEN from
// $PDFQA_ENV_FILE (default .env). Variables already set are kept.
func loadEnvFile() {
	envFile := os.Getenv("PDFQA_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", envFile, err)
	}
}

// newConfigStore opens the TOML settings file, falling back to an
// in-memory store when the config directory is unusable.
func newConfigStore() driven.ConfigStore {
	store, err := configfile.NewConfigStore("")
	if err != nil {
		logger.Warn("using in-memory settings: %v", err)
		return configmemory.NewConfigStore()
	}
	return store
}
