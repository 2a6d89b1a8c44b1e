// Package ai provides factory functions for creating embedding service adapters.
package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/pdfqa/internal/adapters/driven/embedding/hashing"
	hfembed "github.com/custodia-labs/pdfqa/internal/adapters/driven/embedding/huggingface"
	ollamaembed "github.com/custodia-labs/pdfqa/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/pdfqa/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/pdfqa/internal/adapters/driven/embedding/ratelimit"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// openAIRateLimit keeps batch indexing under the lowest OpenAI tier.
var openAIRateLimit = ratelimit.Config{RequestsPerSecond: 50, BurstSize: 10}

// huggingFaceRateLimit stays under the hosted Inference API's free quota.
// Each request carries a whole batch, so local TEI servers are unaffected.
var huggingFaceRateLimit = ratelimit.Config{RequestsPerSecond: 5, BurstSize: 5}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Every failure wraps domain.ErrEmbeddingUnavailable.
func CreateAndValidateEmbeddingService(
	ctx context.Context,
	settings *domain.EmbeddingSettings,
) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'pdfqa settings embedding' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'pdfqa settings embedding' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
// Used by the settings command before saving a provider.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil {
		return nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateEmbeddingService creates the embedding service selected by settings.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, fmt.Errorf("embedding settings are required: %w", domain.ErrInvalidInput)
	}
	settings = withEnvAPIKey(settings)
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("unsupported embedding provider %q: %w", settings.Provider, domain.ErrUnsupportedType)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%s requires an API key: %w", settings.Provider, domain.ErrInvalidInput)
	}

	switch settings.Provider {
	case domain.AIProviderHuggingFace:
		return createHuggingFaceEmbedding(settings), nil

	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings)

	case domain.AIProviderHashing:
		return hashing.NewEmbeddingService(hashing.Config{
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		}), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider %q: %w", settings.Provider, domain.ErrUnsupportedType)
	}
}

// withEnvAPIKey fills a missing API key from the provider's environment
// variable. The caller's settings are never modified.
func withEnvAPIKey(settings *domain.EmbeddingSettings) *domain.EmbeddingSettings {
	if settings.APIKey != "" {
		return settings
	}
	env := settings.Provider.APIKeyEnv()
	if env == "" {
		return settings
	}
	key := os.Getenv(env)
	if key == "" {
		return settings
	}

	withKey := *settings
	withKey.APIKey = key
	return &withKey
}

// dimensionsFor prefers an explicit override, then the known model size.
func dimensionsFor(settings *domain.EmbeddingSettings) int {
	if settings.Dimensions > 0 {
		return settings.Dimensions
	}
	return domain.EmbeddingDimensions()[settings.Model]
}

func createHuggingFaceEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	return hfembed.NewEmbeddingService(huggingFaceConfig(settings))
}

func huggingFaceConfig(settings *domain.EmbeddingSettings) hfembed.Config {
	return hfembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		APIKey:     settings.APIKey,
		Dimensions: dimensionsFor(settings),
		RateLimit:  huggingFaceRateLimit,
	}
}

func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensionsFor(settings),
	})
}

func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensionsFor(settings),
		RateLimit:  openAIRateLimit,
	})
}
