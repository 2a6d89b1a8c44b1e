package driven

import "github.com/custodia-labs/pdfqa/internal/core/domain"

// EmbeddingValidator checks that an embedding configuration can reach its provider.
type EmbeddingValidator interface {
	// ValidateEmbedding pings the configured provider.
	// Returns nil if the configuration is valid or not configured.
	ValidateEmbedding(config *domain.EmbeddingSettings) error
}
