package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{name: "huggingface is valid", provider: AIProviderHuggingFace, expected: true},
		{name: "ollama is valid", provider: AIProviderOllama, expected: true},
		{name: "openai is valid", provider: AIProviderOpenAI, expected: true},
		{name: "hashing is valid", provider: AIProviderHashing, expected: true},
		{name: "empty is invalid", provider: AIProvider(""), expected: false},
		{name: "anthropic is invalid", provider: AIProvider("anthropic"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.False(t, AIProviderHuggingFace.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.False(t, AIProviderHashing.RequiresAPIKey())
}

func TestAIProvider_APIKeyEnv(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", AIProviderOpenAI.APIKeyEnv())
	assert.Equal(t, "HF_TOKEN", AIProviderHuggingFace.APIKeyEnv())
	assert.Empty(t, AIProviderOllama.APIKeyEnv())
	assert.Empty(t, AIProviderHashing.APIKeyEnv())
}

func TestAIProvider_Description(t *testing.T) {
	for _, p := range AllEmbeddingProviders() {
		assert.NotEqual(t, unknownDescription, p.Description(), "provider %s", p)
	}
	assert.Equal(t, unknownDescription, AIProvider("nope").Description())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings EmbeddingSettings
		expected bool
	}{
		{
			name:     "empty provider",
			settings: EmbeddingSettings{},
			expected: false,
		},
		{
			name:     "openai without key",
			settings: EmbeddingSettings{Provider: AIProviderOpenAI, Model: "text-embedding-3-small"},
			expected: false,
		},
		{
			name:     "openai with key",
			settings: EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"},
			expected: true,
		},
		{
			name:     "huggingface without key",
			settings: EmbeddingSettings{Provider: AIProviderHuggingFace},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, AIProviderHuggingFace, s.Embedding.Provider)
	assert.Equal(t, "sentence-transformers/all-mpnet-base-v2", s.Embedding.Model)
	assert.Equal(t, 4, s.Retrieval.K)
	assert.True(t, s.Chunking.Enabled)
	assert.Equal(t, 1000, s.Chunking.ChunkSize)
	assert.Equal(t, 200, s.Chunking.Overlap)
}

func TestDefaultEmbeddingModels_CoverAllProviders(t *testing.T) {
	models := DefaultEmbeddingModels()
	for _, p := range AllEmbeddingProviders() {
		model, ok := models[p]
		require.True(t, ok, "missing default model for %s", p)
		assert.NotEmpty(t, model)
	}
}

func TestEmbeddingDimensions_DefaultModel(t *testing.T) {
	assert.Equal(t, 768, EmbeddingDimensions()[DefaultEmbeddingModel])
}
