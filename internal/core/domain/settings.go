package domain

const unknownDescription = "Unknown"

// DefaultEmbeddingModel is the pretrained sentence-embedding model used when
// none is configured.
const DefaultEmbeddingModel = "sentence-transformers/all-mpnet-base-v2"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderHuggingFace is a Hugging Face text-embeddings-inference server.
	AIProviderHuggingFace AIProvider = "huggingface"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderHashing is the offline feature-hashing embedder.
	AIProviderHashing AIProvider = "hashing"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderHuggingFace, AIProviderOllama, AIProviderOpenAI, AIProviderHashing:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// APIKeyEnv names the environment variable read when no API key is
// configured, or "" when the provider takes no key.
func (p AIProvider) APIKeyEnv() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderHuggingFace:
		return "HF_TOKEN"
	default:
		return ""
	}
}

// IsLocal returns true if this provider runs without a network service.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderHashing
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderHuggingFace:
		return "Hugging Face (text-embeddings-inference)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderHashing:
		return "Hashing (offline, lexical)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Hugging Face, Ollama, OpenAI-compatible).
	BaseURL string

	// APIKey is the API key (for OpenAI, optional for Hugging Face).
	APIKey string

	// Dimensions overrides the model's known vector size. Zero means "known default".
	Dimensions int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// RetrievalSettings controls retrieval defaults.
type RetrievalSettings struct {
	// K is the default number of results per query.
	K int
}

// ChunkingSettings controls caller-side chunking before indexing.
type ChunkingSettings struct {
	// Enabled turns chunking on. When off, each document is one text.
	Enabled bool

	// ChunkSize is the number of characters per chunk.
	ChunkSize int

	// Overlap is the number of characters shared between adjacent chunks.
	Overlap int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Retrieval holds retrieval settings.
	Retrieval RetrievalSettings

	// Chunking holds chunking settings.
	Chunking ChunkingSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderHuggingFace,
			Model:    DefaultEmbeddingModel,
		},
		Retrieval: RetrievalSettings{
			K: DefaultK,
		},
		Chunking: ChunkingSettings{
			Enabled:   true,
			ChunkSize: 1000,
			Overlap:   200,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderHuggingFace,
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderHashing,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderHuggingFace: DefaultEmbeddingModel,
		AIProviderOllama:      "nomic-embed-text",
		AIProviderOpenAI:      "text-embedding-3-small",
		AIProviderHashing:     "hashing-bigram",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Sentence-transformers models
		"sentence-transformers/all-mpnet-base-v2": 768,
		"sentence-transformers/all-MiniLM-L6-v2":  384,
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// DefaultBaseURLs returns the endpoint used when a provider has no base URL.
// Providers absent from the map need none.
func DefaultBaseURLs() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderHuggingFace: "http://localhost:8080",
		AIProviderOllama:      "http://localhost:11434",
	}
}
