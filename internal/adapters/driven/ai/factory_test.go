package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa/internal/adapters/driven/embedding/hashing"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("HF_TOKEN", "")

	tests := []struct {
		name      string
		settings  *domain.EmbeddingSettings
		wantModel string
		wantDims  int
		wantErr   error
	}{
		{
			name:     "nil settings",
			settings: nil,
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "empty provider",
			settings: &domain.EmbeddingSettings{},
			wantErr:  domain.ErrUnsupportedType,
		},
		{
			name:     "unknown provider",
			settings: &domain.EmbeddingSettings{Provider: "anthropic"},
			wantErr:  domain.ErrUnsupportedType,
		},
		{
			name:     "openai without key",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI},
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name: "huggingface",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderHuggingFace,
				Model:    domain.DefaultEmbeddingModel,
			},
			wantModel: domain.DefaultEmbeddingModel,
			wantDims:  768,
		},
		{
			name: "ollama known model",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				Model:    "mxbai-embed-large",
			},
			wantModel: "mxbai-embed-large",
			wantDims:  1024,
		},
		{
			name: "openai with key",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "text-embedding-3-large",
				APIKey:   "sk-test",
			},
			wantModel: "text-embedding-3-large",
			wantDims:  3072,
		},
		{
			name: "dimension override",
			settings: &domain.EmbeddingSettings{
				Provider:   domain.AIProviderOpenAI,
				Model:      "text-embedding-3-small",
				APIKey:     "sk-test",
				Dimensions: 512,
			},
			wantModel: "text-embedding-3-small",
			wantDims:  512,
		},
		{
			name:      "hashing defaults",
			settings:  &domain.EmbeddingSettings{Provider: domain.AIProviderHashing},
			wantModel: hashing.DefaultModel,
			wantDims:  hashing.DefaultDimensions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, svc)
			defer svc.Close()
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.Equal(t, tt.wantDims, svc.Dimensions())
		})
	}
}

func TestCreateEmbeddingService_APIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	settings := &domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
	}

	svc, err := CreateEmbeddingService(settings)

	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()
	assert.Equal(t, "text-embedding-3-small", svc.ModelName())
	assert.Empty(t, settings.APIKey, "caller settings must not change")
}

func TestHuggingFaceConfig_Throttled(t *testing.T) {
	cfg := huggingFaceConfig(&domain.EmbeddingSettings{
		Provider: domain.AIProviderHuggingFace,
		Model:    domain.DefaultEmbeddingModel,
		BaseURL:  "http://localhost:8080",
	})

	assert.Equal(t, huggingFaceRateLimit, cfg.RateLimit)
	assert.Positive(t, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 768, cfg.Dimensions)
}

func TestWithEnvAPIKey(t *testing.T) {
	t.Setenv("HF_TOKEN", "hf-env")

	configured := &domain.EmbeddingSettings{Provider: domain.AIProviderHuggingFace, APIKey: "hf-file"}
	assert.Same(t, configured, withEnvAPIKey(configured))

	missing := &domain.EmbeddingSettings{Provider: domain.AIProviderHuggingFace}
	assert.Equal(t, "hf-env", withEnvAPIKey(missing).APIKey)

	keyless := &domain.EmbeddingSettings{Provider: domain.AIProviderOllama}
	assert.Same(t, keyless, withEnvAPIKey(keyless))
}

func TestCreateAndValidateEmbeddingService_Hashing(t *testing.T) {
	svc, err := CreateAndValidateEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider: domain.AIProviderHashing,
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.NoError(t, svc.Close())
}

func TestCreateAndValidateEmbeddingService_Reachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc, err := CreateAndValidateEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider: domain.AIProviderHuggingFace,
		BaseURL:  server.URL,
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	svc.Close()
}

func TestCreateAndValidateEmbeddingService_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	svc, err := CreateAndValidateEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  url,
	})

	assert.Nil(t, svc)
	require.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Contains(t, err.Error(), "service unreachable")
	assert.Contains(t, err.Error(), "pdfqa settings embedding")
}

func TestCreateAndValidateEmbeddingService_InvalidSettings(t *testing.T) {
	svc, err := CreateAndValidateEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider: "bogus",
	})

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestValidateEmbeddingConfig(t *testing.T) {
	t.Run("nil settings", func(t *testing.T) {
		assert.NoError(t, ValidateEmbeddingConfig(nil))
	})

	t.Run("hashing always validates", func(t *testing.T) {
		assert.NoError(t, ValidateEmbeddingConfig(&domain.EmbeddingSettings{Provider: domain.AIProviderHashing}))
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		err := ValidateEmbeddingConfig(&domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenAI,
			APIKey:   "sk-bad",
			BaseURL:  server.URL,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})
}
