package postprocessors

import (
	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa/internal/postprocessors/chunker"
	"github.com/custodia-labs/pdfqa/internal/postprocessors/whitespace"
)

// RegisterDefaults registers all built-in processors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
	r.Register("whitespace", buildWhitespace)
}

// FromSettings builds the chunking pipeline described by settings:
// chunker followed by whitespace cleanup. Returns nil when chunking is
// disabled, meaning each document is indexed as a single text.
func FromSettings(r *Registry, settings domain.ChunkingSettings) (*Pipeline, error) {
	if !settings.Enabled {
		return nil, nil
	}

	chunk, err := r.Build("chunker", map[string]any{
		"chunk_size": settings.ChunkSize,
		"overlap":    settings.Overlap,
	})
	if err != nil {
		return nil, err
	}
	clean, err := r.Build("whitespace", nil)
	if err != nil {
		return nil, err
	}

	return NewPipeline(chunk, clean), nil
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Characters per chunk (default: 1000)
//   - overlap (int): Overlapping characters between chunks (default: 200)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if _, ok := cfg["overlap"]; ok {
		opts = append(opts, chunker.WithOverlap(getIntFromConfig(cfg, "overlap")))
	}

	return chunker.New(opts...), nil
}

func buildWhitespace(_ map[string]any) (driven.PostProcessor, error) {
	return whitespace.New(), nil
}

// getIntFromConfig extracts an int from a generic config map.
// Handles int, int64 and float64, which is what TOML and JSON decoding produce.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
