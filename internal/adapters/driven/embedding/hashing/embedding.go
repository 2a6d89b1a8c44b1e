// Package hashing provides an offline embedding service based on feature
// hashing of word unigrams and bigrams. It needs no model download or
// network access, and identical text always maps to the identical vector.
//
// Lower-cased words carry the lexical signal. Surface features (the raw
// whitespace-separated fields and the whole text) keep strings that differ
// only in case or punctuation apart, so an exact query always ranks its own
// text first.
package hashing

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "hashing-bigram"
	DefaultDimensions = 1024
)

// surfaceWeight is the weight of raw-field and whole-text features relative
// to a lexical word feature.
const surfaceWeight = 0.5

// Feature prefixes keep surface features out of the word feature space.
const (
	fieldPrefix = "\x00"
	textPrefix  = "\x01"
)

// Config holds hashing embedder configuration.
type Config struct {
	// Model is the name reported by ModelName.
	Model string

	// Dimensions is the number of hash buckets.
	Dimensions int
}

// EmbeddingService maps text to L2-normalised bag-of-features vectors.
type EmbeddingService struct {
	model      string
	dimensions int
}

// NewEmbeddingService creates a new hashing embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}
	return &EmbeddingService{
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

// Embed generates a vector embedding for the given text.
// Every text, including "" and punctuation-only text, yields a unit vector.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, s.dimensions)
	tokens := tokenize(text)
	for i, tok := range tokens {
		vec[s.bucket(tok)]++
		if i > 0 {
			vec[s.bucket(tokens[i-1]+" "+tok)]++
		}
	}
	for _, field := range strings.Fields(text) {
		vec[s.bucket(fieldPrefix+field)] += surfaceWeight
	}
	vec[s.bucket(textPrefix+text)] += surfaceWeight

	normalise(vec)
	return vec, nil
}

// EmbedBatch generates one embedding per text, in input order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the model identifier.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping always succeeds.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

func (s *EmbeddingService) bucket(feature string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	return int(h.Sum32() % uint32(s.dimensions))
}

// tokenize lower-cases text and splits it into runs of letters and digits.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func normalise(vec []float32) {
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		return
	}
	norm := float32(1 / math.Sqrt(sumSq))
	for i := range vec {
		vec[i] *= norm
	}
}
