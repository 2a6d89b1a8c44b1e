package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
	"github.com/custodia-labs/pdfqa/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// Ensure index implements the handle interface.
var _ driving.Index = (*index)(nil)

// index is the handle returned by Build. It keeps the embedding service that
// produced its vectors so queries are always embedded by the same model.
type index struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorIndex
	texts    []string
}

// Len returns the number of indexed texts.
func (i *index) Len() int {
	return len(i.texts)
}

// Model returns the embedding model the index was built with.
func (i *index) Model() string {
	return i.embedder.ModelName()
}

// Dimensions returns the embedding vector size.
func (i *index) Dimensions() int {
	if d := i.vectors.Dimensions(); d > 0 {
		return d
	}
	return i.embedder.Dimensions()
}

// RetrievalService builds in-memory similarity indexes and answers top-k
// queries against them.
type RetrievalService struct {
	embeddingService driven.EmbeddingService
	newVectorIndex   driven.VectorIndexFactory
}

// NewRetrievalService creates a new retrieval service.
// Every index it builds uses embeddingService and a fresh vector index
// from newVectorIndex.
func NewRetrievalService(
	embeddingService driven.EmbeddingService,
	newVectorIndex driven.VectorIndexFactory,
) *RetrievalService {
	return &RetrievalService{
		embeddingService: embeddingService,
		newVectorIndex:   newVectorIndex,
	}
}

// ModelName returns the embedding model used for new indexes.
func (s *RetrievalService) ModelName() string {
	if s.embeddingService == nil {
		return ""
	}
	return s.embeddingService.ModelName()
}

// Build embeds every text in order and returns a handle over them.
// Position i in the handle refers to texts[i]. An empty corpus yields an
// empty index.
func (s *RetrievalService) Build(ctx context.Context, texts []string) (driving.Index, error) {
	logger.Section("Index Build")

	if s.embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.newVectorIndex == nil {
		return nil, fmt.Errorf("%w: no vector index factory", domain.ErrInvalidInput)
	}

	idx := &index{
		embedder: s.embeddingService,
		vectors:  s.newVectorIndex(),
		texts:    append([]string(nil), texts...),
	}

	logger.Debug("Texts: %d, model: %s", len(texts), s.embeddingService.ModelName())
	if len(texts) == 0 {
		logger.Debug("Empty corpus, index has no entries")
		return idx, nil
	}

	logger.Debug("Generating corpus embeddings...")
	embeddings, err := s.embeddingService.EmbedBatch(ctx, idx.texts)
	if err != nil {
		logger.Warn("Corpus embedding failed: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts",
			domain.ErrEmbeddingFailed, len(embeddings), len(texts))
	}

	for pos, embedding := range embeddings {
		if err := idx.vectors.Add(ctx, pos, embedding); err != nil {
			return nil, fmt.Errorf("index text %d: %w", pos, err)
		}
	}

	logger.Info("Indexed %d texts (%d dimensions)", idx.Len(), idx.Dimensions())
	return idx, nil
}

// Retrieve returns up to k source texts nearest to query, most similar first.
func (s *RetrievalService) Retrieve(
	ctx context.Context,
	idx driving.Index,
	query string,
	opts ...driving.RetrieveOption,
) ([]string, error) {
	hits, err := s.RetrieveHits(ctx, idx, query, opts...)
	if err != nil {
		return nil, err
	}
	return domain.Texts(hits), nil
}

// RetrieveHits returns up to k hits ordered by increasing cosine distance.
// Equal distances keep corpus order.
func (s *RetrievalService) RetrieveHits(
	ctx context.Context,
	idx driving.Index,
	query string,
	opts ...driving.RetrieveOption,
) ([]domain.Hit, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q", query)

	o := driving.NewRetrieveOptions(opts...)
	if o.K < 0 {
		return nil, fmt.Errorf("%w: k must not be negative, got %d", domain.ErrInvalidInput, o.K)
	}

	h, ok := idx.(*index)
	if !ok || h == nil {
		return nil, fmt.Errorf("%w: index was not built by this service", domain.ErrInvalidInput)
	}

	logger.Debug("K: %d, indexed: %d", o.K, h.Len())
	if o.K == 0 || h.Len() == 0 {
		return []domain.Hit{}, nil
	}

	embedding, err := h.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	vectorHits, err := h.vectors.Search(ctx, embedding, o.K)
	if err != nil {
		logger.Warn("Vector index search failed: %v", err)
		return nil, fmt.Errorf("search index: %w", err)
	}

	hits := make([]domain.Hit, 0, len(vectorHits))
	for _, vh := range vectorHits {
		if vh.Position < 0 || vh.Position >= len(h.texts) {
			continue
		}
		hits = append(hits, domain.Hit{
			Position:   vh.Position,
			Text:       h.texts[vh.Position],
			Distance:   vh.Distance,
			Similarity: vh.Similarity,
		})
	}

	logger.Info("Retrieved %d of %d texts", len(hits), h.Len())
	return hits, nil
}
