package driving

import (
	"context"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
)

// Index is an opaque handle to an in-memory similarity index.
// Only the RetrievalService that built it can query it.
type Index interface {
	// Len returns the number of indexed texts.
	Len() int

	// Model returns the embedding model the index was built with.
	Model() string

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

// RetrieveOptions configures a retrieval query.
type RetrieveOptions struct {
	// K is the maximum number of results.
	K int
}

// RetrieveOption mutates RetrieveOptions.
type RetrieveOption func(*RetrieveOptions)

// WithK sets the number of results. Zero yields no results.
func WithK(k int) RetrieveOption {
	return func(o *RetrieveOptions) {
		o.K = k
	}
}

// NewRetrieveOptions applies opts over the defaults (K = domain.DefaultK).
func NewRetrieveOptions(opts ...RetrieveOption) RetrieveOptions {
	o := RetrieveOptions{K: domain.DefaultK}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// RetrievalService builds similarity indexes and answers top-k queries.
type RetrievalService interface {
	// Build embeds every text and returns a handle over them.
	Build(ctx context.Context, texts []string) (Index, error)

	// Retrieve returns the k texts nearest to query, most similar first.
	Retrieve(ctx context.Context, idx Index, query string, opts ...RetrieveOption) ([]string, error)

	// RetrieveHits is Retrieve with positions and distances.
	RetrieveHits(ctx context.Context, idx Index, query string, opts ...RetrieveOption) ([]domain.Hit, error)

	// ModelName returns the embedding model used for new indexes.
	ModelName() string
}
