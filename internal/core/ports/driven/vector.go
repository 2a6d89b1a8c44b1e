package driven

import "context"

// VectorIndex is an in-memory nearest-neighbour structure over embeddings.
// Entries are keyed by their position in the corpus.
type VectorIndex interface {
	// Add inserts the vector for the text at the given corpus position.
	Add(ctx context.Context, position int, embedding []float32) error

	// Search returns up to k entries nearest to the query, ordered by
	// increasing distance. Ties are ordered by position.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors.
	Len() int

	// Dimensions returns the vector size fixed by the first insert (0 when empty).
	Dimensions() int
}

// VectorIndexFactory creates an empty VectorIndex.
type VectorIndexFactory func() VectorIndex

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Position is the corpus position of the matched vector.
	Position int

	// Distance is the cosine distance (1 - Similarity).
	Distance float64

	// Similarity is the cosine similarity score (-1..1).
	Similarity float64
}
