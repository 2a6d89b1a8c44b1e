// Package memory provides an exact in-memory nearest-neighbour index.
// Every search scans all vectors and ranks them by cosine distance.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/vec/search"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is one indexed vector with its precomputed magnitude. The magnitude
// only screens out zero vectors; CosineDistance is the one distance method
// viant/vec exports on every architecture.
type entry struct {
	position  int
	vector    search.Float32s
	magnitude float32
}

// Index is a brute-force cosine index safe for concurrent use.
type Index struct {
	mu         sync.RWMutex
	entries    []entry
	positions  map[int]struct{}
	dimensions int
}

// New creates an empty index. The first Add fixes its dimension.
func New() *Index {
	return &Index{positions: make(map[int]struct{})}
}

// Factory returns a driven.VectorIndexFactory producing empty indexes.
func Factory() driven.VectorIndexFactory {
	return func() driven.VectorIndex {
		return New()
	}
}

// Add inserts the vector for the text at position. Vectors are copied.
func (i *Index) Add(ctx context.Context, position int, embedding []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(embedding) == 0 {
		return fmt.Errorf("%w: empty embedding for position %d", domain.ErrInvalidInput, position)
	}
	if position < 0 {
		return fmt.Errorf("%w: negative position %d", domain.ErrInvalidInput, position)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.dimensions == 0 {
		i.dimensions = len(embedding)
	} else if len(embedding) != i.dimensions {
		return fmt.Errorf("%w: got %d, index has %d", domain.ErrDimensionMismatch, len(embedding), i.dimensions)
	}
	if _, exists := i.positions[position]; exists {
		return fmt.Errorf("%w: position %d already indexed", domain.ErrInvalidInput, position)
	}

	vector := make(search.Float32s, len(embedding))
	copy(vector, embedding)

	i.entries = append(i.entries, entry{
		position:  position,
		vector:    vector,
		magnitude: vector.Magnitude(),
	})
	i.positions[position] = struct{}{}
	return nil
}

// Search returns up to k entries ordered by increasing cosine distance,
// breaking ties by position. A zero vector on either side has distance 1.
func (i *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []driven.VectorHit{}, nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if len(i.entries) == 0 {
		return []driven.VectorHit{}, nil
	}
	if len(query) != i.dimensions {
		return nil, fmt.Errorf("%w: query has %d, index has %d", domain.ErrDimensionMismatch, len(query), i.dimensions)
	}

	q := search.Float32s(query)
	qm := q.Magnitude()

	hits := make([]driven.VectorHit, len(i.entries))
	for n, e := range i.entries {
		distance := float64(1)
		if qm > 0 && e.magnitude > 0 {
			distance = float64(q.CosineDistance(e.vector))
		}
		hits[n] = driven.VectorHit{
			Position:   e.position,
			Distance:   distance,
			Similarity: 1 - distance,
		}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].Position < hits[b].Position
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Dimensions returns the vector size, or 0 before the first Add.
func (i *Index) Dimensions() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.dimensions
}
