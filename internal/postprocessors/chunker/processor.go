// Package chunker provides a fixed-size text chunking processor.
// Chunks are measured in runes and end on whitespace where possible so that
// words are not split between adjacent chunks.
package chunker

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Processor splits document content into fixed-size chunks.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
// Whitespace-only windows produce no chunk.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	runes := []rune(doc.Content)
	n := len(runes)
	if n == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, n/(p.chunkSize-p.overlap)+1)
	start := 0

	for start < n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + p.chunkSize
		if end >= n {
			end = n
		} else {
			end = p.wordBoundary(runes, start, end)
		}

		if text := strings.TrimSpace(string(runes[start:end])); text != "" {
			chunks = append(chunks, domain.Chunk{
				ID:         uuid.New().String(),
				DocumentID: doc.ID,
				Content:    text,
				Position:   len(chunks),
				Metadata: map[string]any{
					"start": start,
					"end":   end,
				},
			})
		}

		if end == n {
			break
		}

		next := end - p.overlap
		if next <= start {
			next = end
		}
		start = p.wordStart(runes, next, end)
	}

	return chunks, nil
}

// wordBoundary moves end back to the last whitespace in the second half of
// the window. Returns end unchanged when there is none.
func (p *Processor) wordBoundary(runes []rune, start, end int) int {
	floor := start + p.chunkSize/2
	for i := end; i > floor; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return end
}

// wordStart moves next forward past a partial word, stopping at limit.
func (p *Processor) wordStart(runes []rune, next, limit int) int {
	if next == 0 || unicode.IsSpace(runes[next-1]) {
		return next
	}
	for i := next; i < limit; i++ {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return next
}
