// Package whitespace collapses the line breaks and runs of spaces that
// pdftotext leaves in extracted text.
package whitespace

import (
	"context"
	"strings"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// Processor normalises whitespace inside each chunk.
type Processor struct{}

// New creates a new whitespace processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "whitespace"
}

// Process rewrites every chunk with single spaces between words.
// Chunks left empty are dropped and positions renumbered.
func (p *Processor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	out := make([]domain.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		content := strings.Join(strings.Fields(chunk.Content), " ")
		if content == "" {
			continue
		}
		chunk.Content = content
		chunk.Position = len(out)
		out = append(out, chunk)
	}
	return out, nil
}
