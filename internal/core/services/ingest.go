package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
	"github.com/custodia-labs/pdfqa/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService turns uploaded files into the ordered text corpus handed
// to the index builder. Chunking happens here, never in the builder.
type IngestService struct {
	normalisers driven.NormaliserRegistry
	pipeline    driven.PostProcessorPipeline
}

// NewIngestService creates a new ingest service.
// The pipeline is optional (can be nil); without it each document is one text.
func NewIngestService(
	normalisers driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
) *IngestService {
	return &IngestService{
		normalisers: normalisers,
		pipeline:    pipeline,
	}
}

// SetPipeline replaces the chunking pipeline.
func (s *IngestService) SetPipeline(pipeline driven.PostProcessorPipeline) {
	s.pipeline = pipeline
}

// Extract converts each file into a normalised document, in input order.
func (s *IngestService) Extract(ctx context.Context, files []domain.UploadedFile) ([]domain.Document, error) {
	logger.Section("Text Extraction")

	if s.normalisers == nil {
		return nil, fmt.Errorf("%w: no normalisers configured", domain.ErrInvalidInput)
	}

	docs := make([]domain.Document, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := s.normalisers.Normalise(ctx, domain.RawFromUpload(file))
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", file.Name, err)
		}
		logger.Debug("Extracted %s: %d characters", file.Name, len(result.Document.Content))
		docs = append(docs, result.Document)
	}

	logger.Info("Extracted %d documents", len(docs))
	return docs, nil
}

// Texts extracts the files and returns the non-empty texts to index.
// With a pipeline each chunk is one text; without, each document is.
func (s *IngestService) Texts(ctx context.Context, files []domain.UploadedFile) ([]string, error) {
	docs, err := s.Extract(ctx, files)
	if err != nil {
		return nil, err
	}

	var texts []string
	for i := range docs {
		doc := &docs[i]
		if strings.TrimSpace(doc.Content) == "" {
			logger.Warn("Skipping %s: no extractable text", doc.URI)
			continue
		}

		if s.pipeline == nil {
			texts = append(texts, doc.Content)
			continue
		}

		chunks, err := s.pipeline.Process(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", doc.URI, err)
		}
		for _, chunk := range chunks {
			if strings.TrimSpace(chunk.Content) != "" {
				texts = append(texts, chunk.Content)
			}
		}
	}

	logger.Info("Corpus: %d texts", len(texts))
	return texts, nil
}
