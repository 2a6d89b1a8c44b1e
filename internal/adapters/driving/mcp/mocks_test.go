package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa/internal/adapters/driven/embedding/hashing"
	vectormemory "github.com/custodia-labs/pdfqa/internal/adapters/driven/vectorindex/memory"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/services"
)

// textIngest treats each uploaded file's content as "|"-separated passages.
type textIngest struct {
	err error
}

func (m *textIngest) Extract(_ context.Context, files []domain.UploadedFile) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	docs := make([]domain.Document, 0, len(files))
	for _, f := range files {
		docs = append(docs, domain.Document{Title: f.Name, Content: string(f.Content)})
	}
	return docs, nil
}

func (m *textIngest) Texts(_ context.Context, files []domain.UploadedFile) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var texts []string
	for _, f := range files {
		texts = append(texts, strings.Split(string(f.Content), "|")...)
	}
	return texts, nil
}

func newTestPorts() *Ports {
	embedder := hashing.NewEmbeddingService(hashing.Config{})
	return &Ports{
		Upload:    services.NewUploadService(nil),
		Ingest:    &textIngest{},
		Retrieval: services.NewRetrievalService(embedder, vectormemory.Factory()),
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(newTestPorts())
	require.NoError(t, err)
	return server
}

var errIngest = errors.New("pdftotext failed")
