package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driven"
)

// mockRegistry "extracts" a file by upper-casing its bytes.
type mockRegistry struct {
	err  error
	seen []*domain.RawDocument
}

func (m *mockRegistry) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	m.seen = append(m.seen, raw)
	if m.err != nil {
		return nil, m.err
	}
	return &driven.NormaliseResult{Document: domain.Document{
		URI:     raw.URI,
		Content: strings.ToUpper(string(raw.Content)),
	}}, nil
}

func (m *mockRegistry) Register(driven.Normaliser) {}

func (m *mockRegistry) SupportedMIMETypes() []string { return []string{"application/pdf"} }

// mockPipeline splits content on "|".
type mockPipeline struct {
	err error
}

func (m *mockPipeline) Process(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	var chunks []domain.Chunk
	for i, part := range strings.Split(doc.Content, "|") {
		chunks = append(chunks, domain.Chunk{Content: part, Position: i})
	}
	return chunks, nil
}

func pdfFile(name, content string) domain.UploadedFile {
	return domain.UploadedFile{Name: name, MIMEType: "application/pdf", Content: []byte(content)}
}

func TestIngestService_Extract(t *testing.T) {
	registry := &mockRegistry{}
	service := NewIngestService(registry, nil)
	files := []domain.UploadedFile{pdfFile("a.pdf", "first"), pdfFile("b.pdf", "second")}

	docs, err := service.Extract(context.Background(), files)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "FIRST", docs[0].Content)
	assert.Equal(t, "SECOND", docs[1].Content)
	require.Len(t, registry.seen, 2)
	assert.Equal(t, "a.pdf", registry.seen[0].URI)
	assert.Equal(t, "application/pdf", registry.seen[0].MIMEType)
}

func TestIngestService_Extract_NoRegistry(t *testing.T) {
	_, err := NewIngestService(nil, nil).Extract(context.Background(), []domain.UploadedFile{pdfFile("a.pdf", "x")})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestService_Extract_NormaliserError(t *testing.T) {
	service := NewIngestService(&mockRegistry{err: domain.ErrUnsupportedType}, nil)

	_, err := service.Extract(context.Background(), []domain.UploadedFile{pdfFile("scan.pdf", "x")})

	require.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "extract scan.pdf")
}

func TestIngestService_Extract_Cancelled(t *testing.T) {
	registry := &mockRegistry{}
	service := NewIngestService(registry, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Extract(ctx, []domain.UploadedFile{pdfFile("a.pdf", "x")})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, registry.seen)
}

func TestIngestService_Texts_OnePerDocumentWithoutPipeline(t *testing.T) {
	service := NewIngestService(&mockRegistry{}, nil)
	files := []domain.UploadedFile{pdfFile("a.pdf", "one|two"), pdfFile("b.pdf", "three")}

	texts, err := service.Texts(context.Background(), files)

	require.NoError(t, err)
	assert.Equal(t, []string{"ONE|TWO", "THREE"}, texts)
}

func TestIngestService_Texts_ChunksWithPipeline(t *testing.T) {
	service := NewIngestService(&mockRegistry{}, &mockPipeline{})
	files := []domain.UploadedFile{pdfFile("a.pdf", "one|two"), pdfFile("b.pdf", "three|  |")}

	texts, err := service.Texts(context.Background(), files)

	require.NoError(t, err)
	assert.Equal(t, []string{"ONE", "TWO", "THREE"}, texts)
}

func TestIngestService_Texts_SkipsEmptyDocuments(t *testing.T) {
	service := NewIngestService(&mockRegistry{}, &mockPipeline{})
	files := []domain.UploadedFile{pdfFile("blank.pdf", "  \n\t"), pdfFile("b.pdf", "text")}

	texts, err := service.Texts(context.Background(), files)

	require.NoError(t, err)
	assert.Equal(t, []string{"TEXT"}, texts)
}

func TestIngestService_Texts_PipelineError(t *testing.T) {
	cause := errors.New("chunker failed")
	service := NewIngestService(&mockRegistry{}, nil)
	service.SetPipeline(&mockPipeline{err: cause})

	_, err := service.Texts(context.Background(), []domain.UploadedFile{pdfFile("a.pdf", "x")})

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "chunk a.pdf")
}

func TestIngestService_Texts_NoFiles(t *testing.T) {
	texts, err := NewIngestService(&mockRegistry{}, nil).Texts(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, texts)
}
