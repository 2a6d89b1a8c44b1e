package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
)

func TestServer_handleIndexTexts(t *testing.T) {
	server := newTestServer(t)

	_, out, err := server.handleIndexTexts(context.Background(), nil, IndexTextsInput{
		Texts: []string{"The cat sat on the mat.", "Quantum computing uses qubits."},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.IndexID)
	assert.Equal(t, 2, out.Texts)
	assert.Equal(t, "hashing-bigram", out.Model)
	assert.Equal(t, 1024, out.Dimensions)
	assert.Empty(t, out.Files)
}

func TestServer_handleIndexTexts_Empty(t *testing.T) {
	server := newTestServer(t)

	_, out, err := server.handleIndexTexts(context.Background(), nil, IndexTextsInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Texts)

	_, res, err := server.handleRetrieve(context.Background(), nil, RetrieveInput{Query: "anything"})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
}

func TestServer_handleIndexFiles(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "notes.pdf")
	txt := filepath.Join(dir, "readme.txt")
	require.NoError(t, os.WriteFile(pdf, []byte("The cat sat on the mat.|Quantum computing uses qubits."), 0o600))
	require.NoError(t, os.WriteFile(txt, []byte("ignored"), 0o600))

	server := newTestServer(t)

	_, out, err := server.handleIndexFiles(context.Background(), nil, IndexFilesInput{
		Paths: []string{pdf, txt},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Texts)
	assert.Equal(t, []string{"notes.pdf"}, out.Files)
	assert.Equal(t, []string{txt}, out.Skipped)
	assert.Equal(t, domain.UploadAcknowledgement, out.Message)

	_, res, err := server.handleRetrieve(context.Background(), nil, RetrieveInput{Query: "Where did the cat sit?"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Results)
	assert.Equal(t, "The cat sat on the mat.", res.Results[0].Text)
	assert.Equal(t, out.IndexID, res.IndexID)
}

func TestServer_handleIndexFiles_NoPDFs(t *testing.T) {
	server := newTestServer(t)

	_, _, err := server.handleIndexFiles(context.Background(), nil, IndexFilesInput{
		Paths: []string{"/tmp/readme.txt"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, server.snapshot())
}

func TestServer_handleIndexFiles_MissingFile(t *testing.T) {
	server := newTestServer(t)

	_, _, err := server.handleIndexFiles(context.Background(), nil, IndexFilesInput{
		Paths: []string{filepath.Join(t.TempDir(), "missing.pdf")},
	})
	assert.Error(t, err)
	assert.Nil(t, server.snapshot())
}

func TestServer_handleIndexFiles_IngestError(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0o600))

	ports := newTestPorts()
	ports.Ingest = &textIngest{err: errIngest}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleIndexFiles(context.Background(), nil, IndexFilesInput{Paths: []string{pdf}})
	assert.ErrorIs(t, err, errIngest)
}

func TestServer_handleIndexFiles_WithoutUploader(t *testing.T) {
	ports := newTestPorts()
	ports.Upload = nil
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleIndexFiles(context.Background(), nil, IndexFilesInput{Paths: []string{"a.pdf"}})
	assert.ErrorIs(t, err, ErrMissingUploadService)
}

func TestServer_handleRetrieve(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)
	corpus := []string{
		"The cat sat on the mat.",
		"Quantum computing uses qubits.",
		"Dogs chase cats.",
		"Stock markets fell today.",
		"Cats like warm mats.",
		"Qubits can be entangled.",
	}
	_, _, err := server.handleIndexTexts(ctx, nil, IndexTextsInput{Texts: corpus})
	require.NoError(t, err)

	t.Run("default k", func(t *testing.T) {
		_, out, err := server.handleRetrieve(ctx, nil, RetrieveInput{Query: "The cat sat on the mat."})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultK, out.Count)
		require.Len(t, out.Results, domain.DefaultK)
		assert.Equal(t, 1, out.Results[0].Rank)
		assert.Equal(t, 0, out.Results[0].Position)
		assert.InDelta(t, 1.0, out.Results[0].Similarity, 1e-5)
		for i := 1; i < len(out.Results); i++ {
			assert.GreaterOrEqual(t, out.Results[i].Distance, out.Results[i-1].Distance)
		}
	})

	t.Run("explicit k", func(t *testing.T) {
		k := 2
		_, out, err := server.handleRetrieve(ctx, nil, RetrieveInput{Query: "qubits", K: &k})
		require.NoError(t, err)
		assert.Len(t, out.Results, 2)
	})

	t.Run("k zero", func(t *testing.T) {
		k := 0
		_, out, err := server.handleRetrieve(ctx, nil, RetrieveInput{Query: "qubits", K: &k})
		require.NoError(t, err)
		assert.Empty(t, out.Results)
		assert.Equal(t, 0, out.Count)
	})

	t.Run("k larger than corpus", func(t *testing.T) {
		k := 50
		_, out, err := server.handleRetrieve(ctx, nil, RetrieveInput{Query: "qubits", K: &k})
		require.NoError(t, err)
		assert.Len(t, out.Results, len(corpus))
	})

	t.Run("negative k", func(t *testing.T) {
		k := -1
		_, _, err := server.handleRetrieve(ctx, nil, RetrieveInput{Query: "qubits", K: &k})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleRetrieve_NoIndex(t *testing.T) {
	server := newTestServer(t)

	_, _, err := server.handleRetrieve(context.Background(), nil, RetrieveInput{Query: "anything"})
	assert.ErrorIs(t, err, ErrNoIndex)
}
