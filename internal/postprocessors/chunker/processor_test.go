package chunker

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/custodia-labs/pdfqa/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		p := New(WithChunkSize(500), WithOverlap(100))
		if p.chunkSize != 500 || p.overlap != 100 {
			t.Errorf("expected 500/100, got %d/%d", p.chunkSize, p.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		if p.overlap != 25 {
			t.Errorf("expected overlap reduced to 25, got %d", p.overlap)
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", p.overlap)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	if New().Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", New().Name())
	}
}

func TestProcessor_Process_EmptyContent(t *testing.T) {
	for _, content := range []string{"", "   \n\t  "} {
		chunks, err := New().Process(context.Background(), &domain.Document{ID: "d", Content: content}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 0 {
			t.Errorf("expected 0 chunks for %q, got %d", content, len(chunks))
		}
	}
}

func TestProcessor_Process_SmallContent(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))
	doc := &domain.Document{ID: "test-doc", Content: "  Small content  "}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "Small content" {
		t.Errorf("expected trimmed content, got %q", chunks[0].Content)
	}
	if chunks[0].DocumentID != "test-doc" {
		t.Errorf("expected DocumentID 'test-doc', got %q", chunks[0].DocumentID)
	}
}

func TestProcessor_Process_NoWhitespace(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(3))
	doc := &domain.Document{ID: "test-doc", Content: "0123456789ABCDEFGHIJ"}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"0123456789", "789ABCDEFG", "EFGHIJ"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, w := range want {
		if chunks[i].Content != w {
			t.Errorf("chunk %d: expected %q, got %q", i, w, chunks[i].Content)
		}
		if chunks[i].Position != i {
			t.Errorf("chunk %d: expected position %d, got %d", i, i, chunks[i].Position)
		}
	}
}

func TestProcessor_Process_ExactChunkSize(t *testing.T) {
	p := New(WithChunkSize(50), WithOverlap(0))
	doc := &domain.Document{ID: "test-doc", Content: strings.Repeat("a", 100)}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Errorf("expected 2 chunks, got %d", len(chunks))
	}
}

func TestProcessor_Process_KeepsWordsWhole(t *testing.T) {
	p := New(WithChunkSize(40), WithOverlap(10))
	doc := &domain.Document{ID: "test-doc", Content: strings.Repeat("alpha beta gamma delta ", 20)}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	valid := map[string]bool{"alpha": true, "beta": true, "gamma": true, "delta": true}
	seenIDs := make(map[string]bool)
	for i, chunk := range chunks {
		if utf8.RuneCountInString(chunk.Content) > 40 {
			t.Errorf("chunk %d longer than 40 runes: %q", i, chunk.Content)
		}
		for _, word := range strings.Fields(chunk.Content) {
			if !valid[word] {
				t.Errorf("chunk %d contains split word %q", i, word)
			}
		}
		if seenIDs[chunk.ID] {
			t.Errorf("duplicate chunk ID: %s", chunk.ID)
		}
		seenIDs[chunk.ID] = true
	}

	if !strings.HasSuffix(chunks[len(chunks)-1].Content, "delta") {
		t.Errorf("expected last chunk to reach end of content, got %q", chunks[len(chunks)-1].Content)
	}
}

func TestProcessor_Process_MultibyteRunes(t *testing.T) {
	p := New(WithChunkSize(8), WithOverlap(2))
	doc := &domain.Document{ID: "test-doc", Content: strings.Repeat("é", 20)}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk.Content) {
			t.Errorf("chunk %d is not valid UTF-8", i)
		}
		if utf8.RuneCountInString(chunk.Content) > 8 {
			t.Errorf("chunk %d longer than 8 runes", i)
		}
	}
}

func TestProcessor_Process_IgnoresInputChunks(t *testing.T) {
	existing := []domain.Chunk{{ID: "existing", Content: "should be ignored"}}
	doc := &domain.Document{ID: "test-doc", Content: "New content to chunk"}

	chunks, err := New(WithChunkSize(100)).Process(context.Background(), doc, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, chunk := range chunks {
		if chunk.ID == "existing" {
			t.Error("existing chunks should be ignored")
		}
	}
}

func TestProcessor_Process_RecordsOffsets(t *testing.T) {
	doc := &domain.Document{ID: "test-doc", Content: "Test content"}

	chunks, err := New(WithChunkSize(100)).Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Metadata["start"] != 0 || chunks[0].Metadata["end"] != 12 {
		t.Errorf("unexpected offsets: %v", chunks[0].Metadata)
	}
}

func TestProcessor_Process_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Process(ctx, &domain.Document{ID: "d", Content: "text"}, nil)
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}
