package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfqa/internal/adapters/driving/picker"
	"github.com/custodia-labs/pdfqa/internal/core/domain"
	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
)

// IndexFilesInput is the input schema for the index_files tool.
type IndexFilesInput struct {
	Paths []string `json:"paths" jsonschema:"local paths of the PDF files to index"`
}

// IndexTextsInput is the input schema for the index_texts tool.
type IndexTextsInput struct {
	Texts []string `json:"texts" jsonschema:"the passages to index, in order"`
}

// IndexOutput is the output schema for both index tools.
type IndexOutput struct {
	IndexID    string   `json:"index_id"`
	Texts      int      `json:"texts"`
	Files      []string `json:"files,omitempty"`
	Skipped    []string `json:"skipped,omitempty"`
	Model      string   `json:"model"`
	Dimensions int      `json:"dimensions"`
	Message    string   `json:"message,omitempty"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the question or text to match against the index"`
	K     *int   `json:"k,omitempty" jsonschema:"number of passages to return (default 4)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	IndexID string          `json:"index_id"`
	Results []PassageOutput `json:"results"`
	Count   int             `json:"count"`
}

// PassageOutput represents a single retrieved passage.
type PassageOutput struct {
	Rank       int     `json:"rank"`
	Position   int     `json:"position"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
	Distance   float64 `json:"distance"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_files",
		Description: "Upload PDF files, extract and chunk their text and build a new similarity index",
	}, s.handleIndexFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_texts",
		Description: "Build a new similarity index over the given passages",
	}, s.handleIndexTexts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Return the indexed passages most similar to a query, most similar first",
	}, s.handleRetrieve)
}

// handleIndexFiles handles the index_files tool invocation.
func (s *Server) handleIndexFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexFilesInput,
) (*mcp.CallToolResult, IndexOutput, error) {
	if !s.ports.canIndexFiles() {
		return nil, IndexOutput{}, ErrMissingUploadService
	}

	accepted, rejected := picker.Filter(input.Paths, s.ports.Upload.Options())
	files, err := picker.Load(ctx, accepted)
	if err != nil {
		return nil, IndexOutput{}, err
	}

	upload, err := s.ports.Upload.Upload(ctx, files)
	if err != nil {
		return nil, IndexOutput{}, fmt.Errorf("upload: %w", err)
	}
	if upload.Empty() {
		return nil, IndexOutput{}, fmt.Errorf("%w: no PDF files among %v", domain.ErrInvalidInput, input.Paths)
	}

	texts, err := s.ports.Ingest.Texts(ctx, upload.Files)
	if err != nil {
		return nil, IndexOutput{}, fmt.Errorf("extract text: %w", err)
	}

	c, err := s.build(ctx, texts, upload.Names())
	if err != nil {
		return nil, IndexOutput{}, err
	}

	out := indexOutput(c)
	out.Skipped = rejected
	out.Message = upload.Message
	return nil, out, nil
}

// handleIndexTexts handles the index_texts tool invocation.
func (s *Server) handleIndexTexts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexTextsInput,
) (*mcp.CallToolResult, IndexOutput, error) {
	c, err := s.build(ctx, input.Texts, nil)
	if err != nil {
		return nil, IndexOutput{}, err
	}
	return nil, indexOutput(c), nil
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	c := s.snapshot()
	if c == nil {
		return nil, RetrieveOutput{}, ErrNoIndex
	}

	var opts []driving.RetrieveOption
	if input.K != nil {
		opts = append(opts, driving.WithK(*input.K))
	}

	hits, err := s.ports.Retrieval.RetrieveHits(ctx, c.index, input.Query, opts...)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		IndexID: c.id,
		Results: make([]PassageOutput, len(hits)),
		Count:   len(hits),
	}
	for i, h := range hits {
		output.Results[i] = PassageOutput{
			Rank:       i + 1,
			Position:   h.Position,
			Text:       h.Text,
			Similarity: h.Similarity,
			Distance:   h.Distance,
		}
	}

	return nil, output, nil
}

func indexOutput(c *corpus) IndexOutput {
	return IndexOutput{
		IndexID:    c.id,
		Texts:      c.index.Len(),
		Files:      c.files,
		Model:      c.index.Model(),
		Dimensions: c.index.Dimensions(),
	}
}
