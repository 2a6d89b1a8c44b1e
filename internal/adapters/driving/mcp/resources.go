package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for pdfqa resources.
	uriScheme = "pdfqa://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index",
		Name:        "index",
		Description: "Summary of the current similarity index",
		MIMEType:    "application/json",
	}, s.handleIndexResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "index/texts/{position}",
		Name:        "indexed-text",
		Description: "The passage stored at a corpus position",
		MIMEType:    "text/plain",
	}, s.handleTextResource)
}

// indexInfo is the JSON shape of the index resource.
type indexInfo struct {
	ID         string    `json:"id"`
	Texts      int       `json:"texts"`
	Files      []string  `json:"files,omitempty"`
	Model      string    `json:"model"`
	Dimensions int       `json:"dimensions"`
	BuiltAt    time.Time `json:"built_at"`
}

// handleIndexResource describes the current index, or returns null.
func (s *Server) handleIndexResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	text := "null"
	if c := s.snapshot(); c != nil {
		data, err := json.MarshalIndent(indexInfo{
			ID:         c.id,
			Texts:      c.index.Len(),
			Files:      c.files,
			Model:      c.index.Model(),
			Dimensions: c.index.Dimensions(),
			BuiltAt:    c.builtAt,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshalling index: %w", err)
		}
		text = string(data)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

// handleTextResource returns the passage at a corpus position.
func (s *Server) handleTextResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	c := s.snapshot()
	pos, ok := extractPosition(req.Params.URI)
	if c == nil || !ok || pos >= len(c.texts) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     c.texts[pos],
		}},
	}, nil
}

// extractPosition parses the position from pdfqa://index/texts/{position}.
func extractPosition(uri string) (int, bool) {
	const prefix = uriScheme + "index/texts/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	pos, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || pos < 0 {
		return 0, false
	}
	return pos, true
}
