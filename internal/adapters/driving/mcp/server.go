package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfqa/internal/core/ports/driving"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for pdfqa.
// It holds one current index; each index_* call replaces it.
type Server struct {
	ports  *Ports
	server *mcp.Server

	mu      sync.RWMutex
	current *corpus
}

// corpus is an index together with the texts it was built from.
type corpus struct {
	id      string
	index   driving.Index
	texts   []string
	files   []string
	builtAt time.Time
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "pdfqa",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// build indexes texts and makes the result the current corpus.
func (s *Server) build(ctx context.Context, texts, files []string) (*corpus, error) {
	idx, err := s.ports.Retrieval.Build(ctx, texts)
	if err != nil {
		return nil, err
	}

	c := &corpus{
		id:      uuid.NewString(),
		index:   idx,
		texts:   append([]string(nil), texts...),
		files:   files,
		builtAt: time.Now(),
	}

	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
	return c, nil
}

// snapshot returns the current corpus, or nil.
func (s *Server) snapshot() *corpus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
