// Package mcpserver wires the evidence pipeline (internal/aggregate,
// internal/provider, internal/fetcher, internal/extractor) to the stdio
// JSON-RPC tool protocol. The protocol framing itself — batching, method
// dispatch, line-delimited stdio transport — is delegated entirely to
// github.com/mark3labs/mcp-go. This package owns only the tool catalog,
// argument parsing, and response rendering.
package mcpserver

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/webpipe-gateway/webpipe/internal/aggregate"
	"github.com/webpipe-gateway/webpipe/internal/config"
	"github.com/webpipe-gateway/webpipe/internal/provider"
)

const serverName = "webpipe"

// Server bundles the pieces a tool handler needs: the aggregator for the
// fetch/extract/chunk pipeline, the provider registry for search, and the
// resolved config for defaults and the two ambient MCP rendering knobs
// (WEBPIPE_MCP_INCLUDE_JSON_TEXT, WEBPIPE_MCP_MARKDOWN_CHUNK_EXCERPTS).
type Server struct {
	cfg        *config.AppConfig
	aggregator *aggregate.Aggregator
	providers  *provider.Registry
	httpClient *http.Client
}

// New builds the tool-catalog wiring around an already-constructed
// aggregator and provider registry; main.go is responsible for assembling
// those from cfg (cache backend selection, fetcher, extractor dispatcher).
func New(cfg *config.AppConfig, agg *aggregate.Aggregator, providers *provider.Registry, httpClient *http.Client) *Server {
	return &Server{cfg: cfg, aggregator: agg, providers: providers, httpClient: httpClient}
}

// Build constructs the underlying mcp-go server and registers every tool
// in the configured toolset (WEBPIPE_MCP_TOOLSET: normal | full).
func (s *Server) Build() *server.MCPServer {
	mcpSrv := server.NewMCPServer(
		serverName,
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, reg := range s.toolRegistrations() {
		mcpSrv.AddTool(reg.tool, reg.handler)
	}

	return mcpSrv
}

// Serve runs the MCP stdio loop until mcp-go's ServeStdio returns; it takes
// no context of its own. The stdio transport tolerates JSON-RPC batch arrays arriving
// on one line; that tolerance lives inside mcp-go's stdio transport, not
// here.
func (s *Server) Serve() error {
	return server.ServeStdio(s.Build())
}
