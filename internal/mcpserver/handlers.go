package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/webpipe-gateway/webpipe/internal/aggregate"
	"github.com/webpipe-gateway/webpipe/internal/model"
	"github.com/webpipe-gateway/webpipe/internal/normalize"
)

// handleWebFetch implements web_fetch: a single URL through fetch →
// extract → chunk, returned with FinalURL mirrored at the envelope root
// for the single-URL case.
func (s *Server) handleWebFetch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	return s.runSingleURL(ctx, "web_fetch", args)
}

// handleWebExtract implements web_extract: identical pipeline to web_fetch,
// but the tool is named for its chunk-ranking use: top_chunks at the
// envelope root is byte-identical to results[0].extract.chunks.
func (s *Server) handleWebExtract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	return s.runSingleURL(ctx, "web_extract", args)
}

func (s *Server) runSingleURL(ctx context.Context, kind string, args map[string]any) (*mcp.CallToolResult, error) {
	url := argString(args, "url")
	if url == "" {
		return s.errorResult(kind, model.NewError(model.ErrInvalidParams, "%s requires a non-empty url", kind))
	}

	req, verr := buildRequest(s.cfg, args, []string{url})
	if verr != nil {
		return s.errorResult(kind, verr)
	}

	env := s.aggregator.BuildEnvelope(ctx, kind, req)
	if kind == "web_extract" && len(env.Results) == 1 && env.Results[0].Extract != nil {
		env.TopChunks = env.Results[0].Extract.Chunks
	}
	return s.toolResult(headingFor(kind, req), env, req.Compact)
}

// handleSearchEvidence implements search_evidence (and its web_search_extract
// alias): the "preserve" short-circuit (explicit urls, no query required,
// no provider consulted) versus the search-then-fetch path through the
// provider router.
func (s *Server) handleSearchEvidence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	kind := "search_evidence"

	explicitURLs := argStringSlice(args, "urls")
	query := argString(args, "query")
	mode := argStringDefault(args, "url_selection_mode", "preserve")

	if len(explicitURLs) == 0 && query == "" {
		return s.errorResult(kind, model.NewError(model.ErrInvalidParams, "search_evidence requires a query or an explicit urls list"))
	}

	var urls []string
	var selection *model.Selection
	var fallback *model.Fallback

	if len(explicitURLs) > 0 {
		// Explicit urls means no provider call, and nothing to rank by
		// (no title/snippet) — the caller's own order is kept.
		urls = explicitURLs
	} else {
		maxResults := argInt(args, "max_results", s.cfg.DefaultTopChunks*2)
		sq := model.SearchQuery{
			Query:      query,
			MaxResults: maxResults,
			Language:   argString(args, "language"),
			Country:    argString(args, "country"),
		}
		resp, sel, fb, serr := s.providers.Resolve(ctx, argString(args, "provider"), sq)
		if serr != nil {
			return s.errorResult(kind, serr)
		}
		selection, fallback = sel, fb
		ranked := aggregate.RankSearchURLs(mode, query, resp.Results)
		for _, r := range ranked {
			if r.URL != "" {
				urls = append(urls, r.URL)
			}
		}
	}

	req, verr := buildRequest(s.cfg, args, urls)
	if verr != nil {
		return s.errorResult(kind, verr)
	}

	env := s.aggregator.BuildEnvelope(ctx, kind, req)
	env.Selection = selection
	env.Fallback = fallback
	return s.toolResult(headingFor(kind, req), env, req.Compact)
}

func headingFor(kind string, req normalize.Request) string {
	switch kind {
	case "search_evidence", "web_search_extract":
		return "Query"
	default:
		if req.Query != "" {
			return "Query"
		}
		return "Request"
	}
}
