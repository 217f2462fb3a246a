package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// handleWebpipeMeta reports the toolset, schema version, and which search/
// fetch backends are actually configured — useful for an agent deciding
// whether to pass an explicit provider or leave it on "auto".
func (s *Server) handleWebpipeMeta(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	env := &model.EvidenceEnvelope{
		SchemaVersion: model.SchemaVersion,
		Kind:          "webpipe_meta",
		OK:            true,
		WarningCodes:  []model.WarningCode{},
		Request: map[string]interface{}{
			"toolset":              s.cfg.MCPToolset,
			"tools":                toolNames(s.toolRegistrations()),
			"brave_configured":     s.providers.Has("brave"),
			"tavily_configured":    s.providers.Has("tavily"),
			"searxng_configured":   s.providers.Has("searxng"),
			"firecrawl_configured": s.cfg.HasFirecrawlConfig(),
			"perplexity_configured": s.cfg.HasPerplexityConfig(),
			"cache_backend":        s.cfg.CacheBackend,
		},
	}
	return s.toolResult("Summary", env, false)
}

// handleWebpipeUsage returns a short human-readable usage blurb for one
// named tool, or for every tool when "tool" is omitted.
func (s *Server) handleWebpipeUsage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	name := argString(args, "tool")

	env := &model.EvidenceEnvelope{
		SchemaVersion: model.SchemaVersion,
		Kind:          "webpipe_usage",
		OK:            true,
		WarningCodes:  []model.WarningCode{},
	}

	var b strings.Builder
	if name != "" {
		if hint, ok := usageHints[name]; ok {
			fmt.Fprintf(&b, "%s: %s\n", name, hint)
		} else {
			env.OK = false
			env.Error = model.NewError(model.ErrInvalidParams, "unknown tool %q", name)
			return s.toolResult("Summary", env, false)
		}
	} else {
		for _, reg := range s.toolRegistrations() {
			fmt.Fprintf(&b, "%s: %s\n", reg.tool.Name, usageHints[reg.tool.Name])
		}
	}
	env.Request = map[string]interface{}{"usage": b.String()}
	return s.toolResult("Summary", env, false)
}

var usageHints = map[string]string{
	"webpipe_meta":       "reports toolset, configured backends, schema version.",
	"webpipe_usage":      "prints this usage text for one tool or all tools.",
	"web_fetch":          "fetch one URL; returns the raw-ish body plus ranked chunks if query is given.",
	"web_extract":        "fetch + extract one URL; top_chunks mirrors extract.chunks.",
	"search_evidence":    "search the web (or use explicit urls) and return ranked, citation-ready chunks per URL.",
	"web_perplexity":     "ask Perplexity's online model a question; returns its answer plus citations.",
	"arxiv_search":       "search arXiv specifically (domain-restricted search_evidence).",
	"arxiv_enrich":       "fetch one or more arXiv URLs/ids, auto-rewritten to PDF, and extract ranked chunks.",
	"paper_search":       "search arXiv first, falling back to general web search for papers outside arXiv.",
	"web_search_extract": "alias of search_evidence (full toolset only).",
	"http_fetch":         "alias of web_fetch (full toolset only).",
	"page_extract":       "alias of web_extract (full toolset only).",
	"web_seed_expand":    "fetch a seed page, extract its links, and evidence-rank a single hop of them (full toolset only).",
}

func toolNames(regs []toolRegistration) []string {
	names := make([]string, 0, len(regs))
	for _, r := range regs {
		names = append(names, r.tool.Name)
	}
	return names
}
