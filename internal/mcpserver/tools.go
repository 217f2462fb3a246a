package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toolRegistration pairs a tool's MCP schema with its handler.
type toolRegistration struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// toolRegistrations returns the tool catalog for the configured toolset:
// the nine-tool "normal" minimum, plus the full toolset's three aliases and
// the web_seed_expand single-hop expansion tool.
func (s *Server) toolRegistrations() []toolRegistration {
	regs := []toolRegistration{
		{webpipeMetaTool(), s.handleWebpipeMeta},
		{webpipeUsageTool(), s.handleWebpipeUsage},
		{webFetchTool("web_fetch"), s.handleWebFetch},
		{webExtractTool("web_extract"), s.handleWebExtract},
		{searchEvidenceTool("search_evidence"), s.handleSearchEvidence},
		{webPerplexityTool(), s.handleWebPerplexity},
		{arxivSearchTool(), s.handleArxivSearch},
		{arxivEnrichTool(), s.handleArxivEnrich},
		{paperSearchTool(), s.handlePaperSearch},
	}

	if s.cfg.MCPToolset == "full" {
		regs = append(regs,
			toolRegistration{searchEvidenceTool("web_search_extract"), s.handleSearchEvidence},
			toolRegistration{webFetchTool("http_fetch"), s.handleWebFetch},
			toolRegistration{webExtractTool("page_extract"), s.handleWebExtract},
			toolRegistration{webSeedExpandTool(), s.handleWebSeedExpand},
		)
	}

	return regs
}

func webpipeMetaTool() mcp.Tool {
	return mcp.NewTool("webpipe_meta",
		mcp.WithDescription("Report the active tool surface, schema version, and which search/fetch backends are configured."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func webpipeUsageTool() mcp.Tool {
	return mcp.NewTool("webpipe_usage",
		mcp.WithDescription("Print a one-line usage hint for a named tool, or for every tool."),
		mcp.WithString("tool", mcp.Description("Tool name to describe; omit for all tools.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func fetchCommonOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("timeout_ms", mcp.Description("Per-URL timeout in milliseconds.")),
		mcp.WithNumber("max_bytes", mcp.Description("Byte cap on the response body.")),
		mcp.WithNumber("max_chars", mcp.Description("Character cap on extracted text.")),
		mcp.WithNumber("top_chunks", mcp.Description("Number of ranked chunks to keep.")),
		mcp.WithNumber("max_chunk_chars", mcp.Description("Character bound per chunk.")),
		mcp.WithString("backend", mcp.Description("Fetch backend: local or firecrawl."), mcp.Enum("local", "firecrawl")),
		mcp.WithBoolean("compact", mcp.Description("Drop verbose per-URL detail from the response.")),
		mcp.WithString("query", mcp.Description("Optional query used to rank extracted chunks.")),
	}
}

func webFetchTool(name string) mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Fetch one URL through the cache/fetch/extract/chunk pipeline."),
		mcp.WithString("url", mcp.Required(), mcp.Description("The URL to fetch (http/https).")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	}, fetchCommonOptions()...)
	return mcp.NewTool(name, opts...)
}

func webExtractTool(name string) mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Fetch and extract main content from one URL; top_chunks mirrors extract.chunks."),
		mcp.WithString("url", mcp.Required(), mcp.Description("The URL to fetch and extract (http/https).")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	}, fetchCommonOptions()...)
	return mcp.NewTool(name, opts...)
}

func searchEvidenceTool(name string) mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Search the web (or fetch an explicit url list) and return query-ranked, citation-ready chunks per URL."),
		mcp.WithString("query", mcp.Description("The search query; required unless urls is given.")),
		mcp.WithArray("urls", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Explicit URLs to use instead of searching.")),
		mcp.WithString("provider", mcp.Description("Search provider: brave, tavily, searxng, or auto."), mcp.Enum("brave", "tavily", "searxng", "auto")),
		mcp.WithString("url_selection_mode", mcp.Description("How to order URLs: preserve, query_rank, or pareto."), mcp.Enum("preserve", "query_rank", "pareto")),
		mcp.WithNumber("max_results", mcp.Description("Maximum search results to request from the provider.")),
		mcp.WithArray("domains_allow", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Only keep URLs matching these hosts/registrable domains.")),
		mcp.WithArray("domains_deny", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Drop URLs matching these hosts/registrable domains.")),
		mcp.WithNumber("max_parallel_urls", mcp.Description("Bounded fan-out width across URLs.")),
		mcp.WithNumber("deadline_ms", mcp.Description("Global deadline for the whole call.")),
		mcp.WithBoolean("agentic", mcp.Description("Allow one reformulated-query follow-up round when nothing overlaps the query.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	}, fetchCommonOptions()...)
	return mcp.NewTool(name, opts...)
}

func webPerplexityTool() mcp.Tool {
	return mcp.NewTool("web_perplexity",
		mcp.WithDescription("Ask Perplexity's online model a question and return its answer plus citations."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The question to ask.")),
		mcp.WithString("model", mcp.Description("Perplexity model name (default: sonar).")),
		mcp.WithBoolean("compact", mcp.Description("Drop verbose per-URL detail from the response.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func arxivSearchTool() mcp.Tool {
	return mcp.NewTool("arxiv_search",
		mcp.WithDescription("Search arXiv (domain-restricted search_evidence)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The search query.")),
		mcp.WithNumber("max_results", mcp.Description("Maximum search results to request.")),
		mcp.WithString("provider", mcp.Description("Search provider: brave, tavily, searxng, or auto."), mcp.Enum("brave", "tavily", "searxng", "auto")),
		mcp.WithBoolean("compact", mcp.Description("Drop verbose per-URL detail from the response.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func arxivEnrichTool() mcp.Tool {
	return mcp.NewTool("arxiv_enrich",
		mcp.WithDescription("Fetch one or more arXiv URLs or bare ids (auto-rewritten to PDF) and return ranked chunks."),
		mcp.WithString("url", mcp.Description("A single arXiv URL or bare id, e.g. 2401.12345.")),
		mcp.WithArray("urls", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Multiple arXiv URLs or bare ids.")),
		mcp.WithString("query", mcp.Description("Optional query used to rank extracted chunks.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func paperSearchTool() mcp.Tool {
	return mcp.NewTool("paper_search",
		mcp.WithDescription("Search for academic papers: arXiv first, falling back to general web search when nothing overlaps."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The search query.")),
		mcp.WithNumber("max_results", mcp.Description("Maximum search results to request.")),
		mcp.WithString("provider", mcp.Description("Search provider: brave, tavily, searxng, or auto."), mcp.Enum("brave", "tavily", "searxng", "auto")),
		mcp.WithBoolean("compact", mcp.Description("Drop verbose per-URL detail from the response.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func webSeedExpandTool() mcp.Tool {
	return mcp.NewTool("web_seed_expand",
		mcp.WithDescription("Fetch a seed page, extract its links, and evidence-rank a single hop of them. Not a crawler: no recursion past this one hop."),
		mcp.WithString("seed_url", mcp.Required(), mcp.Description("The page to fetch and extract links from.")),
		mcp.WithNumber("max_links", mcp.Description("Maximum discovered links to expand into (default 10).")),
		mcp.WithString("query", mcp.Description("Optional query used to rank the chunks of the expanded pages; results keep the seed page's link order.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
