// arxiv_search, arxiv_enrich, and paper_search are thin, arXiv-aware
// wrappers over the same normalize → aggregate.BuildEnvelope pipeline
// every other tool uses, grounded on the URL-rewrite table's existing
// arXiv abs→pdf rule (internal/rewrite) and the domain allow-list the
// normalizer already enforces (internal/normalize).
package mcpserver

import (
	"context"
	"regexp"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/webpipe-gateway/webpipe/internal/aggregate"
	"github.com/webpipe-gateway/webpipe/internal/model"
)

var arxivIDPattern = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)

// normalizeArxivRef turns a bare arXiv id ("2401.12345") into its abs URL;
// anything already URL-shaped passes through unchanged so callers can also
// hand arxiv_enrich a full arxiv.org/abs or /pdf URL.
func normalizeArxivRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if arxivIDPattern.MatchString(ref) {
		return "https://arxiv.org/abs/" + ref
	}
	return ref
}

func (s *Server) handleArxivSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	kind := "arxiv_search"
	query := argString(args, "query")
	if query == "" {
		return s.errorResult(kind, model.NewError(model.ErrInvalidParams, "arxiv_search requires a non-empty query"))
	}

	env, verr := s.searchWithDomainRestriction(ctx, kind, args, query, []string{"arxiv.org"}, "query_rank")
	if verr != nil {
		return s.errorResult(kind, verr)
	}
	return s.toolResult("Query", env, argBool(args, "compact", false))
}

func (s *Server) handleArxivEnrich(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	kind := "arxiv_enrich"

	refs := argStringSlice(args, "urls")
	if single := argString(args, "url"); single != "" {
		refs = append(refs, single)
	}
	if len(refs) == 0 {
		return s.errorResult(kind, model.NewError(model.ErrInvalidParams, "arxiv_enrich requires url or urls"))
	}

	urls := make([]string, 0, len(refs))
	for _, r := range refs {
		urls = append(urls, normalizeArxivRef(r))
	}

	req, verr := buildRequest(s.cfg, args, urls)
	if verr != nil {
		return s.errorResult(kind, verr)
	}
	env := s.aggregator.BuildEnvelope(ctx, kind, req)
	return s.toolResult(headingFor(kind, req), env, req.Compact)
}

// handlePaperSearch tries arxiv_search first; if nothing came back with any
// query overlap, it falls back to an unrestricted search_evidence call so
// papers hosted outside arxiv.org (publisher pages, preprint mirrors) are
// still reachable. The fallback is recorded the same way a provider
// fallback is, with reason code "no_arxiv_overlap".
func (s *Server) handlePaperSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	kind := "paper_search"
	query := argString(args, "query")
	if query == "" {
		return s.errorResult(kind, model.NewError(model.ErrInvalidParams, "paper_search requires a non-empty query"))
	}

	env, verr := s.searchWithDomainRestriction(ctx, kind, args, query, []string{"arxiv.org"}, "query_rank")
	if verr != nil {
		return s.errorResult(kind, verr)
	}

	if !anyChunkOverlap(env) {
		fallbackEnv, ferr := s.searchWithDomainRestriction(ctx, kind, args, query, nil, "query_rank")
		if ferr == nil {
			fallbackEnv.Fallback = &model.Fallback{From: "arxiv.org", To: "web", ReasonCode: "no_arxiv_overlap"}
			env = fallbackEnv
		}
	}

	return s.toolResult("Query", env, argBool(args, "compact", false))
}

func anyChunkOverlap(env *model.EvidenceEnvelope) bool {
	return len(env.TopChunks) > 0 && env.TopChunks[0].Score > 0
}

// searchWithDomainRestriction runs the same provider-search-then-fetch path
// as search_evidence, optionally forcing domains_allow.
func (s *Server) searchWithDomainRestriction(ctx context.Context, kind string, args map[string]any, query string, domainsAllow []string, mode string) (*model.EvidenceEnvelope, *model.Error) {
	maxResults := argInt(args, "max_results", s.cfg.DefaultTopChunks*2)
	sq := model.SearchQuery{Query: query, MaxResults: maxResults}
	resp, selection, fallback, serr := s.providers.Resolve(ctx, argString(args, "provider"), sq)
	if serr != nil {
		return nil, serr
	}

	ranked := aggregate.RankSearchURLs(mode, query, resp.Results)
	var urls []string
	for _, r := range ranked {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}

	merged := map[string]any{}
	for k, v := range args {
		merged[k] = v
	}
	merged["query"] = query
	if domainsAllow != nil {
		merged["domains_allow"] = domainsAllow
	}
	merged["url_selection_mode"] = mode

	req, verr := buildRequest(s.cfg, merged, urls)
	if verr != nil {
		return nil, verr
	}

	env := s.aggregator.BuildEnvelope(ctx, kind, req)
	env.Selection = selection
	env.Fallback = fallback
	return env, nil
}
