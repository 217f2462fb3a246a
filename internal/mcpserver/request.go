package mcpserver

import (
	"github.com/webpipe-gateway/webpipe/internal/config"
	"github.com/webpipe-gateway/webpipe/internal/model"
	"github.com/webpipe-gateway/webpipe/internal/normalize"
)

// buildRequest runs the normalizer over a tool call's raw arguments:
// resolve defaults from cfg, validate URL syntax, and apply the
// domains_allow/domains_deny fail-closed filter. urls may be empty (search
// tools fill it in after a provider call).
func buildRequest(cfg *config.AppConfig, args map[string]any, urls []string) (normalize.Request, *model.Error) {
	d := normalize.DefaultsFromConfig(cfg)

	req := normalize.Request{
		Query:            argString(args, "query"),
		URLs:             urls,
		TimeoutMS:        argInt(args, "timeout_ms", d.TimeoutMS),
		MaxBytes:         argInt64(args, "max_bytes", d.MaxBytes),
		MaxChars:         argInt(args, "max_chars", d.MaxChars),
		TopChunks:        argInt(args, "top_chunks", d.TopChunks),
		MaxChunkChars:    argInt(args, "max_chunk_chars", d.MaxChunkChars),
		DeadlineMS:       argInt(args, "deadline_ms", d.DeadlineMS),
		MaxParallelURLs:  argInt(args, "max_parallel_urls", d.MaxParallelURLs),
		DomainsAllow:     argStringSlice(args, "domains_allow"),
		DomainsDeny:      argStringSlice(args, "domains_deny"),
		URLSelectionMode: argStringDefault(args, "url_selection_mode", "preserve"),
		Provider:         argString(args, "provider"),
		FetchBackend:     argString(args, "backend"),
		Compact:          argBool(args, "compact", false),
		AgenticEnabled:   argBool(args, "agentic", false),
	}

	for _, raw := range req.URLs {
		if _, verr := normalize.ValidateURLSyntax(raw); verr != nil {
			return req, verr
		}
	}

	if len(req.URLs) > 0 && (len(req.DomainsAllow) > 0 || len(req.DomainsDeny) > 0) {
		filtered, ferr := normalize.FilterByDomain(req.URLs, req.DomainsAllow, req.DomainsDeny)
		if ferr != nil {
			return req, ferr
		}
		req.URLs = filtered
	}

	return req, nil
}
