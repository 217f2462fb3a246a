// Package normalize implements the request normalizer: it validates raw
// tool arguments, resolves defaults, and applies the domains_allow/
// domains_deny filters before any URL is rewritten or fetched. Domain
// matching is done against both the exact host and the registrable
// ("effective TLD+1") domain, using golang.org/x/net/publicsuffix.
package normalize

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/webpipe-gateway/webpipe/internal/config"
	"github.com/webpipe-gateway/webpipe/internal/model"
)

// Defaults mirrors the tool options' documented defaults.
type Defaults struct {
	TimeoutMS     int
	MaxBytes      int64
	MaxChars      int
	TopChunks     int
	MaxChunkChars int
	DeadlineMS    int
	MaxParallelURLs int
}

func DefaultsFromConfig(cfg *config.AppConfig) Defaults {
	return Defaults{
		TimeoutMS:       cfg.DefaultTimeoutMS,
		MaxBytes:        cfg.DefaultMaxBytes,
		MaxChars:        cfg.DefaultMaxChars,
		TopChunks:       cfg.DefaultTopChunks,
		MaxChunkChars:   cfg.DefaultMaxChunkChars,
		DeadlineMS:      cfg.DefaultDeadlineMS,
		MaxParallelURLs: cfg.DefaultMaxParallelURLs,
	}
}

// Request is the normalized, defaulted form of a tool call's raw arguments.
type Request struct {
	Query           string
	URLs            []string
	TimeoutMS       int
	MaxBytes        int64
	MaxChars        int
	TopChunks       int
	MaxChunkChars   int
	DeadlineMS      int
	MaxParallelURLs int
	DomainsAllow    []string
	DomainsDeny     []string
	URLSelectionMode string // preserve | query_rank | pareto
	Provider        string // brave | tavily | searxng | auto
	FetchBackend    string // local | firecrawl
	Compact         bool
	AgenticEnabled  bool
}

// ValidateURLSyntax checks that every URL parses and has an http(s) scheme.
func ValidateURLSyntax(raw string) (*url.URL, *model.Error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, model.NewError(model.ErrInvalidParams, "invalid URL: %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, model.NewError(model.ErrInvalidParams, "unsupported URL scheme %q in %q", u.Scheme, raw)
	}
	return u, nil
}

// FilterByDomain applies domains_allow/domains_deny against both the exact
// host and the registrable domain. If allow is non-empty, a URL must match
// one of its entries; deny always takes precedence over allow.
func FilterByDomain(urls []string, allow, deny []string) ([]string, *model.Error) {
	if len(allow) == 0 && len(deny) == 0 {
		return urls, nil
	}
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		u, verr := ValidateURLSyntax(raw)
		if verr != nil {
			return nil, verr
		}
		host := strings.ToLower(u.Hostname())
		reg, _ := publicsuffix.EffectiveTLDPlusOne(host)

		if matchesAny(host, reg, deny) {
			continue
		}
		if len(allow) > 0 && !matchesAny(host, reg, allow) {
			continue
		}
		out = append(out, raw)
	}
	if len(out) == 0 {
		return nil, model.NewError(model.ErrInvalidParams, "domain filters removed every URL; fail closed rather than return zero results")
	}
	return out, nil
}

func matchesAny(host, registrable string, list []string) bool {
	for _, entry := range list {
		e := strings.ToLower(strings.TrimSpace(entry))
		if e == "" {
			continue
		}
		if host == e || registrable == e {
			return true
		}
	}
	return false
}

// ValidateCompareSelectionModes enforces the rule for multi-mode
// comparisons: at most 2 modes, and a non-empty query is required.
func ValidateCompareSelectionModes(modes []string, query string) *model.Error {
	if len(modes) > 2 {
		return model.NewError(model.ErrInvalidParams, "compare_selection_modes accepts at most 2 modes, got %d", len(modes))
	}
	if strings.TrimSpace(query) == "" {
		return model.NewError(model.ErrInvalidParams, "compare_selection_modes requires a non-empty query")
	}
	return nil
}
