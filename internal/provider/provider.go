// Package provider implements the search stage: a small set of
// SearchProvider backends (Brave, Tavily, SearxNG) behind one interface,
// selected explicitly or via "auto". Under "auto" a preference-ordered
// fallback chain skips unconfigured providers and moves on when one errors;
// an explicitly requested provider is tried alone, with no fallback.
package provider

import (
	"context"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// SearchProvider is implemented by each concrete search backend.
type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query model.SearchQuery) (*model.SearchResponse, *model.Error)
}

// Registry holds the configured providers, keyed by name ("brave",
// "tavily", "searxng"), plus the preference order used by "auto".
type Registry struct {
	providers      map[string]SearchProvider
	preferenceOrder []string
}

// NewRegistry builds a Registry from whichever providers are non-nil
// (callers skip constructing a provider whose credentials are missing).
func NewRegistry(preferenceOrder []string, providers ...SearchProvider) *Registry {
	r := &Registry{
		providers:       make(map[string]SearchProvider, len(providers)),
		preferenceOrder: preferenceOrder,
	}
	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}
	return r
}

// Resolve runs requested ("brave" | "tavily" | "searxng" | "auto" | ""),
// returning the search response plus the envelope's selection/fallback
// metadata. "auto" (or empty) walks preferenceOrder until one provider
// both exists and succeeds.
func (r *Registry) Resolve(ctx context.Context, requested string, query model.SearchQuery) (*model.SearchResponse, *model.Selection, *model.Fallback, *model.Error) {
	if requested == "" {
		requested = "auto"
	}
	selection := &model.Selection{RequestedProvider: requested}

	if requested != "auto" {
		p, ok := r.providers[requested]
		if !ok {
			return nil, selection, nil, model.NewError(model.ErrNotConfigured, "search provider %q is not configured", requested)
		}
		resp, err := p.Search(ctx, query)
		if err != nil {
			return nil, selection, nil, err
		}
		selection.SelectedProvider = requested
		return resp, selection, nil, nil
	}

	var lastErr *model.Error
	var previouslyTried string
	for _, name := range r.preferenceOrder {
		p, ok := r.providers[name]
		if !ok {
			continue
		}
		resp, err := p.Search(ctx, query)
		if err == nil {
			selection.SelectedProvider = name
			var fallback *model.Fallback
			if previouslyTried != "" {
				fallback = &model.Fallback{From: previouslyTried, To: name, ReasonCode: string(lastErr.Code)}
			}
			return resp, selection, fallback, nil
		}
		lastErr = err
		previouslyTried = name
	}

	if lastErr == nil {
		return nil, selection, nil, model.NewError(model.ErrNotConfigured, "no search providers configured")
	}
	return nil, selection, nil, model.WrapError(model.ErrProviderUnavailable, lastErr, "no configured search provider returned results")
}

// Has reports whether a named provider is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.providers[name]
	return ok
}
