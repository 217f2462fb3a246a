package provider

import (
	"net/http"

	"github.com/webpipe-gateway/webpipe/internal/config"
)

// NewRegistryFromConfig builds a Registry containing only the providers
// whose credentials are present in cfg.
func NewRegistryFromConfig(cfg *config.AppConfig, httpClient *http.Client) *Registry {
	var providers []SearchProvider
	if cfg.HasBraveConfig() {
		providers = append(providers, NewBraveProvider(cfg.BraveAPIKey, httpClient))
	}
	if cfg.HasTavilyConfig() {
		providers = append(providers, NewTavilyProvider(cfg.TavilyAPIKey, httpClient))
	}
	if cfg.HasSearxNGConfig() {
		providers = append(providers, NewSearxNGProvider(cfg.SearxNGEndpoint, httpClient))
	}
	return NewRegistry(cfg.ProviderPreferenceOrder, providers...)
}
