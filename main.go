// Command webpipe is the evidence-gateway's single binary entry point: it
// wires the fetch/extract/chunk/aggregate pipeline together and serves it
// over stdio as an MCP tool server. One binary, no cmd/ split, configured
// entirely from environment variables loaded here once at startup.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/webpipe-gateway/webpipe/internal/aggregate"
	"github.com/webpipe-gateway/webpipe/internal/cache"
	"github.com/webpipe-gateway/webpipe/internal/config"
	"github.com/webpipe-gateway/webpipe/internal/extractor"
	"github.com/webpipe-gateway/webpipe/internal/fetcher"
	"github.com/webpipe-gateway/webpipe/internal/logger"
	"github.com/webpipe-gateway/webpipe/internal/mcpserver"
	"github.com/webpipe-gateway/webpipe/internal/provider"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.LogError("failed to load configuration: %v", err)
		os.Exit(1)
	}

	appCache, err := cache.NewFromConfig(cfg)
	if err != nil {
		logger.LogError("failed to initialize fetch cache (backend=%s): %v", cfg.CacheBackend, err)
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}

	f := fetcher.New(cfg, appCache)
	dispatcher := extractor.NewDispatcher()
	providers := provider.NewRegistryFromConfig(cfg, httpClient)
	agg := aggregate.New(cfg, f, dispatcher, providers)

	srv := mcpserver.New(cfg, agg, providers, httpClient)

	logger.LogInfo("starting webpipe MCP stdio server",
		"toolset", cfg.MCPToolset,
		"cache_backend", cfg.CacheBackend,
		"brave_configured", providers.Has("brave"),
		"tavily_configured", providers.Has("tavily"),
		"searxng_configured", providers.Has("searxng"),
		"firecrawl_configured", cfg.HasFirecrawlConfig(),
		"perplexity_configured", cfg.HasPerplexityConfig(),
	)

	if err := srv.Serve(); err != nil {
		logger.LogError("mcp server exited with error: %v", err)
		os.Exit(1)
	}
}
