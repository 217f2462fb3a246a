// Package config centralizes all environment-derived configuration into a
// single typed struct: load once at startup via godotenv + os.Getenv,
// validate, never mutate afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	// Cache
	CacheDir      string
	CacheBackend  string // disk (default) | memory | sharded-memory | redis
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// MCP / tool surface
	MCPToolset               string // normal | full
	MCPIncludeJSONText       bool
	MCPMarkdownChunkExcerpts bool

	// Search provider credentials
	BraveAPIKey       string
	TavilyAPIKey      string
	SearxNGEndpoint   string
	FirecrawlAPIKey   string
	FirecrawlEndpoint string
	PerplexityAPIKey  string

	// URL rewrite rules
	ArxivRewriteHosts     []string
	GithubRewriteHosts    []string
	GithubRawHost         string
	GithubRewriteBranches []string
	GithubAPIBase         string

	// Pipeline defaults
	DefaultTimeoutMS        int
	DefaultMaxBytes         int64
	DefaultMaxChars         int
	DefaultTopChunks        int
	DefaultMaxChunkChars    int
	DefaultMaxParallelURLs  int
	DefaultDeadlineMS       int
	TruncationRetryMaxBytes int64

	ProviderPreferenceOrder []string
}

// LoadConfig loads configuration from .env (unless WEBPIPE_DOTENV=0) and
// environment variables.
func LoadConfig() (*AppConfig, error) {
	if getEnv("WEBPIPE_DOTENV", "1") != "0" {
		if err := godotenv.Load(); err != nil {
			fmt.Printf("Info: Could not load .env file: %v (this is ok if using environment variables)\n", err)
		}
	}

	cfg := &AppConfig{
		CacheDir:      getEnv("WEBPIPE_CACHE_DIR", "./.webpipe-cache"),
		CacheBackend:  getEnv("WEBPIPE_CACHE_BACKEND", "disk"),
		RedisURL:      getEnv("WEBPIPE_REDIS_URL", "localhost:6379"),
		RedisPassword: os.Getenv("WEBPIPE_REDIS_PASSWORD"),
		RedisDB:       getEnvInt("WEBPIPE_REDIS_DB", 0),

		MCPToolset:               getEnv("WEBPIPE_MCP_TOOLSET", "normal"),
		MCPIncludeJSONText:       getEnv("WEBPIPE_MCP_INCLUDE_JSON_TEXT", "0") == "1",
		MCPMarkdownChunkExcerpts: getEnv("WEBPIPE_MCP_MARKDOWN_CHUNK_EXCERPTS", "0") == "1",

		BraveAPIKey:       firstNonEmpty(os.Getenv("WEBPIPE_BRAVE_API_KEY"), os.Getenv("BRAVE_SEARCH_API_KEY")),
		TavilyAPIKey:      firstNonEmpty(os.Getenv("WEBPIPE_TAVILY_API_KEY"), os.Getenv("TAVILY_API_KEY")),
		SearxNGEndpoint:   os.Getenv("WEBPIPE_SEARXNG_ENDPOINT"),
		FirecrawlAPIKey:   firstNonEmpty(os.Getenv("WEBPIPE_FIRECRAWL_API_KEY"), os.Getenv("FIRECRAWL_API_KEY")),
		FirecrawlEndpoint: getEnv("WEBPIPE_FIRECRAWL_ENDPOINT_V2", "https://api.firecrawl.dev/v2/scrape"),
		PerplexityAPIKey:  firstNonEmpty(os.Getenv("WEBPIPE_PERPLEXITY_API_KEY"), os.Getenv("PERPLEXITY_API_KEY")),

		ArxivRewriteHosts:     splitCSV(getEnv("WEBPIPE_ARXIV_REWRITE_HOSTS", "arxiv.org,www.arxiv.org")),
		GithubRewriteHosts:    splitCSV(getEnv("WEBPIPE_GITHUB_REWRITE_HOSTS", "github.com,www.github.com")),
		GithubRawHost:         getEnv("WEBPIPE_GITHUB_RAW_HOST", "raw.githubusercontent.com"),
		GithubRewriteBranches: splitCSV(getEnv("WEBPIPE_GITHUB_REWRITE_BRANCHES", "main,master")),
		GithubAPIBase:         getEnv("WEBPIPE_GITHUB_API_BASE", "https://api.github.com"),

		DefaultTimeoutMS:        getEnvInt("WEBPIPE_DEFAULT_TIMEOUT_MS", 15000),
		DefaultMaxBytes:         int64(getEnvInt("WEBPIPE_DEFAULT_MAX_BYTES", 2_000_000)),
		DefaultMaxChars:         getEnvInt("WEBPIPE_DEFAULT_MAX_CHARS", 10_000),
		DefaultTopChunks:        getEnvInt("WEBPIPE_DEFAULT_TOP_CHUNKS", 5),
		DefaultMaxChunkChars:    getEnvInt("WEBPIPE_DEFAULT_MAX_CHUNK_CHARS", 800),
		DefaultMaxParallelURLs:  getEnvInt("WEBPIPE_DEFAULT_MAX_PARALLEL_URLS", 4),
		DefaultDeadlineMS:       getEnvInt("WEBPIPE_DEFAULT_DEADLINE_MS", 30_000),
		TruncationRetryMaxBytes: int64(getEnvInt("WEBPIPE_TRUNCATION_RETRY_MAX_BYTES", 4_000_000)),

		ProviderPreferenceOrder: splitCSV(getEnv("WEBPIPE_PROVIDER_PREFERENCE", "brave,tavily,searxng")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *AppConfig) Validate() error {
	validToolsets := map[string]bool{"normal": true, "full": true}
	if !validToolsets[c.MCPToolset] {
		return fmt.Errorf("invalid WEBPIPE_MCP_TOOLSET: %s (must be 'normal' or 'full')", c.MCPToolset)
	}

	validBackends := map[string]bool{"disk": true, "memory": true, "sharded-memory": true, "redis": true}
	if !validBackends[c.CacheBackend] {
		return fmt.Errorf("invalid WEBPIPE_CACHE_BACKEND: %s", c.CacheBackend)
	}

	if c.DefaultMaxParallelURLs <= 0 {
		return fmt.Errorf("WEBPIPE_DEFAULT_MAX_PARALLEL_URLS must be positive, got %d", c.DefaultMaxParallelURLs)
	}

	if c.BraveAPIKey == "" {
		fmt.Println("Warning: no Brave API key set - brave search provider will be unconfigured")
	}
	if c.TavilyAPIKey == "" {
		fmt.Println("Warning: no Tavily API key set - tavily search provider will be unconfigured")
	}
	if c.SearxNGEndpoint == "" {
		fmt.Println("Warning: WEBPIPE_SEARXNG_ENDPOINT not set - searxng search provider will be unconfigured")
	}

	return nil
}

func (c *AppConfig) HasBraveConfig() bool      { return c.BraveAPIKey != "" }
func (c *AppConfig) HasTavilyConfig() bool     { return c.TavilyAPIKey != "" }
func (c *AppConfig) HasSearxNGConfig() bool    { return c.SearxNGEndpoint != "" }
func (c *AppConfig) HasFirecrawlConfig() bool  { return c.FirecrawlAPIKey != "" }
func (c *AppConfig) HasPerplexityConfig() bool { return c.PerplexityAPIKey != "" }

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
