package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/webpipe-gateway/webpipe/internal/config"
)

// firecrawlScrapeRequest is the Firecrawl v2 /scrape request body.
type firecrawlScrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
	TimeoutMS       int      `json:"timeout"`
	MaxAgeMS        int64    `json:"maxAge"`
}

type firecrawlScrapeResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// FirecrawlClient scrapes a URL via the Firecrawl v2 API and returns
// rendered markdown, used as the JS-rendering fallback backend when the
// local fetch comes back empty or low-signal.
type FirecrawlClient struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
}

// NewFirecrawlClient builds a client from config. Returns an error if no
// API key is configured: the firecrawl backend is only usable when
// WEBPIPE_FIRECRAWL_API_KEY/FIRECRAWL_API_KEY is set.
func NewFirecrawlClient(cfg *config.AppConfig, httpClient *http.Client) (*FirecrawlClient, error) {
	if !cfg.HasFirecrawlConfig() {
		return nil, fmt.Errorf("firecrawl backend requested but no API key configured")
	}
	return &FirecrawlClient{
		httpClient: httpClient,
		apiKey:     cfg.FirecrawlAPIKey,
		endpoint:   cfg.FirecrawlEndpoint,
	}, nil
}

const defaultFirecrawlMaxAgeMS = 172_800_000 // 48h, matches upstream default

// ScrapeMarkdown calls Firecrawl's /v2/scrape and returns the rendered
// markdown for url.
func (c *FirecrawlClient) ScrapeMarkdown(ctx context.Context, url string, timeoutMS int) (string, error) {
	reqBody := firecrawlScrapeRequest{
		URL:             url,
		Formats:         []string{"markdown"},
		OnlyMainContent: true,
		TimeoutMS:       timeoutMS,
		MaxAgeMS:        defaultFirecrawlMaxAgeMS,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding firecrawl request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building firecrawl request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	client := c.httpClient
	if client == nil {
		client = &http.Client{Timeout: time.Duration(timeoutMS) * time.Millisecond}
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("firecrawl request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("firecrawl fetch HTTP %d", resp.StatusCode)
	}

	var parsed firecrawlScrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding firecrawl response: %w", err)
	}
	if !parsed.Success {
		return "", fmt.Errorf("firecrawl fetch returned success=false")
	}
	if parsed.Data == nil {
		return "", nil
	}
	return parsed.Data.Markdown, nil
}
