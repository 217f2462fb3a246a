package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/webpipe-gateway/webpipe/internal/model"
	"github.com/webpipe-gateway/webpipe/internal/useragent"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// TavilyProvider calls the Tavily Search API.
type TavilyProvider struct {
	apiKey     string
	httpClient *http.Client
}

func NewTavilyProvider(apiKey string, httpClient *http.Client) *TavilyProvider {
	return &TavilyProvider{apiKey: apiKey, httpClient: httpClient}
}

func (p *TavilyProvider) Name() string { return "tavily" }

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		URL     string `json:"url"`
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"results"`
}

func (p *TavilyProvider) Search(ctx context.Context, query model.SearchQuery) (*model.SearchResponse, *model.Error) {
	start := time.Now()

	payload, err := json.Marshal(tavilyRequest{
		APIKey:     p.apiKey,
		Query:      query.Query,
		MaxResults: query.MaxResults,
	})
	if err != nil {
		return nil, model.WrapError(model.ErrProviderError, err, "encoding tavily request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, model.WrapError(model.ErrProviderError, err, "building tavily search request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", useragent.Random())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, model.WrapError(model.ErrProviderUnavailable, err, "tavily search request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, model.NewError(model.ErrRateLimited, "tavily search rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, model.NewError(model.ErrProviderError, "tavily search returned HTTP %d", resp.StatusCode)
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, model.WrapError(model.ErrProviderError, err, "decoding tavily search response")
	}

	results := make([]model.SearchResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, model.SearchResult{
			URL:     r.URL,
			Title:   r.Title,
			Snippet: r.Content,
			Source:  "tavily",
		})
		if query.MaxResults > 0 && len(results) >= query.MaxResults {
			break
		}
	}

	return &model.SearchResponse{
		Results:   results,
		Provider:  "tavily",
		TimingsMS: map[string]int64{"tavily": time.Since(start).Milliseconds()},
	}, nil
}
