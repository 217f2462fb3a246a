package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/webpipe-gateway/webpipe/internal/model"
	"github.com/webpipe-gateway/webpipe/internal/useragent"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// BraveProvider calls the Brave Search API's /web/search endpoint.
type BraveProvider struct {
	apiKey     string
	httpClient *http.Client
}

func NewBraveProvider(apiKey string, httpClient *http.Client) *BraveProvider {
	return &BraveProvider{apiKey: apiKey, httpClient: httpClient}
}

func (p *BraveProvider) Name() string { return "brave" }

type braveResponse struct {
	Web struct {
		Results []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (p *BraveProvider) Search(ctx context.Context, query model.SearchQuery) (*model.SearchResponse, *model.Error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, braveEndpoint, nil)
	if err != nil {
		return nil, model.WrapError(model.ErrProviderError, err, "building brave search request")
	}
	q := req.URL.Query()
	q.Set("q", query.Query)
	if query.MaxResults > 0 {
		q.Set("count", strconv.Itoa(query.MaxResults))
	}
	if query.Country != "" {
		q.Set("country", query.Country)
	}
	if query.Language != "" {
		q.Set("search_lang", query.Language)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", p.apiKey)
	req.Header.Set("User-Agent", useragent.Random())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, model.WrapError(model.ErrProviderUnavailable, err, "brave search request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, model.NewError(model.ErrRateLimited, "brave search rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, model.NewError(model.ErrProviderError, "brave search returned HTTP %d", resp.StatusCode)
	}

	var parsed braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, model.WrapError(model.ErrProviderError, err, "decoding brave search response")
	}

	results := make([]model.SearchResult, 0, len(parsed.Web.Results))
	for _, r := range parsed.Web.Results {
		results = append(results, model.SearchResult{
			URL:     r.URL,
			Title:   r.Title,
			Snippet: r.Description,
			Source:  "brave",
		})
		if query.MaxResults > 0 && len(results) >= query.MaxResults {
			break
		}
	}

	return &model.SearchResponse{
		Results:   results,
		Provider:  "brave",
		TimingsMS: map[string]int64{"brave": time.Since(start).Milliseconds()},
	}, nil
}
