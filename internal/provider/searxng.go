package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/webpipe-gateway/webpipe/internal/logger"
	"github.com/webpipe-gateway/webpipe/internal/model"
	"github.com/webpipe-gateway/webpipe/internal/useragent"
)

var searxJSON = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	searxResultsPerPage = 10
	searxMaxPages       = 5
)

// searxResultItem mirrors one item in a SearxNG JSON response.
type searxResultItem struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searxResponse struct {
	Results []searxResultItem `json:"results"`
}

// SearxNGProvider queries a self-hosted SearxNG instance: pages are
// fetched in parallel up to searxMaxPages, then combined in page order
// and sorted by score.
type SearxNGProvider struct {
	endpoint   string
	httpClient *http.Client
}

func NewSearxNGProvider(endpoint string, httpClient *http.Client) *SearxNGProvider {
	return &SearxNGProvider{endpoint: endpoint, httpClient: httpClient}
}

func (p *SearxNGProvider) Name() string { return "searxng" }

func (p *SearxNGProvider) Search(ctx context.Context, query model.SearchQuery) (*model.SearchResponse, *model.Error) {
	start := time.Now()

	maxResults := query.MaxResults
	if maxResults <= 0 {
		maxResults = searxResultsPerPage
	}
	pages := (maxResults + searxResultsPerPage - 1) / searxResultsPerPage
	if pages > searxMaxPages {
		pages = searxMaxPages
	}
	if pages < 1 {
		pages = 1
	}

	type pageResult struct {
		page  int
		items []searxResultItem
		err   error
	}
	resultsCh := make(chan pageResult, pages)
	var wg sync.WaitGroup

	for page := 1; page <= pages; page++ {
		wg.Add(1)
		go func(pageNum int) {
			defer wg.Done()
			items, err := p.fetchPage(ctx, query.Query, pageNum)
			resultsCh <- pageResult{page: pageNum, items: items, err: err}
		}(page)
	}
	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	byPage := make(map[int][]searxResultItem)
	var lastErr error
	for r := range resultsCh {
		if r.err != nil {
			lastErr = r.err
			continue
		}
		byPage[r.page] = r.items
	}

	var all []searxResultItem
	for page := 1; page <= pages; page++ {
		all = append(all, byPage[page]...)
	}

	if len(all) == 0 {
		if lastErr != nil {
			return nil, model.WrapError(model.ErrProviderUnavailable, lastErr, "searxng search failed")
		}
		return nil, model.NewError(model.ErrProviderError, "searxng returned no results")
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })

	results := make([]model.SearchResult, 0, maxResults)
	for _, item := range all {
		results = append(results, model.SearchResult{
			URL:     item.URL,
			Title:   item.Title,
			Snippet: item.Content,
			Source:  "searxng",
		})
		if len(results) >= maxResults {
			break
		}
	}

	return &model.SearchResponse{
		Results:   results,
		Provider:  "searxng",
		TimingsMS: map[string]int64{"searxng": time.Since(start).Milliseconds()},
	}, nil
}

func (p *SearxNGProvider) fetchPage(ctx context.Context, query string, page int) ([]searxResultItem, error) {
	apiURL, err := url.Parse(p.endpoint + "/search")
	if err != nil {
		return nil, fmt.Errorf("parsing searxng endpoint: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("pageno", fmt.Sprintf("%d", page))
	apiURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building searxng request: %w", err)
	}
	req.Header.Set("User-Agent", useragent.Random())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searxng request failed with status %d", resp.StatusCode)
	}

	var parsed searxResponse
	if err := searxJSON.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logger.LogWarn("searxng: failed to decode page", "page", page, "error", err)
		return nil, err
	}
	return parsed.Results, nil
}
