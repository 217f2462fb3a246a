// Package fetcher implements the fetch stage: URL rewrite → cache lookup →
// backend retrieval (local HTTP or Firecrawl) → optional truncation retry
// → cache write. It never parses or extracts content; that's the
// extractor package's job one stage downstream.
package fetcher

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/webpipe-gateway/webpipe/internal/cache"
	"github.com/webpipe-gateway/webpipe/internal/config"
	"github.com/webpipe-gateway/webpipe/internal/extractor"
	"github.com/webpipe-gateway/webpipe/internal/model"
	"github.com/webpipe-gateway/webpipe/internal/rewrite"
)

// Fetcher is the fetch-stage entry point, shared across a request's
// bounded fan-out of URLs.
type Fetcher struct {
	cfg        *config.AppConfig
	cache      cache.Cache
	httpClient *http.Client
	firecrawl  *FirecrawlClient // nil until lazily constructed on first use
}

// New builds a Fetcher over the given cache backend and a shared HTTP
// client (connection pooling matters here: every URL in a request's
// fan-out goes through this one client).
func New(cfg *config.AppConfig, c cache.Cache) *Fetcher {
	return &Fetcher{
		cfg:        cfg,
		cache:      c,
		httpClient: &http.Client{},
	}
}

// Fetch runs one retrieval: rewrite, cache lookup, backend fetch (with
// truncation retry), cache write. The returned warning codes are ordered
// the way they were detected; the caller merges them into the per-URL
// warnings list.
func (f *Fetcher) Fetch(ctx context.Context, req model.FetchRequest) (*model.FetchResponse, []model.WarningCode, *model.Error) {
	var warnings []model.WarningCode

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, nil, model.NewError(model.ErrInvalidParams, "invalid URL %q: %v", req.URL, err)
	}

	rw := rewrite.Apply(f.cfg, u.Scheme, u.Host, u.Path, u.RawQuery, req.URL)
	finalURL := rw.FinalURL
	if rw.Warning != "" {
		warnings = append(warnings, rw.Warning)
	}

	backend := req.Backend
	if backend == "" {
		backend = "local"
	}

	key := cache.Key(finalURL, backend, req.MaxBytes, req.Headers)

	if req.Cache.Read {
		if entry, found := f.cache.Get(ctx, key); found {
			ttl := int64(-1)
			if req.Cache.TTLS != nil {
				ttl = *req.Cache.TTLS
			}
			if cache.Fresh(entry.Meta.StoredAtEpoch, ttl, model.Now()) {
				resp := &model.FetchResponse{
					RequestedURL: req.URL,
					FinalURL:     entry.Meta.FinalURL,
					Status:       entry.Meta.Status,
					ContentType:  entry.Meta.ContentType,
					Headers:      entry.Meta.Headers,
					Body:         entry.Body,
					Source:       model.SourceCache,
					TimingsMS:    map[string]int64{},
				}
				return resp, warnings, nil
			}
		}
	}

	timeout := time.Duration(req.TimeoutMS) * time.Millisecond
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var resp *model.FetchResponse
	var fetchErr *model.Error

	// The backend retrieves the rewritten URL; RequestedURL below still
	// reports what the caller asked for.
	target := req
	target.URL = finalURL

	switch backend {
	case "firecrawl":
		resp, fetchErr = f.fetchFirecrawl(fetchCtx, target)
	default:
		resp, warnings, fetchErr = f.fetchLocal(fetchCtx, target, warnings)
	}

	if fetchErr != nil {
		return nil, warnings, fetchErr
	}

	resp.RequestedURL = req.URL
	if resp.FinalURL == "" {
		resp.FinalURL = finalURL
	}

	if resp.Status >= 400 {
		warnings = append(warnings, model.WarnHTTPStatusError)
	}
	if resp.Status == 429 {
		warnings = append(warnings, model.WarnHTTPRateLimited)
	}
	if extractor.IsJSChallenge(string(resp.Body)) {
		warnings = append(warnings, model.WarnBlockedByJSChallenge)
	}

	if req.Cache.Write {
		ttl := int64(-1)
		if req.Cache.TTLS != nil {
			ttl = *req.Cache.TTLS
		}
		entry := &cache.Entry{
			Meta: model.CacheEntry{
				FinalURL:    resp.FinalURL,
				Status:      resp.Status,
				ContentType: resp.ContentType,
				Headers:     resp.Headers,
			},
			Body: resp.Body,
		}
		_ = f.cache.Set(ctx, key, entry, ttl)
	}

	return resp, model.DedupeStable(warnings), nil
}

func (f *Fetcher) fetchLocal(ctx context.Context, req model.FetchRequest, warnings []model.WarningCode) (*model.FetchResponse, []model.WarningCode, *model.Error) {
	start := time.Now()
	lr, err := localFetch(ctx, f.httpClient, req.URL, req.Headers, req.MaxBytes)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, warnings, model.WrapError(model.ErrTimeout, err, "fetching %s timed out", req.URL)
		}
		return nil, warnings, model.WrapError(model.ErrFetchFailed, err, "fetching %s failed", req.URL)
	}
	localDuration := time.Since(start).Milliseconds()

	resp := &model.FetchResponse{
		FinalURL:    lr.FinalURL,
		Status:      lr.Status,
		ContentType: lr.ContentType,
		Headers:     lr.Headers,
		Body:        lr.Body,
		Truncated:   lr.Truncated,
		Source:      model.SourceNetwork,
		TimingsMS:   map[string]int64{"local": localDuration},
	}
	resp.Attempts.Local = &model.FetchAttempt{
		Backend:    "local",
		Status:     lr.Status,
		Truncated:  lr.Truncated,
		DurationMS: localDuration,
	}

	if lr.Truncated {
		warnings = append(warnings, model.WarnBodyTruncated)
	}

	if lr.Truncated && req.RetryOnTruncation && req.TruncationRetryMaxBytes > req.MaxBytes {
		retryStart := time.Now()
		retryResp, retryErr := localFetch(ctx, f.httpClient, req.URL, req.Headers, req.TruncationRetryMaxBytes)
		retryDuration := time.Since(retryStart).Milliseconds()
		if retryErr == nil {
			resp.FinalURL = retryResp.FinalURL
			resp.Status = retryResp.Status
			resp.ContentType = retryResp.ContentType
			resp.Headers = retryResp.Headers
			resp.Body = retryResp.Body
			resp.Truncated = retryResp.Truncated
			resp.TimingsMS["truncation_retry"] = retryDuration
			resp.Attempts.TruncationRetry = &model.FetchAttempt{
				Backend:    "local",
				Status:     retryResp.Status,
				Truncated:  retryResp.Truncated,
				DurationMS: retryDuration,
			}
		}
	}

	return resp, warnings, nil
}

func (f *Fetcher) fetchFirecrawl(ctx context.Context, req model.FetchRequest) (*model.FetchResponse, *model.Error) {
	if f.firecrawl == nil {
		client, err := NewFirecrawlClient(f.cfg, f.httpClient)
		if err != nil {
			return nil, model.WrapError(model.ErrNotConfigured, err, "firecrawl backend unavailable")
		}
		f.firecrawl = client
	}

	start := time.Now()
	markdown, err := f.firecrawl.ScrapeMarkdown(ctx, req.URL, req.TimeoutMS)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, model.WrapError(model.ErrTimeout, err, "firecrawl scrape of %s timed out", req.URL)
		}
		return nil, model.WrapError(model.ErrFetchFailed, err, "firecrawl scrape of %s failed", req.URL)
	}

	body := []byte(markdown)
	resp := &model.FetchResponse{
		FinalURL:    req.URL,
		Status:      200,
		ContentType: "text/markdown",
		Body:        body,
		Source:      model.SourceNetwork,
		TimingsMS:   map[string]int64{"firecrawl": duration},
	}
	resp.Attempts.Firecrawl = &model.FetchAttempt{
		Backend:    "firecrawl",
		Status:     200,
		DurationMS: duration,
	}
	return resp, nil
}
