// Package aggregate implements the pipeline orchestration stage: bounded
// parallel fan-out across a request's URLs, each going through
// fetch → extract → chunk, all under one global deadline, with
// index-preserving result ordering and envelope assembly. The bounded
// fan-out uses a golang.org/x/sync/semaphore-gated errgroup so the
// concurrency limit is exactly max_parallel_urls with no pool to pre-size
// or tear down.
package aggregate

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/webpipe-gateway/webpipe/internal/chunker"
	"github.com/webpipe-gateway/webpipe/internal/config"
	"github.com/webpipe-gateway/webpipe/internal/extractor"
	"github.com/webpipe-gateway/webpipe/internal/fetcher"
	"github.com/webpipe-gateway/webpipe/internal/logger"
	"github.com/webpipe-gateway/webpipe/internal/model"
	"github.com/webpipe-gateway/webpipe/internal/normalize"
	"github.com/webpipe-gateway/webpipe/internal/provider"
)

// Aggregator wires together the fetch, extract, chunk, and search-provider
// stages into the tool-level operations (web_fetch, web_extract,
// search_evidence and friends all funnel through ProcessURLs).
type Aggregator struct {
	cfg        *config.AppConfig
	fetcher    *fetcher.Fetcher
	extractor  *extractor.Dispatcher
	providers  *provider.Registry
}

func New(cfg *config.AppConfig, f *fetcher.Fetcher, e *extractor.Dispatcher, providers *provider.Registry) *Aggregator {
	return &Aggregator{cfg: cfg, fetcher: f, extractor: e, providers: providers}
}

// perURLOptions bundles the per-URL fetch/extract parameters derived from
// a normalized request.
type perURLOptions struct {
	TimeoutMS        int
	MaxBytes         int64
	MaxChars         int
	MaxChunkChars    int
	TopChunks        int
	IncludeText      bool
	IncludeLinks     bool
	IncludeStructure bool
	Query            string
	Backend          string
	RetryOnTruncation            bool
	TruncationRetryMaxBytes      int64
	FirecrawlFallbackOnLowSignal bool
	FirecrawlFallbackOnEmpty     bool
	CachePolicy      model.FetchCachePolicy
}

// ProcessURLs fetches, extracts, and chunks every URL in req concurrently,
// bounded by req.MaxParallelURLs and req.DeadlineMS, and returns results in
// the same order urls were given regardless of completion order.
func (a *Aggregator) ProcessURLs(ctx context.Context, req normalize.Request) ([]model.URLResult, bool) {
	logger.LogInfo("aggregate stage starting", "urls", len(req.URLs), "max_parallel_urls", req.MaxParallelURLs)
	deadline := time.Duration(req.DeadlineMS) * time.Millisecond
	dctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	opts := perURLOptions{
		TimeoutMS:                    req.TimeoutMS,
		MaxBytes:                     req.MaxBytes,
		MaxChars:                     req.MaxChars,
		MaxChunkChars:                req.MaxChunkChars,
		TopChunks:                    req.TopChunks,
		IncludeText:                  true,
		IncludeLinks:                 false,
		IncludeStructure:             false,
		Query:                        req.Query,
		Backend:                      req.FetchBackend,
		RetryOnTruncation:            true,
		TruncationRetryMaxBytes:      a.cfg.TruncationRetryMaxBytes,
		FirecrawlFallbackOnLowSignal: true,
		FirecrawlFallbackOnEmpty:     true,
		CachePolicy:                  model.DefaultFetchCachePolicy(),
	}

	results := make([]model.URLResult, len(req.URLs))
	sem := semaphore.NewWeighted(int64(maxInt(req.MaxParallelURLs, 1)))
	g, gctx := errgroup.WithContext(dctx)

	for i, u := range req.URLs {
		i, u := i, u
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				results[i] = partialDeadlineResult(u)
				return nil
			}
			defer sem.Release(1)

			results[i] = a.processOne(gctx, u, opts)
			return nil
		})
	}
	_ = g.Wait()

	partial := dctx.Err() == context.DeadlineExceeded
	for i := range results {
		if results[i].URL == "" {
			results[i] = partialDeadlineResult(req.URLs[i])
			partial = true
		}
	}

	if partial {
		logger.LogWarn("aggregate stage done", "urls", len(results), "partial", partial)
	} else {
		logger.LogInfo("aggregate stage done", "urls", len(results), "partial", partial)
	}
	return results, partial
}

func partialDeadlineResult(u string) model.URLResult {
	return model.URLResult{
		URL:     u,
		OK:      false,
		Error:   model.NewError(model.ErrTimeout, "deadline exceeded before %s could be processed", u),
		Warnings: []model.WarningCode{model.WarnDeadlineExceededPartial},
	}
}

func (a *Aggregator) processOne(ctx context.Context, rawURL string, opts perURLOptions) model.URLResult {
	req := model.FetchRequest{
		URL:                          rawURL,
		TimeoutMS:                    opts.TimeoutMS,
		MaxBytes:                     opts.MaxBytes,
		Cache:                        opts.CachePolicy,
		Backend:                      opts.Backend,
		RetryOnTruncation:            opts.RetryOnTruncation,
		TruncationRetryMaxBytes:      opts.TruncationRetryMaxBytes,
		FirecrawlFallbackOnLowSignal: opts.FirecrawlFallbackOnLowSignal,
	}

	logger.LogInfo("fetch stage starting", "url", rawURL, "backend", req.Backend)
	resp, warnings, ferr := a.fetcher.Fetch(ctx, req)
	if ferr != nil {
		logger.LogWarn("fetch stage failed", "url", rawURL, "error", ferr)
		return model.URLResult{
			URL:      rawURL,
			OK:       false,
			Error:    ferr,
			Warnings: warnings,
		}
	}
	logger.LogInfo("fetch stage done", "url", rawURL, "status", resp.Status, "truncated", resp.Truncated)

	extractOpts := extractor.Options{
		MaxChars:         opts.MaxChars,
		IncludeLinks:     opts.IncludeLinks,
		IncludeStructure: opts.IncludeStructure,
		BaseURL:          resp.FinalURL,
	}
	logger.LogInfo("extract stage starting", "url", rawURL, "content_type", resp.ContentType)
	extractResult, eerr := a.extractor.Extract(resp.ContentType, resp.Body, extractOpts)
	if eerr != nil {
		logger.LogWarn("extract stage failed", "url", rawURL, "error", eerr)
		return model.URLResult{
			URL:          rawURL,
			FinalURL:     resp.FinalURL,
			OK:           false,
			Status:       resp.Status,
			FetchBackend: req.Backend,
			FetchSource:  resp.Source,
			Truncated:    resp.Truncated,
			Error:        model.WrapError(model.ErrInternal, eerr, "extraction failed for %s", rawURL),
			Warnings:     warnings,
		}
	}
	logger.LogInfo("extract stage done", "url", rawURL, "engine", extractResult.Engine, "chars", extractResult.Chars)

	lowSignal := extractor.IsLowSignal(extractResult.Text)
	if lowSignal {
		warnings = append(warnings, model.WarnLowSignalExtraction)
		logger.LogWarn("low signal extraction", "url", rawURL)
	}
	if resp.Attempts.Local != nil {
		resp.Attempts.Local.LowSignal = lowSignal
	}

	emptyExtraction := strings.TrimSpace(extractResult.Text) == ""
	if emptyExtraction && extractResult.Engine == "pdf-extract" {
		warnings = append(warnings, model.WarnPDFExtractionEmpty)
		logger.LogWarn("pdf extraction produced no text", "url", rawURL)
	}

	backendUsed := opts.Backend
	if backendUsed == "" {
		backendUsed = "local"
	}

	fallbackOnLowSignal := lowSignal && opts.FirecrawlFallbackOnLowSignal
	fallbackOnEmpty := emptyExtraction && opts.FirecrawlFallbackOnEmpty
	if backendUsed == "local" && (fallbackOnLowSignal || fallbackOnEmpty) && a.cfg.HasFirecrawlConfig() {
		fcReq := req
		fcReq.Backend = "firecrawl"
		fcReq.Cache.Read = false
		fcResp, fcWarnings, fcErr := a.fetcher.Fetch(ctx, fcReq)
		if fcErr == nil {
			fcExtract, fcEerr := a.extractor.Extract(fcResp.ContentType, fcResp.Body, extractOpts)
			if fcEerr == nil {
				resp = fcResp
				extractResult = fcExtract
				backendUsed = "firecrawl"
				warnings = append(warnings, fcWarnings...)
				if fallbackOnEmpty && !fallbackOnLowSignal {
					warnings = append(warnings, model.WarnFirecrawlFallbackEmpty)
				} else {
					warnings = append(warnings, model.WarnFirecrawlFallbackLowSig)
				}
			}
		}
	}

	logger.LogInfo("chunk stage starting", "url", rawURL, "query", opts.Query)
	chunks, chunkWarning := chunker.ChunkAndRank(extractResult.Text, resp.FinalURL, opts.Query, opts.MaxChunkChars, opts.TopChunks)
	extractResult.Chunks = chunks
	if chunkWarning != "" {
		warnings = append(warnings, chunkWarning)
		logger.LogWarn("chunk stage attached warning", "url", rawURL, "warning", chunkWarning)
	}
	logger.LogInfo("chunk stage done", "url", rawURL, "chunks", len(chunks))
	if !opts.IncludeText {
		extractResult.Text = ""
	}

	return model.URLResult{
		URL:          rawURL,
		FinalURL:     resp.FinalURL,
		OK:           true,
		Status:       resp.Status,
		FetchBackend: backendUsed,
		FetchSource:  resp.Source,
		Truncated:    resp.Truncated,
		Extract:      extractResult,
		Warnings:     model.DedupeStable(warnings),
		Attempts:     resp.Attempts,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
