package aggregate

import (
	"context"

	"github.com/webpipe-gateway/webpipe/internal/extractor"
	"github.com/webpipe-gateway/webpipe/internal/model"
)

// SeedLinks fetches one seed URL and extracts the links on it: single-hop
// seed expansion with no frontier and no recursive discovery. It never
// follows a discovered link itself; the caller decides which of the
// returned links, if any, to run back through ProcessURLs.
func (a *Aggregator) SeedLinks(ctx context.Context, seedURL string, maxLinks int) (string, []string, *model.Error) {
	req := model.FetchRequest{
		URL:       seedURL,
		TimeoutMS: a.cfg.DefaultTimeoutMS,
		MaxBytes:  a.cfg.DefaultMaxBytes,
		Cache:     model.DefaultFetchCachePolicy(),
	}

	resp, _, ferr := a.fetcher.Fetch(ctx, req)
	if ferr != nil {
		return "", nil, ferr
	}

	result, eerr := a.extractor.Extract(resp.ContentType, resp.Body, extractor.Options{
		MaxChars:     a.cfg.DefaultMaxChars,
		IncludeLinks: true,
		BaseURL:      resp.FinalURL,
	})
	if eerr != nil {
		return resp.FinalURL, nil, model.WrapError(model.ErrInternal, eerr, "extracting links from seed %s", seedURL)
	}

	links := result.Links
	if maxLinks > 0 && len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return resp.FinalURL, links, nil
}
