package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/webpipe-gateway/webpipe/internal/useragent"
)

// localResult is the raw outcome of one local HTTP GET, before any
// cache/retry/fallback decisions are applied.
type localResult struct {
	FinalURL    string
	Status      int
	ContentType string
	Headers     map[string]string
	Body        []byte
	Truncated   bool
}

// localFetch performs a single bounded GET: it reads at most maxBytes+1
// bytes so the caller can tell "exactly maxBytes" apart from "truncated".
func localFetch(ctx context.Context, client *http.Client, url string, headers map[string]string, maxBytes int64) (*localResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", useragent.Random())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	truncated := false
	if int64(len(body)) > maxBytes {
		body = body[:maxBytes]
		truncated = true
	}

	respHeaders := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		respHeaders[k] = resp.Header.Get(k)
	}

	return &localResult{
		FinalURL:    resp.Request.URL.String(),
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Headers:     respHeaders,
		Body:        body,
		Truncated:   truncated,
	}, nil
}
