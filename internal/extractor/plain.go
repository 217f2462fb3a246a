package extractor

import "github.com/webpipe-gateway/webpipe/internal/model"

// PlainExtractor passes non-HTML, non-PDF bodies through as-is (plain text,
// JSON, markdown, etc.) — the catch-all engine for everything the html and
// pdf engines don't claim.
type PlainExtractor struct{}

func (e *PlainExtractor) Extract(body []byte, opts Options) (*model.ExtractResult, error) {
	text := truncate(string(body), opts.MaxChars)
	return &model.ExtractResult{
		Text:   text,
		Engine: "plain",
		Chars:  len(text),
	}, nil
}
