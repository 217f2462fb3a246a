// Package extractor turns fetched bytes into text. It dispatches on content
// type (sniffing the body when the type is missing or
// application/octet-stream) into one of three engines: html, pdf, or
// plain. Extraction
// never performs its own network I/O; it operates on bytes the fetcher
// already retrieved.
package extractor

import (
	"strings"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// Options controls how much of the extraction result is populated and how
// it's truncated, mirroring the web_extract/search_evidence tool arguments.
type Options struct {
	MaxChars         int
	IncludeLinks     bool
	IncludeStructure bool
	BaseURL          string
}

// Extractor is implemented by each content-type-specific engine.
type Extractor interface {
	Extract(body []byte, opts Options) (*model.ExtractResult, error)
}

// Dispatcher chooses an Extractor by content type and, for ambiguous or
// missing content types, by sniffing the body.
type Dispatcher struct {
	html  Extractor
	pdf   Extractor
	plain Extractor
}

// NewDispatcher wires the three built-in engines.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		html:  &HTMLExtractor{},
		pdf:   &PDFExtractor{},
		plain: &PlainExtractor{},
	}
}

// Extract picks html/pdf/plain for contentType (and, if that's empty or
// generic, for the sniffed body) and runs it.
func (d *Dispatcher) Extract(contentType string, body []byte, opts Options) (*model.ExtractResult, error) {
	return d.engineFor(contentType, body).Extract(body, opts)
}

// EngineName reports which engine Extract would pick, for attempts metadata.
func (d *Dispatcher) EngineName(contentType string, body []byte) string {
	switch d.engineFor(contentType, body).(type) {
	case *PDFExtractor:
		return "pdf"
	case *HTMLExtractor:
		return "html"
	default:
		return "plain"
	}
}

func (d *Dispatcher) engineFor(contentType string, body []byte) Extractor {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "application/pdf"):
		return d.pdf
	case strings.Contains(ct, "text/html"), strings.Contains(ct, "application/xhtml"):
		return d.html
	case ct == "", strings.Contains(ct, "application/octet-stream"):
		return d.engineFromSniff(body)
	default:
		return d.plain
	}
}

func (d *Dispatcher) engineFromSniff(body []byte) Extractor {
	if looksLikePDF(body) {
		return d.pdf
	}
	if looksLikeHTML(body) {
		return d.html
	}
	return d.plain
}

func looksLikePDF(body []byte) bool {
	return len(body) >= 5 && string(body[:5]) == "%PDF-"
}

func looksLikeHTML(body []byte) bool {
	head := strings.ToLower(string(body[:min(len(body), 512)]))
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html") || strings.Contains(head, "<head")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
