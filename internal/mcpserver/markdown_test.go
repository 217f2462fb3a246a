package mcpserver

import (
	"strings"
	"testing"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

func TestRenderMarkdownSuccessIncludesSummaryAndResults(t *testing.T) {
	env := &model.EvidenceEnvelope{
		SchemaVersion: model.SchemaVersion,
		Kind:          "web_fetch",
		OK:            true,
		Results: []model.URLResult{
			{URL: "https://example.com", OK: true, Status: 200},
		},
	}
	md := renderMarkdown("Summary", env, false)
	if !strings.HasPrefix(md, "## Summary") {
		t.Fatalf("expected markdown to start with '## Summary', got %q", md)
	}
	if !strings.Contains(md, "1 of 1 URLs produced usable output") {
		t.Errorf("expected success count line, got %q", md)
	}
	if !strings.Contains(md, "https://example.com") {
		t.Errorf("expected result URL in output, got %q", md)
	}
}

func TestRenderMarkdownFailureIncludesErrorAndNextStep(t *testing.T) {
	env := &model.EvidenceEnvelope{
		OK:    false,
		Error: model.NewError(model.ErrTimeout, "fetch timed out"),
	}
	md := renderMarkdown("Summary", env, false)
	if !strings.Contains(md, "timeout") {
		t.Errorf("expected error code in output, got %q", md)
	}
	if !strings.Contains(md, "Next step:") {
		t.Errorf("expected a next-step line, got %q", md)
	}
}

func TestRenderMarkdownIncludesWarningHints(t *testing.T) {
	env := &model.EvidenceEnvelope{
		OK:           true,
		WarningCodes: []model.WarningCode{model.WarnHTTPTimeout},
	}
	md := renderMarkdown("Summary", env, false)
	if !strings.Contains(md, "### Warning hints") {
		t.Fatalf("expected a Warning hints section, got %q", md)
	}
	if !strings.Contains(md, model.WarnHTTPTimeout.Hint()) {
		t.Errorf("expected the hint text for %s, got %q", model.WarnHTTPTimeout, md)
	}
}

func TestRenderMarkdownOmitsChunkExcerptsUnlessRequested(t *testing.T) {
	env := &model.EvidenceEnvelope{
		OK: true,
		TopChunks: []model.Chunk{
			{SourceURL: "https://example.com", Score: 0.9, Text: "a very specific excerpt marker xyz"},
		},
	}
	withoutExcerpts := renderMarkdown("Summary", env, false)
	if strings.Contains(withoutExcerpts, "excerpt marker xyz") {
		t.Error("expected excerpt text to be omitted when chunkExcerpts is false")
	}
	withExcerpts := renderMarkdown("Summary", env, true)
	if !strings.Contains(withExcerpts, "excerpt marker xyz") {
		t.Error("expected excerpt text to be included when chunkExcerpts is true")
	}
}

func TestExcerptTruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := excerpt(long, 240)
	if !strings.HasPrefix(got, strings.Repeat("a", 240)) {
		t.Fatalf("expected excerpt to keep the first 240 chars, got len=%d", len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected truncated excerpt to end with an ellipsis, got %q", got)
	}
}

func TestCountOKCountsOnlySuccessfulResults(t *testing.T) {
	results := []model.URLResult{{OK: true}, {OK: false}, {OK: true}}
	if got := countOK(results); got != 2 {
		t.Fatalf("countOK() = %d, want 2", got)
	}
}
