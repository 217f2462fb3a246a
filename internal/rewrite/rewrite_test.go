package rewrite

import (
	"net/url"
	"testing"

	"github.com/webpipe-gateway/webpipe/internal/config"
	"github.com/webpipe-gateway/webpipe/internal/model"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		ArxivRewriteHosts:     []string{"arxiv.org", "www.arxiv.org"},
		GithubRewriteHosts:    []string{"github.com", "www.github.com"},
		GithubRawHost:         "raw.githubusercontent.com",
		GithubRewriteBranches: []string{"main", "master"},
		GithubAPIBase:         "https://api.github.com",
	}
}

func apply(t *testing.T, cfg *config.AppConfig, raw string) Result {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}
	return Apply(cfg, u.Scheme, u.Host, u.Path, u.RawQuery, raw)
}

func TestArxivAbsRewrittenToPDF(t *testing.T) {
	cfg := testConfig()
	got := apply(t, cfg, "http://arxiv.org/abs/1234.5678")
	if got.FinalURL != "http://arxiv.org/pdf/1234.5678.pdf" {
		t.Errorf("FinalURL = %q, want .../pdf/1234.5678.pdf", got.FinalURL)
	}
	if got.Warning != model.WarnArxivAbsRewritten {
		t.Errorf("Warning = %q, want %q", got.Warning, model.WarnArxivAbsRewritten)
	}
}

func TestGithubBlobRewrittenToRaw(t *testing.T) {
	cfg := testConfig()
	got := apply(t, cfg, "http://github.com/owner/repo/blob/main/src/lib.rs")
	want := "http://raw.githubusercontent.com/owner/repo/main/src/lib.rs"
	if got.FinalURL != want {
		t.Errorf("FinalURL = %q, want %q", got.FinalURL, want)
	}
	if got.Warning != model.WarnGithubBlobRewritten {
		t.Errorf("Warning = %q, want %q", got.Warning, model.WarnGithubBlobRewritten)
	}
}

func TestGithubBlobNotRewrittenForUnlistedBranch(t *testing.T) {
	cfg := testConfig()
	raw := "http://github.com/owner/repo/blob/feature-x/src/lib.rs"
	got := apply(t, cfg, raw)
	if got.FinalURL != raw {
		t.Errorf("FinalURL = %q, want unchanged %q", got.FinalURL, raw)
	}
	if got.Warning != "" {
		t.Errorf("expected no warning, got %q", got.Warning)
	}
}

func TestGithubIssueRewrittenToAPI(t *testing.T) {
	cfg := testConfig()
	got := apply(t, cfg, "http://github.com/owner/repo/issues/42")
	want := "https://api.github.com/repos/owner/repo/issues/42"
	if got.FinalURL != want {
		t.Errorf("FinalURL = %q, want %q", got.FinalURL, want)
	}
	if got.Warning != model.WarnGithubIssueRewritten {
		t.Errorf("Warning = %q, want %q", got.Warning, model.WarnGithubIssueRewritten)
	}
}

func TestGithubPRRewrittenToPatch(t *testing.T) {
	cfg := testConfig()
	got := apply(t, cfg, "http://github.com/owner/repo/pull/7")
	want := "http://github.com/owner/repo/pull/7.patch"
	if got.FinalURL != want {
		t.Errorf("FinalURL = %q, want %q", got.FinalURL, want)
	}
	if got.Warning != model.WarnGithubPRRewritten {
		t.Errorf("Warning = %q, want %q", got.Warning, model.WarnGithubPRRewritten)
	}
}

func TestUnmatchedURLPassesThrough(t *testing.T) {
	cfg := testConfig()
	raw := "https://example.com/some/page"
	got := apply(t, cfg, raw)
	if got.FinalURL != raw || got.Warning != "" {
		t.Errorf("got %+v, want unchanged URL with no warning", got)
	}
}

func TestHostNotInRewriteListIsUnaffected(t *testing.T) {
	cfg := testConfig()
	raw := "http://notarxiv.org/abs/1234.5678"
	got := apply(t, cfg, raw)
	if got.FinalURL != raw || got.Warning != "" {
		t.Errorf("got %+v, want unchanged URL with no warning", got)
	}
}
