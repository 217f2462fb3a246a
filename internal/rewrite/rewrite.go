// Package rewrite implements the URL rewriter: a pure, table-driven set of
// rules that map known URL patterns to higher-yield endpoints before the
// cache key is computed. First-match wins, in the order the rules are
// declared here.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/webpipe-gateway/webpipe/internal/config"
	"github.com/webpipe-gateway/webpipe/internal/model"
)

var (
	arxivAbsPattern   = regexp.MustCompile(`^/abs/([^/]+)$`)
	githubBlobPattern = regexp.MustCompile(`^/([^/]+)/([^/]+)/blob/([^/]+)/(.+)$`)
	githubIssuePattern = regexp.MustCompile(`^/([^/]+)/([^/]+)/issues/(\d+)$`)
	githubPRPattern    = regexp.MustCompile(`^/([^/]+)/([^/]+)/pull/(\d+)$`)
)

// Result is the outcome of applying the rewrite table to one URL.
type Result struct {
	FinalURL string
	Warning  model.WarningCode // empty if no rule fired
}

// Apply runs the rewrite table against rawURL, returning the possibly
// rewritten URL and the warning code for whichever single rule matched.
// Only one rule fires per URL; first match wins.
func Apply(cfg *config.AppConfig, scheme, host, path, rawQuery string, rawURL string) Result {
	hostLower := strings.ToLower(host)

	if contains(cfg.ArxivRewriteHosts, hostLower) {
		if m := arxivAbsPattern.FindStringSubmatch(path); m != nil {
			id := m[1]
			final := fmt.Sprintf("%s://%s/pdf/%s.pdf", scheme, host, id)
			return Result{FinalURL: final, Warning: model.WarnArxivAbsRewritten}
		}
	}

	if contains(cfg.GithubRewriteHosts, hostLower) {
		if m := githubBlobPattern.FindStringSubmatch(path); m != nil {
			owner, repo, branch, rest := m[1], m[2], m[3], m[4]
			if contains(cfg.GithubRewriteBranches, branch) {
				final := fmt.Sprintf("%s://%s/%s/%s/%s/%s", scheme, cfg.GithubRawHost, owner, repo, branch, rest)
				return Result{FinalURL: final, Warning: model.WarnGithubBlobRewritten}
			}
		}

		if m := githubIssuePattern.FindStringSubmatch(path); m != nil {
			owner, repo, num := m[1], m[2], m[3]
			final := fmt.Sprintf("%s/repos/%s/%s/issues/%s", cfg.GithubAPIBase, owner, repo, num)
			return Result{FinalURL: final, Warning: model.WarnGithubIssueRewritten}
		}

		if githubPRPattern.MatchString(path) {
			final := fmt.Sprintf("%s://%s%s.patch", scheme, host, path)
			return Result{FinalURL: final, Warning: model.WarnGithubPRRewritten}
		}
	}

	return Result{FinalURL: rawURL}
}

func contains(list []string, needle string) bool {
	for _, v := range list {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}
