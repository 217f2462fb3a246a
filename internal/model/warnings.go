package model

// WarningCode is the closed, case-sensitive warning taxonomy surfaced in
// every tool response. It is expressed as a typed enum so callers never
// build ad-hoc strings; the only place a WarningCode becomes a bare string
// is the envelope's JSON boundary (it marshals as its string value because
// it is itself a string type).
type WarningCode string

const (
	WarnBodyTruncated           WarningCode = "body_truncated_by_max_bytes"
	WarnHTTPTimeout              WarningCode = "http_timeout"
	WarnHTTPStatusError          WarningCode = "http_status_error"
	WarnHTTPRateLimited          WarningCode = "http_rate_limited"
	WarnBlockedByJSChallenge     WarningCode = "blocked_by_js_challenge"
	WarnArxivAbsRewritten        WarningCode = "arxiv_abs_rewritten_to_pdf"
	WarnGithubBlobRewritten      WarningCode = "github_blob_rewritten_to_raw"
	WarnGithubIssueRewritten     WarningCode = "github_issue_rewritten_to_api"
	WarnGithubPRRewritten        WarningCode = "github_pr_rewritten_to_patch"
	WarnFirecrawlFallbackLowSig WarningCode = "firecrawl_fallback_on_low_signal"
	WarnFirecrawlFallbackEmpty  WarningCode = "firecrawl_fallback_on_empty_extraction"
	WarnDeadlineExceededPartial WarningCode = "deadline_exceeded_partial"
	WarnNoQueryOverlapAnyURL    WarningCode = "no_query_overlap_any_url"
	WarnEmptyQueryOrCandidates  WarningCode = "empty_query_or_candidates"
	WarnLowSignalExtraction     WarningCode = "low_signal_extraction"
	WarnPDFExtractionEmpty      WarningCode = "pdf_extraction_empty"
)

// Hint returns the one-line human-readable explanation used in the
// Markdown "### Warning hints" subsection of a tool response.
func (w WarningCode) Hint() string {
	switch w {
	case WarnBodyTruncated:
		return "Response body was cut off at max_bytes — raise max_bytes or accept partial content."
	case WarnHTTPTimeout:
		return "The fetch exceeded its timeout — try a longer timeout_ms or a different URL."
	case WarnHTTPStatusError:
		return "Upstream returned a non-2xx status — check the URL or the site's availability."
	case WarnHTTPRateLimited:
		return "HTTP 429 — slow down or provide a different URL."
	case WarnBlockedByJSChallenge:
		return "The site returned a JS/anti-bot challenge page instead of content."
	case WarnArxivAbsRewritten:
		return "arXiv abstract URL was rewritten to its PDF for richer extraction."
	case WarnGithubBlobRewritten:
		return "GitHub blob URL was rewritten to the raw content host."
	case WarnGithubIssueRewritten:
		return "GitHub issue URL was rewritten to the REST API for structured data."
	case WarnGithubPRRewritten:
		return "GitHub pull request URL was rewritten to its .patch form."
	case WarnFirecrawlFallbackLowSig:
		return "Local fetch yielded low-signal content; retried via Firecrawl."
	case WarnFirecrawlFallbackEmpty:
		return "Local fetch yielded no extractable text; retried via Firecrawl."
	case WarnDeadlineExceededPartial:
		return "The global deadline elapsed before all URLs finished — results are partial."
	case WarnNoQueryOverlapAnyURL:
		return "No chunk on any URL shared a token with the query — try a broader query."
	case WarnEmptyQueryOrCandidates:
		return "Query or candidate text was empty, so nothing could be scored."
	case WarnLowSignalExtraction:
		return "Extracted text looked like script/markup noise rather than prose."
	case WarnPDFExtractionEmpty:
		return "PDF extraction produced no text (scanned image or empty document)."
	default:
		return string(w)
	}
}

// DedupeStable removes duplicate warning codes, preserving the order of
// first occurrence.
func DedupeStable(codes []WarningCode) []WarningCode {
	seen := make(map[WarningCode]struct{}, len(codes))
	out := make([]WarningCode, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
