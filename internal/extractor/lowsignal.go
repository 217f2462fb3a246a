package extractor

import (
	"strings"
	"unicode"
)

// jsBundleSentinels are substrings that show up in minified Next.js/React
// hydration payloads, the classic "non-empty but useless" extraction the
// low-signal check exists to catch (grounded in the JS-bundle fixture used
// by the firecrawl fallback contract: a page whose only content is a
// `self.__next_s.push(...)` hydration blob).
var jsBundleSentinels = []string{
	"__next_s",
	"suppresshydrationwarning",
	"webpackjsonp",
	"__webpack_require__",
}

// IsLowSignal reports whether extracted text is unlikely to carry any real
// content: empty, mostly punctuation runs, a JS-bundle sentinel, or too few
// alphabetic words relative to total words. This is the trigger for the
// Firecrawl fallback retry.
func IsLowSignal(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, sentinel := range jsBundleSentinels {
		if strings.Contains(lower, sentinel) {
			return true
		}
	}

	if punctuationRunRatio(trimmed) >= 0.8 {
		return true
	}

	if alphabeticWordRatio(trimmed) < 0.25 {
		return true
	}

	return false
}

// punctuationRunRatio is the fraction of runes that are punctuation or
// symbol characters rather than letters, digits, or whitespace.
func punctuationRunRatio(s string) float64 {
	var total, punct int
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			punct++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(punct) / float64(total)
}

// alphabeticWordRatio is the fraction of whitespace-delimited words that
// contain at least one letter.
func alphabeticWordRatio(s string) float64 {
	words := strings.Fields(s)
	if len(words) == 0 {
		return 0
	}
	alpha := 0
	for _, w := range words {
		for _, r := range w {
			if unicode.IsLetter(r) {
				alpha++
				break
			}
		}
	}
	return float64(alpha) / float64(len(words))
}

// jsChallengeMarkers are the Cloudflare-style interstitial strings that
// indicate a page was blocked behind a JS challenge rather than actually
// served (grounded in the "Just a moment... / Ray ID" fixture).
var jsChallengeMarkers = []string{
	"just a moment",
	"ray id:",
	"checking your browser before accessing",
	"needs to review the security of your connection",
}

// IsJSChallenge reports whether body looks like a JS-challenge interstitial
// rather than real page content.
func IsJSChallenge(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range jsChallengeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
