// Package chunker implements the chunk + lexical-overlap rerank stage:
// split extracted text into bounded segments, score each against the
// query by token overlap, and return the top_chunks in a stable order.
// Tokenization is Unicode-aware (NFD-normalize + strip combining marks)
// via golang.org/x/text rather than an ASCII-only fold.
package chunker

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Tokenize lowercases, strips diacritics, and splits s on everything that
// isn't a letter or digit, keeping tokens of length >= 2, sorted and
// deduplicated (so overlap scoring can merge-intersect two sorted lists).
func Tokenize(s string) []string {
	folded, _, err := transform.String(stripDiacritics, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() >= 2 {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
	}
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	sort.Strings(tokens)
	return dedupeSorted(tokens)
}

func dedupeSorted(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	out := tokens[:1]
	for _, t := range tokens[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}

// OverlapScore tokenizes query and text and returns their lexical overlap,
// the same scoring Rerank uses for chunks, exposed for callers that need
// to rank whole documents (e.g. search result title+snippet) rather than
// chunk candidates.
func OverlapScore(query, text string) float64 {
	return overlapScore(Tokenize(query), Tokenize(text))
}

// overlapScore is |intersection(queryTokens, textTokens)| / |queryTokens|,
// computed via a merge-walk since both slices are sorted.
func overlapScore(queryTokens, textTokens []string) float64 {
	if len(queryTokens) == 0 || len(textTokens) == 0 {
		return 0
	}
	i, j, inter := 0, 0, 0
	for i < len(queryTokens) && j < len(textTokens) {
		switch {
		case queryTokens[i] < textTokens[j]:
			i++
		case queryTokens[i] > textTokens[j]:
			j++
		default:
			inter++
			i++
			j++
		}
	}
	return float64(inter) / float64(len(queryTokens))
}
