package chunker

import "strings"

// Candidate is one candidate chunk before scoring: a [start,end) char span
// into the original text plus its substring.
type Candidate struct {
	Start int
	End   int
	Text  string
}

// Segment splits text into candidate chunks of at most maxChunkChars
// characters, preferring to break on a blank line or a sentence-ending
// punctuation mark near the boundary so chunks don't get cut mid-sentence
// when a cleaner break is available nearby.
func Segment(text string, maxChunkChars int) []Candidate {
	if maxChunkChars <= 0 {
		maxChunkChars = 800
	}
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	var out []Candidate
	start := 0
	for start < n {
		end := start + maxChunkChars
		if end >= n {
			end = n
		} else {
			end = bestBreak(runes, start, end)
		}
		segment := strings.TrimSpace(string(runes[start:end]))
		if segment != "" {
			out = append(out, Candidate{Start: start, End: end, Text: segment})
		}
		if end <= start {
			break
		}
		start = end
	}
	return out
}

// bestBreak looks backward from the naive cut point `end` for a blank line
// or sentence-ending punctuation, within a small window, so chunk
// boundaries land on natural breaks when one is nearby. Falls back to the
// naive cut point if no such break exists in the window.
func bestBreak(runes []rune, start, end int) int {
	windowStart := end - end/4
	if windowStart < start {
		windowStart = start
	}

	for i := end; i > windowStart; i-- {
		if i+1 < len(runes) && runes[i] == '\n' && runes[i+1] == '\n' {
			return i
		}
	}
	for i := end; i > windowStart; i-- {
		switch runes[i-1] {
		case '.', '!', '?':
			return i
		}
	}
	return end
}
