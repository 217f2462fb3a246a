package chunker

import (
	"sort"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// Rerank scores each candidate's lexical overlap against query, then
// returns the topK ranked chunks, stable-sorted by score desc, then
// start_char asc, then end_char asc. If query or candidates is empty, it
// returns no chunks and the empty_query_or_candidates warning.
func Rerank(query string, candidates []Candidate, sourceURL string, topK int) ([]model.Chunk, model.WarningCode) {
	if topK <= 0 {
		topK = 1
	}
	if query == "" || len(candidates) == 0 {
		return nil, model.WarnEmptyQueryOrCandidates
	}

	queryTokens := Tokenize(query)

	scored := make([]model.Chunk, len(candidates))
	for i, c := range candidates {
		score := overlapScore(queryTokens, Tokenize(c.Text))
		scored[i] = model.Chunk{
			SourceURL: sourceURL,
			StartChar: c.Start,
			EndChar:   c.End,
			Score:     score,
			Text:      c.Text,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].StartChar != scored[j].StartChar {
			return scored[i].StartChar < scored[j].StartChar
		}
		return scored[i].EndChar < scored[j].EndChar
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, ""
}

// ChunkAndRank is the usual single-document entry point: segment text into
// candidates bounded by maxChunkChars, then rank them against query.
func ChunkAndRank(text, sourceURL, query string, maxChunkChars, topK int) ([]model.Chunk, model.WarningCode) {
	candidates := Segment(text, maxChunkChars)
	return Rerank(query, candidates, sourceURL, topK)
}
