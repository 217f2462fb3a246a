package aggregate

import (
	"sort"

	"github.com/webpipe-gateway/webpipe/internal/chunker"
	"github.com/webpipe-gateway/webpipe/internal/model"
)

// SelectOrder reorders candidate indices [0, n) according to mode:
//
//   - "preserve" (default): the order callers/the provider gave URLs in.
//   - "query_rank": by descending relevance score.
//   - "pareto": Borda-count combination of the search-order ranking and the
//     query_rank ranking — sum of rank positions in each, ascending, ties
//     broken by original index.
//
// scores[i] is the relevance score for the candidate originally at index i.
// This operates on fetch-priority candidates before ProcessURLs runs, not
// on already-fetched results: reordering the returned results[] after
// hydration would break the "results[i].url == input_urls[i]" guarantee.
func SelectOrder(mode string, scores []float64) []int {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	switch mode {
	case "query_rank":
		sort.SliceStable(order, func(a, b int) bool {
			return scores[order[a]] > scores[order[b]]
		})
	case "pareto":
		scoreRank := rankByScoreDesc(scores)
		borda := make([]int, n)
		for i := 0; i < n; i++ {
			searchRank := i // search-order rank is just the original index
			borda[i] = searchRank + scoreRank[i]
		}
		sort.SliceStable(order, func(a, b int) bool {
			if borda[order[a]] != borda[order[b]] {
				return borda[order[a]] < borda[order[b]]
			}
			return order[a] < order[b]
		})
	default: // "preserve"
	}

	return order
}

// RankSearchURLs reorders a provider's search results by url_selection_mode
// before any fetch happens, scoring each result's title+snippet against
// query. "preserve" returns results unchanged (the provider's own ranking).
func RankSearchURLs(mode, query string, results []model.SearchResult) []model.SearchResult {
	if mode == "" || mode == "preserve" || len(results) == 0 {
		return results
	}

	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = chunker.OverlapScore(query, r.Title+" "+r.Snippet)
	}

	order := SelectOrder(mode, scores)
	ranked := make([]model.SearchResult, len(results))
	for newIdx, oldIdx := range order {
		ranked[newIdx] = results[oldIdx]
	}
	return ranked
}

// rankByScoreDesc returns, for each index i, its 0-based rank when all
// docScores are sorted descending (rank 0 = highest score).
func rankByScoreDesc(docScores []float64) []int {
	n := len(docScores)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return docScores[idx[a]] > docScores[idx[b]] })

	rank := make([]int, n)
	for r, i := range idx {
		rank[i] = r
	}
	return rank
}

// docScore is a URLResult's relevance score: the highest chunk score it
// produced, or 0 if it has none. SelectOrder does not use it; URL ordering
// is decided before fetch from search-result scores.
func docScore(r model.URLResult) float64 {
	if r.Extract == nil {
		return 0
	}
	best := 0.0
	for _, c := range r.Extract.Chunks {
		if c.Score > best {
			best = c.Score
		}
	}
	return best
}
