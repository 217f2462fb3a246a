package aggregate

import (
	"reflect"
	"testing"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

func TestSelectOrderPreserveIsIdentity(t *testing.T) {
	got := SelectOrder("preserve", []float64{0.1, 0.9, 0.5})
	want := []int{0, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SelectOrder(preserve) = %v, want %v", got, want)
	}
}

func TestSelectOrderQueryRankSortsDescending(t *testing.T) {
	got := SelectOrder("query_rank", []float64{0.1, 0.9, 0.5})
	want := []int{1, 2, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SelectOrder(query_rank) = %v, want %v", got, want)
	}
}

func TestSelectOrderQueryRankStableOnTies(t *testing.T) {
	got := SelectOrder("query_rank", []float64{0.5, 0.5, 0.9})
	want := []int{2, 0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SelectOrder(query_rank) with ties = %v, want %v", got, want)
	}
}

func TestSelectOrderParetoFavorsEarlyAndHighScoring(t *testing.T) {
	// index 0 ranks first in both search order and score -> should stay first.
	got := SelectOrder("pareto", []float64{0.9, 0.1, 0.8})
	if got[0] != 0 {
		t.Fatalf("expected index 0 to win pareto order, got %v", got)
	}
}

func TestSelectOrderUnknownModeDefaultsToPreserve(t *testing.T) {
	got := SelectOrder("bogus", []float64{0.1, 0.9})
	want := []int{0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SelectOrder(bogus) = %v, want preserve-style %v", got, want)
	}
}

func TestDocScoreUsesHighestChunkScore(t *testing.T) {
	r := model.URLResult{
		Extract: &model.ExtractResult{
			Chunks: []model.Chunk{{Score: 0.2}, {Score: 0.8}, {Score: 0.5}},
		},
	}
	if got := docScore(r); got != 0.8 {
		t.Fatalf("docScore = %v, want 0.8", got)
	}
}

func TestDocScoreNoExtractIsZero(t *testing.T) {
	if got := docScore(model.URLResult{}); got != 0 {
		t.Fatalf("docScore with nil Extract = %v, want 0", got)
	}
}

func TestRankSearchURLsPreserveIsNoop(t *testing.T) {
	results := []model.SearchResult{{URL: "a"}, {URL: "b"}}
	got := RankSearchURLs("preserve", "golang concurrency", results)
	if !reflect.DeepEqual(got, results) {
		t.Fatalf("RankSearchURLs(preserve) = %v, want unchanged %v", got, results)
	}
}

func TestRankSearchURLsQueryRankScoresTitleAndSnippet(t *testing.T) {
	results := []model.SearchResult{
		{URL: "a", Title: "unrelated topic", Snippet: "nothing to do with it"},
		{URL: "b", Title: "golang concurrency patterns", Snippet: "goroutines and channels"},
	}
	got := RankSearchURLs("query_rank", "golang concurrency", results)
	if got[0].URL != "b" {
		t.Fatalf("RankSearchURLs(query_rank)[0].URL = %q, want %q", got[0].URL, "b")
	}
}

func TestRankSearchURLsEmptyInputIsEmpty(t *testing.T) {
	got := RankSearchURLs("query_rank", "q", nil)
	if len(got) != 0 {
		t.Fatalf("RankSearchURLs with no results = %v, want empty", got)
	}
}
