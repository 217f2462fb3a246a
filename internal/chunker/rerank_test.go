package chunker

import (
	"testing"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

func TestRerankEmptyQueryWarns(t *testing.T) {
	candidates := []Candidate{{Start: 0, End: 5, Text: "hello"}}
	chunks, warn := Rerank("", candidates, "https://example.com", 5)
	if chunks != nil {
		t.Fatalf("expected no chunks for empty query, got %v", chunks)
	}
	if warn != model.WarnEmptyQueryOrCandidates {
		t.Fatalf("warn = %v, want %v", warn, model.WarnEmptyQueryOrCandidates)
	}
}

func TestRerankOrdersByScoreThenPosition(t *testing.T) {
	candidates := []Candidate{
		{Start: 100, End: 150, Text: "irrelevant filler text"},
		{Start: 0, End: 50, Text: "go programming language concurrency"},
		{Start: 50, End: 100, Text: "go programming tutorials"},
	}
	chunks, warn := Rerank("go programming", candidates, "https://example.com", 5)
	if warn != "" {
		t.Fatalf("unexpected warning: %v", warn)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0].StartChar != 0 {
		t.Errorf("expected highest scoring chunk first (start=0), got start=%d score=%v", chunks[0].StartChar, chunks[0].Score)
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i-1].Score < chunks[i].Score {
			t.Errorf("chunks not sorted by descending score: %v then %v", chunks[i-1].Score, chunks[i].Score)
		}
	}
}

func TestRerankStableTieBreakOnPosition(t *testing.T) {
	candidates := []Candidate{
		{Start: 50, End: 60, Text: "alpha beta"},
		{Start: 0, End: 10, Text: "alpha beta"},
	}
	chunks, _ := Rerank("alpha beta", candidates, "u", 5)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].StartChar != 0 || chunks[1].StartChar != 50 {
		t.Fatalf("expected tie-break by ascending start_char, got order %d, %d", chunks[0].StartChar, chunks[1].StartChar)
	}
}

func TestRerankRespectsTopK(t *testing.T) {
	candidates := make([]Candidate, 10)
	for i := range candidates {
		candidates[i] = Candidate{Start: i * 10, End: i*10 + 5, Text: "match term"}
	}
	chunks, _ := Rerank("match", candidates, "u", 3)
	if len(chunks) != 3 {
		t.Fatalf("expected top 3 chunks, got %d", len(chunks))
	}
}

func TestChunkAndRankEndToEnd(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog.\n\nGophers love Go concurrency patterns and channels."
	chunks, warn := ChunkAndRank(text, "https://example.com/a", "go concurrency", 60, 2)
	if warn != "" {
		t.Fatalf("unexpected warning: %v", warn)
	}
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	if chunks[0].Score <= 0 {
		t.Errorf("expected top chunk to have positive overlap score, got %v", chunks[0].Score)
	}
}
