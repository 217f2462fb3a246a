package chunker

import (
	"strings"
	"testing"
)

func TestSegmentEmptyText(t *testing.T) {
	if got := Segment("", 100); got != nil {
		t.Fatalf("Segment(\"\") = %v, want nil", got)
	}
}

func TestSegmentRespectsMaxChunkChars(t *testing.T) {
	text := strings.Repeat("word ", 500) // 2500 chars
	candidates := Segment(text, 100)
	if len(candidates) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.End-c.Start > 100+1 { // small slack for break search
			t.Errorf("chunk [%d,%d) exceeds max_chunk_chars: len=%d", c.Start, c.End, c.End-c.Start)
		}
	}
}

func TestSegmentPrefersBlankLineBreak(t *testing.T) {
	text := strings.Repeat("a", 50) + "\n\n" + strings.Repeat("b", 50)
	candidates := Segment(text, 60)
	if len(candidates) == 0 {
		t.Fatal("expected at least one candidate")
	}
	// first chunk should end at or before the blank line, not mid "b" run
	if strings.Contains(candidates[0].Text, "b") {
		t.Errorf("expected first chunk to break before the second paragraph, got %q", candidates[0].Text)
	}
}

func TestSegmentCoversWholeText(t *testing.T) {
	text := strings.Repeat("x", 1000)
	candidates := Segment(text, 300)
	covered := 0
	for _, c := range candidates {
		covered += c.End - c.Start
	}
	if covered == 0 {
		t.Fatal("expected non-zero coverage")
	}
	if candidates[len(candidates)-1].End != len([]rune(text)) {
		t.Fatalf("last chunk end = %d, want %d", candidates[len(candidates)-1].End, len([]rune(text)))
	}
}
