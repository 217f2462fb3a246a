package compare

import "testing"

func TestCanonicalizeURLDropsFragmentAndLowercasesHost(t *testing.T) {
	got := CanonicalizeURL("HTTPS://Example.COM/path#section-2")
	want := "https://example.com/path"
	if got != want {
		t.Fatalf("CanonicalizeURL() = %q, want %q", got, want)
	}
}

func TestURLSetTruncatesToK(t *testing.T) {
	urls := []string{"https://a.com", "https://b.com", "https://c.com"}
	set := URLSet(urls, 2)
	if len(set) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(set))
	}
	if set["https://c.com"] {
		t.Error("expected URLSet to stop at k=2, but found the 3rd URL")
	}
}

func TestJaccardBothEmptyIsOne(t *testing.T) {
	if got := Jaccard(map[string]bool{}, map[string]bool{}); got != 1.0 {
		t.Fatalf("Jaccard(empty, empty) = %v, want 1.0", got)
	}
}

func TestJaccardOneEmptyIsZero(t *testing.T) {
	a := map[string]bool{"x": true}
	if got := Jaccard(a, map[string]bool{}); got != 0.0 {
		t.Fatalf("Jaccard(a, empty) = %v, want 0.0", got)
	}
}

func TestJaccardPartialOverlap(t *testing.T) {
	a := map[string]bool{"x": true, "y": true}
	b := map[string]bool{"y": true, "z": true}
	got := Jaccard(a, b)
	want := 1.0 / 3.0
	if got != want {
		t.Fatalf("Jaccard() = %v, want %v", got, want)
	}
}

func TestDiffReturnsSortedSetDifferences(t *testing.T) {
	a := map[string]bool{"x": true, "y": true}
	b := map[string]bool{"y": true, "z": true}
	aOnly, bOnly := Diff(a, b)
	if len(aOnly) != 1 || aOnly[0] != "x" {
		t.Fatalf("aOnly = %v, want [x]", aOnly)
	}
	if len(bOnly) != 1 || bOnly[0] != "z" {
		t.Fatalf("bOnly = %v, want [z]", bOnly)
	}
}

func TestTextJaccardIdenticalTextIsOne(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	if got := TextJaccard(text, text, 3); got != 1.0 {
		t.Fatalf("TextJaccard(identical) = %v, want 1.0", got)
	}
}

func TestTextJaccardDisjointTextIsZero(t *testing.T) {
	got := TextJaccard("alpha beta gamma delta", "one two three four", 2)
	if got != 0.0 {
		t.Fatalf("TextJaccard(disjoint) = %v, want 0.0", got)
	}
}
