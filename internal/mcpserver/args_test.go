package mcpserver

import "testing"

func TestArgStringAndDefault(t *testing.T) {
	args := map[string]any{"q": "hello", "n": 5}
	if got := argString(args, "q"); got != "hello" {
		t.Errorf("argString = %q, want hello", got)
	}
	if got := argString(args, "missing"); got != "" {
		t.Errorf("argString(missing) = %q, want empty", got)
	}
	if got := argStringDefault(args, "missing", "fallback"); got != "fallback" {
		t.Errorf("argStringDefault = %q, want fallback", got)
	}
}

func TestArgBool(t *testing.T) {
	args := map[string]any{"flag": true}
	if !argBool(args, "flag", false) {
		t.Error("expected argBool to read true")
	}
	if !argBool(args, "missing", true) {
		t.Error("expected argBool to fall back to default")
	}
}

func TestArgIntHandlesJSONFloat64(t *testing.T) {
	args := map[string]any{"n": float64(7)}
	if got := argInt(args, "n", 0); got != 7 {
		t.Errorf("argInt = %d, want 7", got)
	}
	if got := argInt(args, "missing", 42); got != 42 {
		t.Errorf("argInt default = %d, want 42", got)
	}
}

func TestArgInt64HandlesMixedNumericTypes(t *testing.T) {
	args := map[string]any{"a": float64(100), "b": int64(200), "c": int(300)}
	if got := argInt64(args, "a", 0); got != 100 {
		t.Errorf("argInt64(float64) = %d, want 100", got)
	}
	if got := argInt64(args, "b", 0); got != 200 {
		t.Errorf("argInt64(int64) = %d, want 200", got)
	}
	if got := argInt64(args, "c", 0); got != 300 {
		t.Errorf("argInt64(int) = %d, want 300", got)
	}
}

func TestArgStringSliceAcceptsArrayOrCSV(t *testing.T) {
	fromArray := map[string]any{"urls": []any{"https://a.com", "https://b.com", ""}}
	got := argStringSlice(fromArray, "urls")
	if len(got) != 2 {
		t.Fatalf("expected 2 non-empty entries from array, got %v", got)
	}

	fromCSV := map[string]any{"urls": "https://a.com, https://b.com ,"}
	got2 := argStringSlice(fromCSV, "urls")
	if len(got2) != 2 {
		t.Fatalf("expected 2 non-empty entries from CSV, got %v", got2)
	}

	if got3 := argStringSlice(map[string]any{}, "urls"); got3 != nil {
		t.Fatalf("expected nil for missing key, got %v", got3)
	}
}

func TestSplitCSVTrimsAndDropsEmpties(t *testing.T) {
	got := splitCSV(" a, b ,, c")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitCSV() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitCSV()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestArgStringMapExtractsStringValues(t *testing.T) {
	args := map[string]any{"headers": map[string]any{"Accept": "text/html", "X-Num": 5}}
	got := argStringMap(args, "headers")
	if got["Accept"] != "text/html" {
		t.Errorf("expected Accept header preserved, got %v", got)
	}
	if _, ok := got["X-Num"]; ok {
		t.Errorf("expected non-string value to be dropped, got %v", got)
	}
}
