package model

import (
	"reflect"
	"testing"
)

func TestDedupeStablePreservesFirstOccurrenceOrder(t *testing.T) {
	in := []WarningCode{
		WarnHTTPTimeout,
		WarnBodyTruncated,
		WarnHTTPTimeout,
		WarnLowSignalExtraction,
		WarnBodyTruncated,
	}
	want := []WarningCode{WarnHTTPTimeout, WarnBodyTruncated, WarnLowSignalExtraction}
	got := DedupeStable(in)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DedupeStable() = %v, want %v", got, want)
	}
}

func TestDedupeStableEmptyInput(t *testing.T) {
	got := DedupeStable(nil)
	if len(got) != 0 {
		t.Fatalf("DedupeStable(nil) = %v, want empty", got)
	}
}

func TestHintCoversEveryWarningCode(t *testing.T) {
	all := []WarningCode{
		WarnBodyTruncated, WarnHTTPTimeout, WarnHTTPStatusError, WarnHTTPRateLimited,
		WarnBlockedByJSChallenge, WarnArxivAbsRewritten, WarnGithubBlobRewritten,
		WarnGithubIssueRewritten, WarnGithubPRRewritten, WarnFirecrawlFallbackLowSig,
		WarnFirecrawlFallbackEmpty, WarnDeadlineExceededPartial, WarnNoQueryOverlapAnyURL,
		WarnEmptyQueryOrCandidates, WarnLowSignalExtraction, WarnPDFExtractionEmpty,
	}
	for _, w := range all {
		if w.Hint() == string(w) {
			t.Errorf("WarningCode %q has no dedicated hint text", w)
		}
	}
}

func TestHintUnknownCodeFallsBackToRawString(t *testing.T) {
	w := WarningCode("something_new")
	if w.Hint() != "something_new" {
		t.Fatalf("Hint() = %q, want raw string fallback", w.Hint())
	}
}
