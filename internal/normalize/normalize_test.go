package normalize

import (
	"testing"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

func TestValidateURLSyntaxRejectsNonHTTP(t *testing.T) {
	if _, err := ValidateURLSyntax("ftp://example.com/file"); err == nil {
		t.Fatal("expected error for ftp scheme")
	}
	if _, err := ValidateURLSyntax("not a url"); err == nil {
		t.Fatal("expected error for unparseable/hostless URL")
	}
	if _, err := ValidateURLSyntax("https://example.com/ok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFilterByDomainNoFiltersIsPassthrough(t *testing.T) {
	urls := []string{"https://a.com", "https://b.com"}
	got, err := FilterByDomain(urls, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected passthrough of both URLs, got %v", got)
	}
}

func TestFilterByDomainDenyTakesPrecedence(t *testing.T) {
	urls := []string{"https://good.com/a", "https://bad.com/b"}
	got, err := FilterByDomain(urls, []string{"good.com", "bad.com"}, []string{"bad.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "https://good.com/a" {
		t.Fatalf("expected only good.com to survive, got %v", got)
	}
}

func TestFilterByDomainFailsClosedWhenEverythingFiltered(t *testing.T) {
	urls := []string{"https://a.com", "https://b.com"}
	_, err := FilterByDomain(urls, nil, []string{"a.com", "b.com"})
	if err == nil {
		t.Fatal("expected invalid_params error when domain filters remove every URL")
	}
	if err.Code != model.ErrInvalidParams {
		t.Fatalf("error code = %v, want %v", err.Code, model.ErrInvalidParams)
	}
}

func TestFilterByDomainMatchesRegistrableDomain(t *testing.T) {
	urls := []string{"https://sub.example.com/a"}
	got, err := FilterByDomain(urls, []string{"example.com"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected subdomain to match registrable domain allow-list, got %v", got)
	}
}

func TestValidateCompareSelectionModesLimits(t *testing.T) {
	if err := ValidateCompareSelectionModes([]string{"a", "b", "c"}, "query"); err == nil {
		t.Fatal("expected error for more than 2 modes")
	}
	if err := ValidateCompareSelectionModes([]string{"preserve", "query_rank"}, ""); err == nil {
		t.Fatal("expected error for empty query")
	}
	if err := ValidateCompareSelectionModes([]string{"preserve"}, "q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
