package extractor

import "testing"

func TestDispatcherEngineForContentType(t *testing.T) {
	d := NewDispatcher()
	if name := d.EngineName("application/pdf", nil); name != "pdf" {
		t.Errorf("EngineName(pdf) = %q, want pdf", name)
	}
	if name := d.EngineName("text/html; charset=utf-8", nil); name != "html" {
		t.Errorf("EngineName(html) = %q, want html", name)
	}
	if name := d.EngineName("text/plain", nil); name != "plain" {
		t.Errorf("EngineName(text/plain) = %q, want plain", name)
	}
}

func TestDispatcherSniffsWhenContentTypeMissing(t *testing.T) {
	d := NewDispatcher()
	pdfBody := []byte("%PDF-1.4 rest of doc")
	if name := d.EngineName("", pdfBody); name != "pdf" {
		t.Errorf("EngineName(sniffed pdf) = %q, want pdf", name)
	}
	htmlBody := []byte("<!DOCTYPE html><html><head></head><body>hi</body></html>")
	if name := d.EngineName("", htmlBody); name != "html" {
		t.Errorf("EngineName(sniffed html) = %q, want html", name)
	}
	if name := d.EngineName("application/octet-stream", []byte("just some bytes")); name != "plain" {
		t.Errorf("EngineName(sniffed plain) = %q, want plain", name)
	}
}

func TestHTMLExtractorStripsChromeAndReturnsBodyText(t *testing.T) {
	body := []byte(`<html><head><style>.x{color:red}</style></head>
		<body>
			<nav>Home About</nav>
			<script>alert(1)</script>
			<p>The quick brown fox.</p>
		</body></html>`)
	e := &HTMLExtractor{}
	result, err := e.Extract(body, Options{MaxChars: 1000})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Engine != "html" {
		t.Errorf("Engine = %q, want html", result.Engine)
	}
	if want := "The quick brown fox."; result.Text != want {
		t.Errorf("Text = %q, want %q", result.Text, want)
	}
}

func TestHTMLExtractorResolvesLinksAgainstBaseURL(t *testing.T) {
	body := []byte(`<html><body><a href="/about">About</a><a href="https://other.com/x">X</a></body></html>`)
	e := &HTMLExtractor{}
	result, err := e.Extract(body, Options{MaxChars: 1000, IncludeLinks: true, BaseURL: "https://example.com/page"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(result.Links) != 2 {
		t.Fatalf("expected 2 resolved links, got %v", result.Links)
	}
}

func TestIsLowSignalDetectsEmptyAndJSBundles(t *testing.T) {
	if !IsLowSignal("") {
		t.Error("expected empty text to be low signal")
	}
	if !IsLowSignal("self.__next_s.push([1,2,'hydration data blob'])") {
		t.Error("expected JS hydration blob to be low signal")
	}
	if IsLowSignal("This is a perfectly ordinary paragraph of readable prose about gophers.") {
		t.Error("expected ordinary prose not to be flagged low signal")
	}
}

func TestIsLowSignalDetectsPunctuationNoise(t *testing.T) {
	if !IsLowSignal("!!! *** ### @@@ %%% ^^^ &&& ((( )))") {
		t.Error("expected punctuation-heavy text to be low signal")
	}
}

func TestIsJSChallengeDetectsInterstitial(t *testing.T) {
	if !IsJSChallenge("Just a moment... Checking your browser before accessing example.com. Ray ID: abc123") {
		t.Error("expected Cloudflare-style interstitial to be detected")
	}
	if IsJSChallenge("Welcome to our normal homepage with regular content.") {
		t.Error("expected normal page not to be detected as a JS challenge")
	}
}
