package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// HTMLExtractor strips script/style/nav/chrome elements using goquery and
// returns the remaining visible text. Fetch and extract are separate
// pipeline stages, so this extractor only ever operates on bytes already
// in hand.
type HTMLExtractor struct{}

func (e *HTMLExtractor) Extract(body []byte, opts Options) (*model.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	doc.Find("script, style, noscript, iframe, nav, footer, header, aside, form, menu").Remove()

	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	text = truncate(text, opts.MaxChars)

	result := &model.ExtractResult{
		Text:   text,
		Engine: "html",
		Chars:  len(text),
	}

	if opts.IncludeLinks {
		result.Links = extractLinks(doc, opts.BaseURL)
	}
	if opts.IncludeStructure {
		result.Structure = extractStructure(doc)
	}
	return result, nil
}

func extractLinks(doc *goquery.Document, baseURL string) []string {
	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		resolved := resolveLink(baseURL, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links
}

func extractStructure(doc *goquery.Document) map[string]int {
	structure := make(map[string]int)
	for _, tag := range []string{"h1", "h2", "h3", "p", "a", "img", "table", "ul", "ol"} {
		if n := doc.Find(tag).Length(); n > 0 {
			structure[tag] = n
		}
	}
	return structure
}
