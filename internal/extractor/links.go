package extractor

import "net/url"

// resolveLink resolves href against baseURL, returning "" for anything that
// doesn't end up as an absolute http(s) URL (mailto:, javascript:, bare
// fragments, and so on).
func resolveLink(baseURL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if baseURL == "" {
		if ref.IsAbs() && (ref.Scheme == "http" || ref.Scheme == "https") {
			return ref.String()
		}
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
