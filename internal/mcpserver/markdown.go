package mcpserver

import (
	"fmt"
	"strings"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// renderMarkdown builds the Markdown rendering returned alongside every
// tool's structured_content: it begins with one of "## Summary" /
// "## Request" / "## Query", and when warnings are present it includes a
// "### Warning hints" subsection mapping each code to a one-line hint.
// chunkExcerpts mirrors WEBPIPE_MCP_MARKDOWN_CHUNK_EXCERPTS.
func renderMarkdown(heading string, env *model.EvidenceEnvelope, chunkExcerpts bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", heading)

	if !env.OK {
		if env.Error != nil {
			fmt.Fprintf(&b, "Failed: **%s** — %s\n\n", env.Error.Code, env.Error.Message)
			fmt.Fprintf(&b, "Next step: %s\n\n", nextStepFor(env.Error.Code))
		} else {
			b.WriteString("Failed with no error detail recorded.\n\n")
		}
	} else {
		fmt.Fprintf(&b, "%d of %d URLs produced usable output.\n\n", countOK(env.Results), len(env.Results))
	}

	if env.Selection != nil {
		fmt.Fprintf(&b, "Provider: requested `%s`", env.Selection.RequestedProvider)
		if env.Selection.SelectedProvider != "" {
			fmt.Fprintf(&b, ", selected `%s`", env.Selection.SelectedProvider)
		}
		b.WriteString("\n\n")
	}
	if env.Fallback != nil {
		fmt.Fprintf(&b, "Fell back from `%s` to `%s` (%s).\n\n", env.Fallback.From, env.Fallback.To, env.Fallback.ReasonCode)
	}

	if len(env.Results) > 0 {
		b.WriteString("### Results\n\n")
		for _, r := range env.Results {
			renderResult(&b, r, chunkExcerpts)
		}
	}

	if len(env.TopChunks) > 0 {
		b.WriteString("### Top chunks\n\n")
		for i, c := range env.TopChunks {
			fmt.Fprintf(&b, "%d. `%s` (score %.2f, chars %d-%d)", i+1, c.SourceURL, c.Score, c.StartChar, c.EndChar)
			if chunkExcerpts {
				fmt.Fprintf(&b, " — %s", excerpt(c.Text, 240))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if env.Agentic != nil {
		fmt.Fprintf(&b, "### Agentic trace (round %s)\n\n", env.Agentic.RoundID)
		for _, step := range env.Agentic.Trace {
			fmt.Fprintf(&b, "- %s\n", step)
		}
		b.WriteString("\n")
	}

	if len(env.WarningCodes) > 0 {
		b.WriteString("### Warning hints\n\n")
		for _, w := range env.WarningCodes {
			fmt.Fprintf(&b, "- `%s` — %s\n", w, w.Hint())
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderResult(b *strings.Builder, r model.URLResult, chunkExcerpts bool) {
	status := "ok"
	if !r.OK {
		status = "failed"
	}
	fmt.Fprintf(b, "- **%s** (%s", r.URL, status)
	if r.Status != 0 {
		fmt.Fprintf(b, ", HTTP %d", r.Status)
	}
	if r.FinalURL != "" && r.FinalURL != r.URL {
		fmt.Fprintf(b, ", rewritten to %s", r.FinalURL)
	}
	if r.Truncated {
		b.WriteString(", truncated")
	}
	b.WriteString(")\n")

	if r.Error != nil {
		fmt.Fprintf(b, "  - error: `%s` — %s\n", r.Error.Code, r.Error.Message)
	}
	if r.Extract != nil && chunkExcerpts {
		for _, c := range r.Extract.Chunks {
			fmt.Fprintf(b, "  - chunk (score %.2f): %s\n", c.Score, excerpt(c.Text, 200))
		}
	}
}

func excerpt(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

func countOK(results []model.URLResult) int {
	n := 0
	for _, r := range results {
		if r.OK {
			n++
		}
	}
	return n
}

func nextStepFor(code model.ErrorCode) string {
	switch code {
	case model.ErrInvalidParams:
		return "check the tool arguments (URL syntax, domain filters, or selection-mode constraints)."
	case model.ErrNotConfigured:
		return "set the missing provider/backend credential as an environment variable and retry."
	case model.ErrProviderUnavailable:
		return "try an explicit provider, or retry once a configured provider is reachable."
	case model.ErrTimeout:
		return "raise timeout_ms/deadline_ms or retry against a faster endpoint."
	default:
		return "retry, or inspect the error message for the underlying cause."
	}
}
