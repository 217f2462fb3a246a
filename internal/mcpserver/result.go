package mcpserver

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// toolResult assembles the response envelope: structured_content (the
// canonical JSON) plus content[0] (the Markdown rendering), with the two
// WEBPIPE_MCP_* rendering knobs applied.
func (s *Server) toolResult(heading string, env *model.EvidenceEnvelope, compact bool) (*mcp.CallToolResult, error) {
	if compact {
		compactEnvelope(env)
	}

	md := renderMarkdown(heading, env, s.cfg.MCPMarkdownChunkExcerpts)

	content := []mcp.Content{mcp.NewTextContent(md)}
	if s.cfg.MCPIncludeJSONText {
		if raw, err := json.Marshal(env); err == nil {
			content = append(content, mcp.NewTextContent(string(raw)))
		}
	}

	return &mcp.CallToolResult{
		Content:           content,
		StructuredContent: env,
		IsError:           !env.OK,
	}, nil
}

// errorResult builds a tool-level failure response: ok=false, an error
// object, and a Markdown rationale plus next-step suggestion.
func (s *Server) errorResult(kind string, err *model.Error) (*mcp.CallToolResult, error) {
	env := &model.EvidenceEnvelope{
		SchemaVersion: model.SchemaVersion,
		Kind:          kind,
		OK:            false,
		Error:         err,
		WarningCodes:  []model.WarningCode{},
	}
	return s.toolResult("Summary", env, false)
}

// compactEnvelope drops the per-URL fetch_source/truncated/raw attempts
// detail and the full agentic trace, keeping summary keys only.
func compactEnvelope(env *model.EvidenceEnvelope) {
	for i := range env.Results {
		env.Results[i].FetchSource = ""
		env.Results[i].Truncated = false
		env.Results[i].Attempts = nil
	}
	if env.Agentic != nil {
		env.Agentic.TraceLen = len(env.Agentic.Trace)
		env.Agentic.Trace = nil
	}
}
