package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// handleWebSeedExpand implements single-hop seed expansion: fetch one seed
// page, extract its links, cap them, and run the fetch→extract→chunk
// pipeline over that one hop of links. No frontier, no recursive discovery
// past this one hop. Full toolset only — this is additive scope, not one
// of the nine normal-toolset tools.
func (s *Server) handleWebSeedExpand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	kind := "web_seed_expand"

	seed := argString(args, "seed_url")
	if seed == "" {
		return s.errorResult(kind, model.NewError(model.ErrInvalidParams, "web_seed_expand requires seed_url"))
	}
	maxLinks := argInt(args, "max_links", 10)

	finalSeedURL, links, serr := s.aggregator.SeedLinks(ctx, seed, maxLinks)
	if serr != nil {
		return s.errorResult(kind, serr)
	}
	if len(links) == 0 {
		env := &model.EvidenceEnvelope{
			SchemaVersion: model.SchemaVersion,
			Kind:          kind,
			OK:            true,
			FinalURL:      finalSeedURL,
			WarningCodes:  []model.WarningCode{model.WarnEmptyQueryOrCandidates},
		}
		return s.toolResult("Summary", env, false)
	}

	req, verr := buildRequest(s.cfg, args, links)
	if verr != nil {
		return s.errorResult(kind, verr)
	}

	env := s.aggregator.BuildEnvelope(ctx, kind, req)
	env.Request = map[string]interface{}{"seed_url": seed, "seed_final_url": finalSeedURL}
	return s.toolResult(headingFor(kind, req), env, req.Compact)
}
