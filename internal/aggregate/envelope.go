package aggregate

import (
	"context"
	"sort"

	"github.com/webpipe-gateway/webpipe/internal/model"
	"github.com/webpipe-gateway/webpipe/internal/normalize"
)

// BuildEnvelope runs the full fetch→extract→chunk fan-out for req, applies
// the requested URL selection mode, merges per-URL chunks into the
// envelope's global top_chunks, and assembles the stable response
// contract.
func (a *Aggregator) BuildEnvelope(ctx context.Context, kind string, req normalize.Request) *model.EvidenceEnvelope {
	// url_selection_mode is applied to the candidate URL list before this
	// call (see RankSearchURLs), not to the hydrated results here: results[]
	// must preserve req.URLs order so results[i].url == req.URLs[i] holds
	// for every returned i.
	ordered, partial := a.ProcessURLs(ctx, req)

	var allWarnings []model.WarningCode
	var allChunks []model.Chunk
	anyOK := false
	for i := range ordered {
		r := &ordered[i]
		allWarnings = append(allWarnings, r.Warnings...)
		if r.OK {
			anyOK = true
		}
		if r.Extract != nil {
			allChunks = append(allChunks, r.Extract.Chunks...)
		}
		if req.Compact {
			r.Attempts = nil
		}
	}
	if partial {
		allWarnings = append(allWarnings, model.WarnDeadlineExceededPartial)
	}

	sort.SliceStable(allChunks, func(i, j int) bool {
		if allChunks[i].Score != allChunks[j].Score {
			return allChunks[i].Score > allChunks[j].Score
		}
		if allChunks[i].SourceURL != allChunks[j].SourceURL {
			return allChunks[i].SourceURL < allChunks[j].SourceURL
		}
		return allChunks[i].StartChar < allChunks[j].StartChar
	})
	if req.TopChunks > 0 && len(allChunks) > req.TopChunks {
		allChunks = allChunks[:req.TopChunks]
	}

	noOverlap := len(allChunks) == 0 || allChunks[0].Score == 0
	if req.Query != "" && noOverlap && len(ordered) > 0 {
		allWarnings = append(allWarnings, model.WarnNoQueryOverlapAnyURL)
	}

	env := &model.EvidenceEnvelope{
		SchemaVersion: model.SchemaVersion,
		Kind:          kind,
		OK:            anyOK || len(ordered) == 0,
		Results:       ordered,
		TopChunks:     allChunks,
		WarningCodes:  model.DedupeStable(allWarnings),
	}
	if len(ordered) == 1 {
		env.FinalURL = ordered[0].FinalURL
	}

	if req.AgenticEnabled && req.Query != "" && noOverlap {
		env.Agentic = a.runAgenticRound(ctx, req, env)
	}

	return env
}
