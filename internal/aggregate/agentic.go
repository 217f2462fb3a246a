package aggregate

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/webpipe-gateway/webpipe/internal/chunker"
	"github.com/webpipe-gateway/webpipe/internal/model"
	"github.com/webpipe-gateway/webpipe/internal/normalize"
)

// runAgenticRound is the one honest "agentic" step this gateway performs:
// when no URL's chunks overlap the original query at all, it re-chunks the
// already-fetched extracted text against a single reformulated follow-up
// query — the original query plus its own longest token, on the theory
// that the longest token is the one most likely to be a content word worth
// widening the match on — and keeps whichever scoring found any overlap.
// It does not re-fetch, re-search, or call out to a model; it's a bounded,
// deterministic retry, not a genuine agent loop, and the trace says so.
func (a *Aggregator) runAgenticRound(ctx context.Context, req normalize.Request, env *model.EvidenceEnvelope) *model.Agentic {
	roundID := uuid.NewString()
	trace := []string{"query:" + req.Query}

	longest := longestToken(chunker.Tokenize(req.Query))
	if longest == "" {
		trace = append(trace, "no tokens to widen the query with; agentic round skipped")
		return &model.Agentic{Enabled: true, RoundID: roundID, Trace: trace, TraceLen: len(trace)}
	}
	reformulated := req.Query + " " + longest
	trace = append(trace, "query:"+reformulated)

	var allChunks []model.Chunk
	for i := range env.Results {
		r := &env.Results[i]
		if r.Extract == nil || r.Extract.Text == "" {
			continue
		}
		chunks, _ := chunker.ChunkAndRank(r.Extract.Text, r.FinalURL, reformulated, req.MaxChunkChars, req.TopChunks)
		r.Extract.Chunks = chunks
		allChunks = append(allChunks, chunks...)
	}

	sort.SliceStable(allChunks, func(i, j int) bool {
		if allChunks[i].Score != allChunks[j].Score {
			return allChunks[i].Score > allChunks[j].Score
		}
		return allChunks[i].StartChar < allChunks[j].StartChar
	})
	if req.TopChunks > 0 && len(allChunks) > req.TopChunks {
		allChunks = allChunks[:req.TopChunks]
	}

	if len(allChunks) > 0 && allChunks[0].Score > 0 {
		env.TopChunks = allChunks
		trace = append(trace, "reformulated query found overlapping chunks")
	} else {
		trace = append(trace, "reformulated query still found no overlap")
	}

	_ = ctx
	return &model.Agentic{Enabled: true, RoundID: roundID, Trace: trace, TraceLen: len(trace)}
}

func longestToken(tokens []string) string {
	longest := ""
	for _, t := range tokens {
		if len(t) > len(longest) {
			longest = t
		}
	}
	return longest
}
