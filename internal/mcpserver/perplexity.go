// web_perplexity is a thin client for Perplexity's online chat-completions
// API (api.perplexity.ai), grounded on the same net/http request/response
// idiom used throughout internal/provider (see provider/brave.go): build a
// request, set auth header, decode a small typed response shape. It is
// kept separate from the SearchProvider registry because it returns an
// answer plus citations rather than a list of ranked hits — its result
// still flows through the same EvidenceEnvelope so callers get one
// consistent contract.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/webpipe-gateway/webpipe/internal/model"
	"github.com/webpipe-gateway/webpipe/internal/useragent"
)

const perplexityEndpoint = "https://api.perplexity.ai/chat/completions"

type perplexityRequest struct {
	Model    string              `json:"model"`
	Messages []perplexityMessage `json:"messages"`
}

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityResponse struct {
	Choices []struct {
		Message perplexityMessage `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

func (s *Server) handleWebPerplexity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	kind := "web_perplexity"
	query := argString(args, "query")
	if query == "" {
		return s.errorResult(kind, model.NewError(model.ErrInvalidParams, "web_perplexity requires a non-empty query"))
	}
	if !s.cfg.HasPerplexityConfig() {
		return s.errorResult(kind, model.NewError(model.ErrNotConfigured, "no Perplexity API key configured"))
	}

	answer, citations, perr := s.askPerplexity(ctx, query, argStringDefault(args, "model", "sonar"))
	if perr != nil {
		return s.errorResult(kind, perr)
	}

	results := []model.URLResult{{
		URL: "perplexity://" + query,
		OK:  true,
		Extract: &model.ExtractResult{
			Text:   answer,
			Engine: "plain",
			Chars:  len(answer),
			Chunks: []model.Chunk{{SourceURL: "perplexity", Text: answer, Score: 1, EndChar: len(answer)}},
			Links:  citations,
		},
	}}

	env := &model.EvidenceEnvelope{
		SchemaVersion: model.SchemaVersion,
		Kind:          kind,
		OK:            true,
		Results:       results,
		TopChunks:     results[0].Extract.Chunks,
		WarningCodes:  []model.WarningCode{},
	}
	return s.toolResult("Query", env, argBool(args, "compact", false))
}

func (s *Server) askPerplexity(ctx context.Context, query, model_ string) (string, []string, *model.Error) {
	body, err := json.Marshal(perplexityRequest{
		Model: model_,
		Messages: []perplexityMessage{
			{Role: "user", Content: query},
		},
	})
	if err != nil {
		return "", nil, model.WrapError(model.ErrInternal, err, "encoding perplexity request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, perplexityEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", nil, model.WrapError(model.ErrProviderError, err, "building perplexity request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.PerplexityAPIKey)
	req.Header.Set("User-Agent", useragent.Random())

	client := s.httpClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", nil, model.WrapError(model.ErrProviderUnavailable, err, "perplexity request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", nil, model.NewError(model.ErrRateLimited, "perplexity rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, model.NewError(model.ErrProviderError, "perplexity returned HTTP %d", resp.StatusCode)
	}

	var parsed perplexityResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", nil, model.WrapError(model.ErrProviderError, err, "decoding perplexity response")
	}
	if len(parsed.Choices) == 0 {
		return "", nil, model.NewError(model.ErrLLMFailed, "perplexity returned no choices")
	}
	return parsed.Choices[0].Message.Content, parsed.Citations, nil
}
