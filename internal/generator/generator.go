// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generator adapts the generic content-generation contract to
// the Ollama chat API.
package generator

import (
	"context"
	"io"
	"iter"
	"strings"

	"github.com/jeranaias/ollamagen/internal/config"
	"github.com/jeranaias/ollamagen/internal/genai"
	"github.com/jeranaias/ollamagen/internal/ollama"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// Operation-identifying prefixes carried by GenerationError.
const (
	prefixGenerate = "Ollama API error"
	prefixStream   = "Ollama streaming error"
	prefixEmbed    = "Ollama embedding error"
)

// GenerationError wraps a transport failure from the one-shot chat,
// streaming chat, or embedding call. The prefix identifies which
// operation failed; the upstream message is carried unmodified.
type GenerationError struct {
	Prefix string
	Cause  error
}

func (e *GenerationError) Error() string {
	return e.Prefix + ": " + e.Cause.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// GENERATOR
// =============================================================================

// OllamaGenerator implements genai.ContentGenerator against a local
// Ollama server. It is stateless per call and safe for concurrent use.
// No retries, timeouts, or backoff anywhere; cancellation is the
// caller's context.
type OllamaGenerator struct {
	client *ollama.Client
}

var _ genai.ContentGenerator = (*OllamaGenerator)(nil)

// New creates a generator for the given server address. An empty address
// falls back to the OLLAMA_HOST environment variable, then to the local
// default.
func New(baseURL string) *OllamaGenerator {
	return &OllamaGenerator{client: ollama.NewClient(config.ResolveBaseURL(baseURL))}
}

// NewWithClient creates a generator over an existing transport client.
func NewWithClient(client *ollama.Client) *OllamaGenerator {
	return &OllamaGenerator{client: client}
}

// Client exposes the underlying transport, for callers that also need
// health checks or model listing against the same server.
func (g *OllamaGenerator) Client() *ollama.Client {
	return g.client
}

// GenerateContent issues one non-streaming generation call and maps the
// result back into the generic shape.
func (g *OllamaGenerator) GenerateContent(ctx context.Context, req *genai.GenerateContentRequest) (*genai.GenerateContentResponse, error) {
	resp, err := g.client.Chat(ctx, BuildChatRequest(req, false))
	if err != nil {
		return nil, &GenerationError{Prefix: prefixGenerate, Cause: err}
	}
	return MapResponse(resp, req.Model), nil
}

// GenerateContentStream issues a streaming generation call and returns a
// lazy, forward-only sequence of mapped fragments. The sequence ends
// after the first fragment whose source chunk signaled completion
// (inclusive). A mid-stream transport failure is yielded as a
// GenerationError; fragments already delivered are not retracted.
func (g *OllamaGenerator) GenerateContentStream(ctx context.Context, req *genai.GenerateContentRequest) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		reader, err := g.client.ChatStream(ctx, BuildChatRequest(req, true))
		if err != nil {
			yield(nil, &GenerationError{Prefix: prefixStream, Cause: err})
			return
		}
		defer reader.Close()

		state := &streamState{}
		for {
			chunk, err := reader.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, &GenerationError{Prefix: prefixStream, Cause: err})
				return
			}

			if !yield(state.mapChunk(chunk, req.Model), nil) {
				return
			}
			if chunk.Done {
				return
			}
		}
	}
}

// CountTokens returns the character-based token estimate. It never fails.
func (g *OllamaGenerator) CountTokens(_ context.Context, req *genai.CountTokensRequest) (*genai.CountTokensResponse, error) {
	return &genai.CountTokensResponse{TotalTokens: EstimateTokens(req.Contents)}, nil
}

// EmbedContent concatenates the text of all turns with single spaces,
// issues one embedding call, and wraps the vector as a one-element
// embedding list.
func (g *OllamaGenerator) EmbedContent(ctx context.Context, req *genai.EmbedContentRequest) (*genai.EmbedContentResponse, error) {
	var texts []string
	for _, content := range req.Contents {
		for _, p := range content.Parts {
			if tp, ok := p.(genai.TextPart); ok {
				texts = append(texts, tp.Text)
			}
		}
	}

	resp, err := g.client.Embeddings(ctx, &ollama.EmbeddingRequest{
		Model:  req.Model,
		Prompt: strings.Join(texts, " "),
	})
	if err != nil {
		return nil, &GenerationError{Prefix: prefixEmbed, Cause: err}
	}

	return &genai.EmbedContentResponse{
		Embeddings: []genai.ContentEmbedding{{Values: resp.Embedding}},
	}, nil
}
