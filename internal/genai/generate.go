// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package genai defines the generic content-generation data model.
package genai

import (
	"context"
	"iter"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// GenerationConfig holds optional sampling parameters. Fields are
// pointers so adapters copy a value only when the caller actually set it.
type GenerationConfig struct {
	Temperature     *float64
	TopP            *float64
	TopK            *int
	MaxOutputTokens *int
}

// FunctionDeclaration describes one callable function exposed to the model.
// Parameters is a JSON-Schema object copied verbatim onto the wire.
type FunctionDeclaration struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Tool is a group of function declarations offered to the model.
type Tool struct {
	FunctionDeclarations []FunctionDeclaration
}

// GenerateContentRequest is a one-shot or streaming generation request.
type GenerateContentRequest struct {
	Model             string
	Contents          []Content
	SystemInstruction *Content
	GenerationConfig  *GenerationConfig
	Tools             []Tool
}

// CountTokensRequest asks for a token estimate over the given turns.
type CountTokensRequest struct {
	Model    string
	Contents []Content
}

// EmbedContentRequest asks for an embedding over the text of the given turns.
type EmbedContentRequest struct {
	Model    string
	Contents []Content
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// FinishReason explains why generation stopped. Only two values are
// produced: a normal stop or everything else.
type FinishReason string

const (
	FinishReasonStop  FinishReason = "STOP"
	FinishReasonOther FinishReason = "OTHER"
)

// UsageMetadata summarizes token counts when the provider reported them.
// TotalTokenCount is filled only when both individual counts are present.
type UsageMetadata struct {
	PromptTokenCount     int
	CandidatesTokenCount int
	TotalTokenCount      int
}

// Candidate is one proposed completion.
type Candidate struct {
	Content      Content
	FinishReason FinishReason
}

// GenerateContentResponse is one complete response or one streaming
// fragment. ModelVersion echoes the model the request named.
type GenerateContentResponse struct {
	Candidates    []Candidate
	UsageMetadata *UsageMetadata
	ModelVersion  string
}

// Text returns the concatenated text parts of the first candidate.
// Convenient for callers that only want the plain answer.
func (r *GenerateContentResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	var out string
	for _, p := range r.Candidates[0].Content.Parts {
		if tp, ok := p.(TextPart); ok {
			out += tp.Text
		}
	}
	return out
}

// FunctionCalls returns the function-call parts of the first candidate.
func (r *GenerateContentResponse) FunctionCalls() []FunctionCallPart {
	if r == nil || len(r.Candidates) == 0 {
		return nil
	}
	var calls []FunctionCallPart
	for _, p := range r.Candidates[0].Content.Parts {
		if fc, ok := p.(FunctionCallPart); ok {
			calls = append(calls, fc)
		}
	}
	return calls
}

// CountTokensResponse carries a heuristic token estimate.
type CountTokensResponse struct {
	TotalTokens int
}

// ContentEmbedding is a single embedding vector.
type ContentEmbedding struct {
	Values []float64
}

// EmbedContentResponse wraps the returned vectors.
type EmbedContentResponse struct {
	Embeddings []ContentEmbedding
}

// =============================================================================
// GENERATOR INTERFACE
// =============================================================================

// ContentGenerator is the content-generation capability consumed by the
// CLI: one-shot generation, streaming generation, token counting, and
// embedding. Streaming yields fragments lazily in source order and stops
// at the first fragment whose source chunk signaled completion.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, req *GenerateContentRequest) (*GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, req *GenerateContentRequest) iter.Seq2[*GenerateContentResponse, error]
	CountTokens(ctx context.Context, req *CountTokensRequest) (*CountTokensResponse, error)
	EmbedContent(ctx context.Context, req *EmbedContentRequest) (*EmbedContentResponse, error)
}
