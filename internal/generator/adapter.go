// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generator adapts the generic content-generation contract to
// the Ollama chat API.
package generator

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/ollamagen/internal/genai"
	"github.com/jeranaias/ollamagen/internal/ollama"
)

// =============================================================================
// REQUEST MAPPING
// =============================================================================

// ContentToMessage converts one conversation turn into an Ollama chat
// message. The "model" role becomes "assistant"; all other roles pass
// through. Text parts are joined with newlines into a single content
// string. Part kinds are mutually exclusive in the output, in strict
// priority order:
//
//  1. any function-call part: the message keeps its role and text and
//     carries one tool call per function-call part;
//  2. else any function-response part: the role is forced to "tool" and
//     the content is the JSON-serialized list of all response payloads
//     (coexisting text is ignored);
//  3. else: a plain text message.
func ContentToMessage(c genai.Content) ollama.Message {
	role := c.Role
	if role == genai.RoleModel {
		role = "assistant"
	}

	var texts []string
	var calls []ollama.ToolCall
	var responses []map[string]any
	for _, p := range c.Parts {
		switch part := p.(type) {
		case genai.TextPart:
			texts = append(texts, part.Text)
		case genai.FunctionCallPart:
			calls = append(calls, ollama.ToolCall{
				Function: ollama.ToolFunction{Name: part.Name, Arguments: part.Args},
			})
		case genai.FunctionResponsePart:
			responses = append(responses, part.Response)
		}
	}
	content := strings.Join(texts, "\n")

	switch {
	case len(calls) > 0:
		return ollama.Message{Role: role, Content: content, ToolCalls: calls}
	case len(responses) > 0:
		payload, _ := json.Marshal(responses)
		return ollama.Message{Role: "tool", Content: string(payload)}
	default:
		return ollama.Message{Role: role, Content: content}
	}
}

// BuildChatRequest converts a generic generation request into the Ollama
// chat request shape. A system instruction, when present, becomes one
// system message prepended ahead of the mapped turns. Generation options
// are copied only when set. Tool declarations keep only their first
// function declaration; a declared tool with no function declarations is
// dropped.
func BuildChatRequest(req *genai.GenerateContentRequest, stream bool) *ollama.ChatRequest {
	messages := make([]ollama.Message, 0, len(req.Contents)+1)

	if req.SystemInstruction != nil {
		messages = append(messages, ollama.NewSystemMessage(joinedText(*req.SystemInstruction)))
	}

	for _, content := range req.Contents {
		messages = append(messages, ContentToMessage(content))
	}

	chatReq := &ollama.ChatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   stream,
		Options:  &ollama.Options{},
	}

	if cfg := req.GenerationConfig; cfg != nil {
		chatReq.Options.Temperature = cfg.Temperature
		chatReq.Options.TopP = cfg.TopP
		chatReq.Options.TopK = cfg.TopK
		chatReq.Options.NumPredict = cfg.MaxOutputTokens
	}

	for _, tool := range req.Tools {
		if len(tool.FunctionDeclarations) == 0 {
			continue
		}
		// Ollama accepts one function per tool entry; extra declarations
		// on the same tool are not representable and are dropped.
		fn := tool.FunctionDeclarations[0]
		chatReq.Tools = append(chatReq.Tools, ollama.Tool{
			Type: "function",
			Function: ollama.ToolSchema{
				Name:        fn.Name,
				Description: fn.Description,
				Parameters:  fn.Parameters,
			},
		})
	}

	return chatReq
}

// joinedText concatenates the text parts of a turn with newlines.
func joinedText(c genai.Content) string {
	var texts []string
	for _, p := range c.Parts {
		if tp, ok := p.(genai.TextPart); ok {
			texts = append(texts, tp.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// =============================================================================
// RESPONSE MAPPING
// =============================================================================

// MapResponse converts a complete Ollama chat response into the generic
// response shape. Exactly one candidate is produced: a text part when the
// message content is non-empty, then one function-call part per tool
// call. The finish reason is STOP iff the response's done flag is set;
// every other termination maps to OTHER. Usage is included only when the
// response reported at least one eval count, and the total only when it
// reported both.
func MapResponse(resp *ollama.ChatResponse, model string) *genai.GenerateContentResponse {
	var parts []genai.Part
	if resp.Message.Content != "" {
		parts = append(parts, genai.TextPart{Text: resp.Message.Content})
	}
	parts = append(parts, callParts(resp.Message.ToolCalls)...)

	return &genai.GenerateContentResponse{
		Candidates: []genai.Candidate{{
			Content:      genai.Content{Role: genai.RoleModel, Parts: parts},
			FinishReason: finishReason(resp.Done),
		}},
		UsageMetadata: usageFromCounts(resp.PromptEvalCount, resp.EvalCount),
		ModelVersion:  model,
	}
}

// streamState carries the running token counts across stream fragments.
// Counts persist from the last chunk that reported a value.
type streamState struct {
	promptTokens int
	outputTokens int
}

// mapChunk converts one streaming chunk into a generic fragment. Unlike
// MapResponse, the chunk's text always becomes exactly one text part,
// even when it is the empty string. Usage is attached only once both
// running counts are non-zero.
func (s *streamState) mapChunk(chunk *ollama.ChatResponse, model string) *genai.GenerateContentResponse {
	if chunk.PromptEvalCount > 0 {
		s.promptTokens = chunk.PromptEvalCount
	}
	if chunk.EvalCount > 0 {
		s.outputTokens = chunk.EvalCount
	}

	parts := []genai.Part{genai.TextPart{Text: chunk.Message.Content}}
	parts = append(parts, callParts(chunk.Message.ToolCalls)...)

	fragment := &genai.GenerateContentResponse{
		Candidates: []genai.Candidate{{
			Content:      genai.Content{Role: genai.RoleModel, Parts: parts},
			FinishReason: finishReason(chunk.Done),
		}},
		ModelVersion: model,
	}

	if s.promptTokens > 0 && s.outputTokens > 0 {
		fragment.UsageMetadata = &genai.UsageMetadata{
			PromptTokenCount:     s.promptTokens,
			CandidatesTokenCount: s.outputTokens,
			TotalTokenCount:      s.promptTokens + s.outputTokens,
		}
	}

	return fragment
}

func callParts(calls []ollama.ToolCall) []genai.Part {
	var parts []genai.Part
	for _, call := range calls {
		parts = append(parts, genai.FunctionCallPart{
			Name: call.Function.Name,
			Args: call.Function.Arguments,
		})
	}
	return parts
}

func finishReason(done bool) genai.FinishReason {
	if done {
		return genai.FinishReasonStop
	}
	return genai.FinishReasonOther
}

func usageFromCounts(prompt, output int) *genai.UsageMetadata {
	if prompt == 0 && output == 0 {
		return nil
	}
	usage := &genai.UsageMetadata{
		PromptTokenCount:     prompt,
		CandidatesTokenCount: output,
	}
	if prompt > 0 && output > 0 {
		usage.TotalTokenCount = prompt + output
	}
	return usage
}

// =============================================================================
// TOKEN ESTIMATE
// =============================================================================

// EstimateTokens returns a heuristic token count for the text of the
// given turns: total characters divided by four, rounded up. Not a real
// tokenizer; monotonic in input length and zero for empty input.
func EstimateTokens(contents []genai.Content) int {
	chars := 0
	for _, content := range contents {
		for _, p := range content.Parts {
			if tp, ok := p.(genai.TextPart); ok {
				chars += utf8.RuneCountInString(tp.Text)
			}
		}
	}
	return (chars + 3) / 4
}
