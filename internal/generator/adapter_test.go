// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generator adapts the generic content-generation contract to
// the Ollama chat API.
package generator

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/jeranaias/ollamagen/internal/genai"
	"github.com/jeranaias/ollamagen/internal/ollama"
)

// =============================================================================
// CONTENT-TO-MESSAGE TESTS
// =============================================================================

func TestContentToMessage_Roles(t *testing.T) {
	tests := []struct {
		name string
		role string
		want string
	}{
		{"model becomes assistant", genai.RoleModel, "assistant"},
		{"user passes through", genai.RoleUser, "user"},
		{"system passes through", genai.RoleSystem, "system"},
		{"tool passes through", genai.RoleTool, "tool"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := ContentToMessage(genai.NewContent(tc.role, genai.TextPart{Text: "x"}))
			if msg.Role != tc.want {
				t.Errorf("Role = %q, want %q", msg.Role, tc.want)
			}
		})
	}
}

func TestContentToMessage_JoinsTextWithNewlines(t *testing.T) {
	msg := ContentToMessage(genai.NewContent(genai.RoleUser,
		genai.TextPart{Text: "first"},
		genai.TextPart{Text: "second"},
	))

	if msg.Content != "first\nsecond" {
		t.Errorf("Content = %q, want %q", msg.Content, "first\nsecond")
	}
	if len(msg.ToolCalls) != 0 {
		t.Errorf("ToolCalls = %v, want none", msg.ToolCalls)
	}
}

func TestContentToMessage_FunctionCalls(t *testing.T) {
	msg := ContentToMessage(genai.NewContent(genai.RoleModel,
		genai.TextPart{Text: "calling"},
		genai.FunctionCallPart{Name: "search", Args: map[string]any{"query": "go"}},
		genai.FunctionCallPart{Name: "fetch", Args: map[string]any{"url": "x"}},
	))

	if msg.Role != "assistant" {
		t.Errorf("Role = %q, want assistant", msg.Role)
	}
	if msg.Content != "calling" {
		t.Errorf("Content = %q, want 'calling'", msg.Content)
	}
	if len(msg.ToolCalls) != 2 {
		t.Fatalf("len(ToolCalls) = %d, want 2", len(msg.ToolCalls))
	}
	if msg.ToolCalls[0].Function.Name != "search" || msg.ToolCalls[1].Function.Name != "fetch" {
		t.Errorf("tool call names = %q, %q", msg.ToolCalls[0].Function.Name, msg.ToolCalls[1].Function.Name)
	}
	if msg.ToolCalls[0].Function.Arguments["query"] != "go" {
		t.Errorf("Arguments = %v", msg.ToolCalls[0].Function.Arguments)
	}
}

func TestContentToMessage_FunctionResponses(t *testing.T) {
	msg := ContentToMessage(genai.NewContent(genai.RoleUser,
		genai.TextPart{Text: "ignored"},
		genai.FunctionResponsePart{Name: "search", Response: map[string]any{"hits": "3"}},
		genai.FunctionResponsePart{Name: "fetch", Response: map[string]any{"body": "ok"}},
	))

	// Role is forced to "tool" regardless of the original role.
	if msg.Role != "tool" {
		t.Errorf("Role = %q, want tool", msg.Role)
	}

	var payloads []map[string]any
	if err := json.Unmarshal([]byte(msg.Content), &payloads); err != nil {
		t.Fatalf("Content is not a JSON list: %v", err)
	}
	if len(payloads) != 2 {
		t.Fatalf("len(payloads) = %d, want 2", len(payloads))
	}
	if payloads[0]["hits"] != "3" || payloads[1]["body"] != "ok" {
		t.Errorf("payloads = %v", payloads)
	}
}

func TestContentToMessage_CallsTakePriorityOverResponses(t *testing.T) {
	// A turn carrying both kinds is treated purely as a tool-call turn.
	msg := ContentToMessage(genai.NewContent(genai.RoleModel,
		genai.FunctionCallPart{Name: "a"},
		genai.FunctionResponsePart{Name: "b", Response: map[string]any{"x": "y"}},
	))

	if msg.Role != "assistant" {
		t.Errorf("Role = %q, want assistant", msg.Role)
	}
	if len(msg.ToolCalls) != 1 || msg.ToolCalls[0].Function.Name != "a" {
		t.Errorf("ToolCalls = %v", msg.ToolCalls)
	}
}

// =============================================================================
// BUILD-REQUEST TESTS
// =============================================================================

func TestBuildChatRequest_Minimal(t *testing.T) {
	req := &genai.GenerateContentRequest{
		Model:    "m",
		Contents: []genai.Content{genai.Text("hi")},
	}

	chatReq := BuildChatRequest(req, false)

	if chatReq.Model != "m" {
		t.Errorf("Model = %q, want m", chatReq.Model)
	}
	if chatReq.Stream {
		t.Error("Stream should default to off")
	}
	want := []ollama.Message{{Role: "user", Content: "hi"}}
	if !reflect.DeepEqual(chatReq.Messages, want) {
		t.Errorf("Messages = %+v, want %+v", chatReq.Messages, want)
	}
	if chatReq.Options == nil || *chatReq.Options != (ollama.Options{}) {
		t.Errorf("Options = %+v, want empty", chatReq.Options)
	}
	if chatReq.Tools != nil {
		t.Errorf("Tools = %v, want none", chatReq.Tools)
	}
}

func TestBuildChatRequest_OrderAndNoSystem(t *testing.T) {
	req := &genai.GenerateContentRequest{
		Model: "m",
		Contents: []genai.Content{
			genai.Text("one"),
			genai.NewModelContent("two"),
			genai.Text("three"),
		},
	}

	chatReq := BuildChatRequest(req, false)

	if len(chatReq.Messages) != 3 {
		t.Fatalf("len(Messages) = %d, want 3", len(chatReq.Messages))
	}
	wantRoles := []string{"user", "assistant", "user"}
	wantContents := []string{"one", "two", "three"}
	for i, msg := range chatReq.Messages {
		if msg.Role != wantRoles[i] || msg.Content != wantContents[i] {
			t.Errorf("Messages[%d] = %+v, want role %q content %q", i, msg, wantRoles[i], wantContents[i])
		}
	}
}

func TestBuildChatRequest_SystemInstruction(t *testing.T) {
	sys := genai.NewContent(genai.RoleSystem,
		genai.TextPart{Text: "be brief"},
		genai.TextPart{Text: "be kind"},
	)
	req := &genai.GenerateContentRequest{
		Model:             "m",
		Contents:          []genai.Content{genai.Text("hi")},
		SystemInstruction: &sys,
	}

	chatReq := BuildChatRequest(req, false)

	if len(chatReq.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(chatReq.Messages))
	}
	if chatReq.Messages[0].Role != "system" {
		t.Errorf("first role = %q, want system", chatReq.Messages[0].Role)
	}
	if chatReq.Messages[0].Content != "be brief\nbe kind" {
		t.Errorf("system content = %q", chatReq.Messages[0].Content)
	}
}

func TestBuildChatRequest_Options(t *testing.T) {
	temp := 0.7
	topP := 0.9
	topK := 40
	maxTokens := 2048

	tests := []struct {
		name string
		cfg  *genai.GenerationConfig
		want ollama.Options
	}{
		{"nil config", nil, ollama.Options{}},
		{"all set", &genai.GenerationConfig{
			Temperature:     &temp,
			TopP:            &topP,
			TopK:            &topK,
			MaxOutputTokens: &maxTokens,
		}, ollama.Options{
			Temperature: &temp,
			TopP:        &topP,
			TopK:        &topK,
			NumPredict:  &maxTokens,
		}},
		{"partial", &genai.GenerationConfig{Temperature: &temp}, ollama.Options{Temperature: &temp}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := &genai.GenerateContentRequest{
				Model:            "m",
				Contents:         []genai.Content{genai.Text("hi")},
				GenerationConfig: tc.cfg,
			}
			got := BuildChatRequest(req, false).Options
			if !reflect.DeepEqual(*got, tc.want) {
				t.Errorf("Options = %+v, want %+v", *got, tc.want)
			}
		})
	}
}

func TestBuildChatRequest_Tools(t *testing.T) {
	req := &genai.GenerateContentRequest{
		Model:    "m",
		Contents: []genai.Content{genai.Text("hi")},
		Tools: []genai.Tool{
			{FunctionDeclarations: []genai.FunctionDeclaration{
				{Name: "first", Description: "d1", Parameters: map[string]any{"type": "object"}},
				{Name: "ignored", Description: "d2"},
			}},
			{}, // no function declarations: dropped
			{FunctionDeclarations: []genai.FunctionDeclaration{{Name: "second"}}},
		},
	}

	chatReq := BuildChatRequest(req, false)

	if len(chatReq.Tools) != 2 {
		t.Fatalf("len(Tools) = %d, want 2", len(chatReq.Tools))
	}
	if chatReq.Tools[0].Type != "function" || chatReq.Tools[0].Function.Name != "first" {
		t.Errorf("Tools[0] = %+v", chatReq.Tools[0])
	}
	if chatReq.Tools[0].Function.Parameters["type"] != "object" {
		t.Errorf("Parameters = %v", chatReq.Tools[0].Function.Parameters)
	}
	if chatReq.Tools[1].Function.Name != "second" {
		t.Errorf("Tools[1] = %+v", chatReq.Tools[1])
	}
}

func TestBuildChatRequest_StreamFlag(t *testing.T) {
	req := &genai.GenerateContentRequest{Model: "m"}
	if !BuildChatRequest(req, true).Stream {
		t.Error("Stream = false, want true")
	}
}

// =============================================================================
// MAP-RESPONSE TESTS
// =============================================================================

func TestMapResponse_TextRoundTrip(t *testing.T) {
	resp := MapResponse(&ollama.ChatResponse{
		Message: ollama.Message{Role: "assistant", Content: "Hello back"},
		Done:    true,
	}, "qwen2.5:7b")

	if len(resp.Candidates) != 1 {
		t.Fatalf("len(Candidates) = %d, want 1", len(resp.Candidates))
	}
	cand := resp.Candidates[0]
	if cand.Content.Role != genai.RoleModel {
		t.Errorf("Role = %q, want model", cand.Content.Role)
	}
	if len(cand.Content.Parts) != 1 {
		t.Fatalf("len(Parts) = %d, want 1", len(cand.Content.Parts))
	}
	if tp, ok := cand.Content.Parts[0].(genai.TextPart); !ok || tp.Text != "Hello back" {
		t.Errorf("Parts[0] = %+v, want text 'Hello back'", cand.Content.Parts[0])
	}
	if resp.ModelVersion != "qwen2.5:7b" {
		t.Errorf("ModelVersion = %q", resp.ModelVersion)
	}
}

func TestMapResponse_FinishReason(t *testing.T) {
	tests := []struct {
		name string
		done bool
		want genai.FinishReason
	}{
		{"done maps to stop", true, genai.FinishReasonStop},
		{"not done maps to other", false, genai.FinishReasonOther},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := MapResponse(&ollama.ChatResponse{Done: tc.done}, "m")
			if got := resp.Candidates[0].FinishReason; got != tc.want {
				t.Errorf("FinishReason = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMapResponse_ToolCalls(t *testing.T) {
	resp := MapResponse(&ollama.ChatResponse{
		Message: ollama.Message{
			Role:    "assistant",
			Content: "",
			ToolCalls: []ollama.ToolCall{
				{Function: ollama.ToolFunction{Name: "search", Arguments: map[string]any{"q": "go"}}},
			},
		},
		Done: true,
	}, "m")

	parts := resp.Candidates[0].Content.Parts
	// Empty content: no text part, only the function call.
	if len(parts) != 1 {
		t.Fatalf("len(Parts) = %d, want 1", len(parts))
	}
	fc, ok := parts[0].(genai.FunctionCallPart)
	if !ok || fc.Name != "search" || fc.Args["q"] != "go" {
		t.Errorf("Parts[0] = %+v", parts[0])
	}
}

func TestMapResponse_Usage(t *testing.T) {
	tests := []struct {
		name      string
		prompt    int
		output    int
		wantUsage *genai.UsageMetadata
	}{
		{"no counts", 0, 0, nil},
		{"both counts", 10, 5, &genai.UsageMetadata{PromptTokenCount: 10, CandidatesTokenCount: 5, TotalTokenCount: 15}},
		{"prompt only, no total", 10, 0, &genai.UsageMetadata{PromptTokenCount: 10}},
		{"output only, no total", 0, 5, &genai.UsageMetadata{CandidatesTokenCount: 5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := MapResponse(&ollama.ChatResponse{
				Done:            true,
				PromptEvalCount: tc.prompt,
				EvalCount:       tc.output,
			}, "m")
			if !reflect.DeepEqual(resp.UsageMetadata, tc.wantUsage) {
				t.Errorf("UsageMetadata = %+v, want %+v", resp.UsageMetadata, tc.wantUsage)
			}
		})
	}
}

// =============================================================================
// STREAM FRAGMENT TESTS
// =============================================================================

func TestStreamState_CountsPersistAcrossChunks(t *testing.T) {
	state := &streamState{}

	first := state.mapChunk(&ollama.ChatResponse{
		Message:         ollama.Message{Content: "Hel"},
		PromptEvalCount: 5,
	}, "m")
	// Only one running count known: no usage yet.
	if first.UsageMetadata != nil {
		t.Errorf("UsageMetadata = %+v, want nil", first.UsageMetadata)
	}

	second := state.mapChunk(&ollama.ChatResponse{
		Message:   ollama.Message{Content: "lo"},
		EvalCount: 2,
		Done:      true,
	}, "m")
	want := &genai.UsageMetadata{PromptTokenCount: 5, CandidatesTokenCount: 2, TotalTokenCount: 7}
	if !reflect.DeepEqual(second.UsageMetadata, want) {
		t.Errorf("UsageMetadata = %+v, want %+v", second.UsageMetadata, want)
	}
}

func TestStreamState_EmptyContentStillOneTextPart(t *testing.T) {
	state := &streamState{}
	fragment := state.mapChunk(&ollama.ChatResponse{Done: true}, "m")

	parts := fragment.Candidates[0].Content.Parts
	if len(parts) != 1 {
		t.Fatalf("len(Parts) = %d, want 1", len(parts))
	}
	if tp, ok := parts[0].(genai.TextPart); !ok || tp.Text != "" {
		t.Errorf("Parts[0] = %+v, want empty text part", parts[0])
	}
	if fragment.Candidates[0].FinishReason != genai.FinishReasonStop {
		t.Errorf("FinishReason = %q, want STOP", fragment.Candidates[0].FinishReason)
	}
}

// =============================================================================
// TOKEN ESTIMATE TESTS
// =============================================================================

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name     string
		contents []genai.Content
		want     int
	}{
		{"empty", nil, 0},
		{"empty text", []genai.Content{genai.Text("")}, 0},
		{"one char rounds up", []genai.Content{genai.Text("a")}, 1},
		{"exactly four", []genai.Content{genai.Text("abcd")}, 1},
		{"five rounds up", []genai.Content{genai.Text("abcde")}, 2},
		{"across turns", []genai.Content{genai.Text("abcd"), genai.Text("efgh")}, 2},
		{"across parts", []genai.Content{genai.NewContent(genai.RoleUser,
			genai.TextPart{Text: "ab"},
			genai.TextPart{Text: "cd"},
		)}, 1},
		{"non-text parts ignored", []genai.Content{genai.NewContent(genai.RoleModel,
			genai.FunctionCallPart{Name: "longfunctionname"},
			genai.TextPart{Text: "abcd"},
		)}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EstimateTokens(tc.contents); got != tc.want {
				t.Errorf("EstimateTokens = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEstimateTokens_Deterministic(t *testing.T) {
	contents := []genai.Content{genai.Text("determinism matters")}
	first := EstimateTokens(contents)
	for i := 0; i < 3; i++ {
		if got := EstimateTokens(contents); got != first {
			t.Fatalf("estimate changed between calls: %d vs %d", got, first)
		}
	}
}
