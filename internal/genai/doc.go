// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package genai defines the generic content-generation data model and the
// ContentGenerator interface consumed by the CLI.
//
// The model is provider-neutral: a request is an ordered sequence of
// conversation turns (Content), each turn an ordered sequence of parts.
// Parts form a closed tagged union (text, function call, or function
// response), so adapters can switch exhaustively instead of probing
// loosely-typed fields.
//
// # Key Types
//
//   - Content: one conversation turn (role + ordered parts)
//   - Part: sealed interface implemented by TextPart, FunctionCallPart,
//     and FunctionResponsePart
//   - GenerateContentRequest / GenerateContentResponse: the one-shot and
//     streaming generation shapes
//   - ContentGenerator: the four-operation capability (generate,
//     streaming generate, count tokens, embed)
//
// # Usage
//
//	req := &genai.GenerateContentRequest{
//	    Model:    "qwen2.5:7b",
//	    Contents: []genai.Content{genai.Text("Hello")},
//	}
//	resp, err := gen.GenerateContent(ctx, req)
package genai
