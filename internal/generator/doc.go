// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generator adapts the generic content-generation contract to
// the Ollama chat API.
//
// Two cooperating pieces, both stateless per call:
//
//   - the request/response adapter: pure functions translating a
//     genai.GenerateContentRequest into the Ollama chat request shape and
//     Ollama responses (complete or streamed chunks) back into the
//     generic shape, plus a character-based token estimate;
//   - OllamaGenerator: owns the transport client and exposes the four
//     operations of genai.ContentGenerator, wrapping transport failures
//     into GenerationError with an operation-identifying prefix.
//
// # Usage
//
//	gen := generator.New("") // resolves OLLAMA_HOST, then the local default
//	resp, err := gen.GenerateContent(ctx, &genai.GenerateContentRequest{
//	    Model:    "qwen2.5:7b",
//	    Contents: []genai.Content{genai.Text("Hello")},
//	})
//
// Streaming:
//
//	for fragment, err := range gen.GenerateContentStream(ctx, req) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(fragment.Text())
//	}
package generator
