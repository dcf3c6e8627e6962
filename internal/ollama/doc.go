// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with Ollama API.
//
// This package implements a thin transport for the Ollama local LLM
// server: chat completions (streaming and non-streaming), embeddings,
// model listing, and a health check. It carries no retry, timeout, or
// backoff policy; cancellation is entirely context-driven.
//
// # Key Types
//
//   - Client: HTTP client for Ollama API communication
//   - Message: Chat message with role, content, and optional tool calls
//   - ChatRequest: Request structure for chat completions
//   - ChatResponse: Response structure, also the streaming chunk shape
//   - StreamReader: Pull-based NDJSON reader for streaming responses
//
// # Usage
//
// Create a client and send a chat request:
//
//	client := ollama.NewClient("http://localhost:11434")
//	resp, err := client.Chat(ctx, &ollama.ChatRequest{
//	    Model:    "qwen2.5:7b",
//	    Messages: []ollama.Message{ollama.NewUserMessage("Hello")},
//	})
//
// For streaming responses:
//
//	reader, err := client.ChatStream(ctx, request)
//	defer reader.Close()
//	for {
//	    chunk, err := reader.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    fmt.Print(chunk.Message.Content)
//	}
package ollama
