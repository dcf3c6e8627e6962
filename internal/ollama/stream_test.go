// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with Ollama API.
package ollama

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func ndjsonBody(lines ...string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestStreamReader_Next(t *testing.T) {
	reader := NewStreamReader(ndjsonBody(
		`{"message":{"role":"assistant","content":"Hel"},"done":false}`,
		`{"message":{"role":"assistant","content":"lo"},"done":true,"prompt_eval_count":5,"eval_count":2}`,
	))
	defer reader.Close()

	first, err := reader.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if first.Message.Content != "Hel" || first.Done {
		t.Errorf("first chunk = %+v", first)
	}

	second, err := reader.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if second.Message.Content != "lo" || !second.Done {
		t.Errorf("second chunk = %+v", second)
	}
	if second.PromptEvalCount != 5 || second.EvalCount != 2 {
		t.Errorf("counts = %d/%d, want 5/2", second.PromptEvalCount, second.EvalCount)
	}

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("after done: err = %v, want io.EOF", err)
	}
}

func TestStreamReader_StopsAtDone(t *testing.T) {
	// A trailing chunk after done must never be delivered.
	reader := NewStreamReader(ndjsonBody(
		`{"message":{"content":"a"},"done":true}`,
		`{"message":{"content":"ghost"},"done":false}`,
	))
	defer reader.Close()

	chunk, err := reader.Next()
	if err != nil || chunk.Message.Content != "a" {
		t.Fatalf("chunk = %+v, err = %v", chunk, err)
	}
	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestStreamReader_SkipsMalformedLines(t *testing.T) {
	reader := NewStreamReader(ndjsonBody(
		`not json at all`,
		``,
		`{"message":{"content":"ok"},"done":true}`,
	))
	defer reader.Close()

	chunk, err := reader.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if chunk.Message.Content != "ok" {
		t.Errorf("Content = %q, want 'ok'", chunk.Message.Content)
	}
}

func TestStreamReader_UnterminatedFinalLine(t *testing.T) {
	body := io.NopCloser(strings.NewReader(`{"message":{"content":"tail"},"done":true}`))
	reader := NewStreamReader(body)
	defer reader.Close()

	chunk, err := reader.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if chunk.Message.Content != "tail" {
		t.Errorf("Content = %q, want 'tail'", chunk.Message.Content)
	}

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestChatStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{"content":"one"},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"content":"two"},"done":true,"eval_count":2,"prompt_eval_count":3}` + "\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	reader, err := client.ChatStream(context.Background(), &ChatRequest{
		Model:    "qwen2.5:7b",
		Messages: []Message{NewUserMessage("count")},
	})
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}
	defer reader.Close()

	var contents []string
	for {
		chunk, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		contents = append(contents, chunk.Message.Content)
	}

	if len(contents) != 2 || contents[0] != "one" || contents[1] != "two" {
		t.Errorf("contents = %v, want [one two]", contents)
	}
}
