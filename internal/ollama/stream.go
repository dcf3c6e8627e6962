// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with Ollama API.
package ollama

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
)

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader pulls chunks off an NDJSON streaming response body, one
// JSON object per line. It is forward-only and not restartable: once a
// done chunk or an error has been returned, every later Next call
// returns io.EOF or that error.
type StreamReader struct {
	body   io.ReadCloser
	reader *bufio.Reader
	done   bool
	err    error
}

// NewStreamReader creates a stream reader over a response body. The
// reader takes ownership of the body and closes it on Close.
func NewStreamReader(body io.ReadCloser) *StreamReader {
	return &StreamReader{
		body:   body,
		reader: bufio.NewReader(body),
	}
}

// Next returns the next chunk from the stream. It blocks until a chunk
// arrives, returns io.EOF after the final (done) chunk or when the body
// ends, and surfaces any transport error as-is. Malformed lines are
// skipped.
func (s *StreamReader) Next() (*ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.done {
		return nil, io.EOF
	}

	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			s.err = err
			// Process a final unterminated line before surfacing the error.
			if chunk, ok := parseChunk(line); ok {
				return chunk, nil
			}
			return nil, err
		}

		chunk, ok := parseChunk(line)
		if !ok {
			continue
		}

		if chunk.Done {
			s.done = true
		}
		return chunk, nil
	}
}

// Close releases the underlying response body. Safe to call more than once.
func (s *StreamReader) Close() error {
	if s.body == nil {
		return nil
	}
	err := s.body.Close()
	s.body = nil
	return err
}

// parseChunk decodes one NDJSON line. Empty and malformed lines report ok=false.
func parseChunk(line []byte) (*ChatResponse, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, false
	}

	var chunk ChatResponse
	if err := json.Unmarshal(line, &chunk); err != nil {
		return nil, false
	}
	return &chunk, true
}
