// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the ollamagen command handlers.
//
// Commands:
//
//   - ask     one-shot generation, streamed to stdout
//   - chat    interactive REPL with input history
//   - embed   embedding vector for a piece of text
//   - models  list locally available models
//   - status  check the Ollama server
//   - version print build information
//
// Output is styled with lipgloss and degrades to plain text when stdout
// is not a terminal or NO_COLOR is set. Model output is optionally
// re-rendered as markdown via glamour.
package cli
