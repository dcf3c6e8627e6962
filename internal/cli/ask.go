// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot generation command for the ollamagen CLI.
//
// Handles "ollamagen ask" which sends a single question and streams the
// answer to stdout. When stdout is a terminal and markdown is enabled,
// the streamed text is re-rendered with glamour once complete.
//
// Examples:
//   ollamagen ask "explain goroutines"
//   ollamagen ask --model llama3.2 --stats "summarize this"
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/ollamagen/internal/genai"
)

// markdownRenderer renders markdown output for ask and chat. Nil when
// initialization fails; callers fall back to plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	markdownRenderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultTerminalWidth),
	)
}

// renderMarkdown renders markdown content for terminal display, falling
// back to the original content on any failure.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// HandleAsk runs the one-shot ask command.
func HandleAsk(args Args) {
	if args.Query == "" {
		exitErr(errors.New("ask requires a question, e.g.: ollamagen ask \"why is the sky blue?\""))
	}

	sess, err := setup(args)
	if err != nil {
		exitErr(err)
	}

	req := sess.buildRequest([]genai.Content{genai.Text(args.Query)}, args.System)

	useMarkdown := sess.cfg.Markdown && !args.Plain && IsStdoutTTY()

	ctx := context.Background()
	var full string
	var usage *genai.UsageMetadata
	for fragment, err := range sess.gen.GenerateContentStream(ctx, req) {
		if err != nil {
			fmt.Println()
			exitErr(err)
		}
		text := fragment.Text()
		full += text
		if fragment.UsageMetadata != nil {
			usage = fragment.UsageMetadata
		}
		if !useMarkdown {
			fmt.Print(text)
		}
	}

	if useMarkdown {
		fmt.Print(renderMarkdown(full))
	} else {
		fmt.Println()
	}

	if args.Stats {
		printStats(sess, req, usage)
	}
}

// printStats prints the provider-reported usage plus the local estimate.
func printStats(sess *session, req *genai.GenerateContentRequest, usage *genai.UsageMetadata) {
	estimate, _ := sess.gen.CountTokens(context.Background(), &genai.CountTokensRequest{
		Model:    req.Model,
		Contents: req.Contents,
	})

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, DimStyle.Render(fmt.Sprintf("model: %s  est. prompt tokens: ~%d", sess.model, estimate.TotalTokens)))
	if usage != nil {
		fmt.Fprintln(os.Stderr, DimStyle.Render(fmt.Sprintf(
			"usage: prompt=%d output=%d total=%d",
			usage.PromptTokenCount, usage.CandidatesTokenCount, usage.TotalTokenCount,
		)))
	}
}
