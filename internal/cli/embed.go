// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// embed.go - Embedding command for the ollamagen CLI.
//
// Handles "ollamagen embed" which embeds a piece of text with the
// configured embedding model and prints the vector.
//
// Examples:
//   ollamagen embed "hello world"
//   ollamagen embed --json "hello world" > vec.json
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/ollamagen/internal/genai"
)

// HandleEmbed runs the embed command.
func HandleEmbed(args Args) {
	if args.Query == "" {
		exitErr(errors.New("embed requires text, e.g.: ollamagen embed \"hello world\""))
	}

	sess, err := setup(args)
	if err != nil {
		exitErr(err)
	}

	model := args.Model
	if model == "" {
		model = sess.cfg.EmbedModel
	}

	resp, err := sess.gen.EmbedContent(context.Background(), &genai.EmbedContentRequest{
		Model:    model,
		Contents: []genai.Content{genai.Text(args.Query)},
	})
	if err != nil {
		exitErr(err)
	}

	values := resp.Embeddings[0].Values

	if args.JSON {
		out, err := json.Marshal(map[string]any{
			"model":     model,
			"dimension": len(values),
			"values":    values,
		})
		if err != nil {
			exitErr(err)
		}
		os.Stdout.Write(append(out, '\n'))
		return
	}

	fmt.Println(LabelStyle.Render("model:") + " " + model)
	fmt.Println(LabelStyle.Render("dimension:") + " " + fmt.Sprint(len(values)))
	preview := values
	if len(preview) > 8 {
		preview = preview[:8]
	}
	fmt.Printf("%s %v ...\n", LabelStyle.Render("values:"), preview)
}
