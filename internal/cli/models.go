// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// models.go - Model listing and server status commands for ollamagen.
package cli

import (
	"context"
	"fmt"
)

// HandleModels lists the models available on the local server.
func HandleModels(args Args) {
	sess, err := setup(args)
	if err != nil {
		exitErr(err)
	}

	models, err := sess.gen.Client().ListModels(context.Background())
	if err != nil {
		exitErr(err)
	}

	if len(models) == 0 {
		fmt.Println(WarningStyle.Render("no local models, pull one with 'ollama pull <name>'"))
		return
	}

	fmt.Println(TitleStyle.Render("Local models"))
	for _, m := range models {
		marker := " "
		if m.Name == sess.model {
			marker = "*"
		}
		fmt.Printf("%s %-40s %s\n", marker, m.Name, DimStyle.Render(m.FormatSize()))
	}
}

// HandleStatus checks that the Ollama server is reachable.
func HandleStatus(args Args) {
	sess, err := setup(args)
	if err != nil {
		exitErr(err)
	}

	client := sess.gen.Client()
	fmt.Println(LabelStyle.Render("server:") + " " + client.BaseURL())
	fmt.Println(LabelStyle.Render("model:") + " " + sess.model)

	if err := client.CheckRunning(context.Background()); err != nil {
		fmt.Println(LabelStyle.Render("status:") + " " + ErrorStyle.Render("unreachable") + " " + DimStyle.Render(err.Error()))
		return
	}
	fmt.Println(LabelStyle.Render("status:") + " " + SuccessStyle.Render("running"))
}
