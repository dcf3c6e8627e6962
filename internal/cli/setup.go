// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// setup.go - Shared command setup: config loading and generator wiring.
package cli

import (
	"github.com/jeranaias/ollamagen/internal/config"
	"github.com/jeranaias/ollamagen/internal/genai"
	"github.com/jeranaias/ollamagen/internal/generator"
)

// session bundles everything a command handler needs.
type session struct {
	cfg   *config.Config
	gen   *generator.OllamaGenerator
	model string
}

// setup loads configuration and wires a generator. Flag values win over
// the config file; the config file wins over the environment.
func setup(args Args) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	server := args.Server
	if server == "" {
		server = cfg.OllamaURL
	}

	model := args.Model
	if model == "" {
		model = cfg.DefaultModel
	}

	return &session{
		cfg:   cfg,
		gen:   generator.New(server),
		model: model,
	}, nil
}

// buildRequest assembles a generation request for the session's model,
// applying the config file's per-model option defaults when present.
func (s *session) buildRequest(contents []genai.Content, system string) *genai.GenerateContentRequest {
	req := &genai.GenerateContentRequest{
		Model:            s.model,
		Contents:         contents,
		GenerationConfig: s.cfg.OptionsForModel(s.model),
	}
	if system != "" {
		sys := genai.NewContent(genai.RoleSystem, genai.TextPart{Text: system})
		req.SystemInstruction = &sys
	}
	return req
}
