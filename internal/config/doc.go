// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and endpoint resolution
// for ollamagen.
//
// The config file lives at ~/.ollamagen/config.toml and is optional;
// everything has a built-in default. The Ollama server address resolves
// through three explicit tiers: an explicit parameter (flag or
// ollama_url in the file), the OLLAMA_HOST environment variable, and
// finally http://localhost:11434.
//
// Example config:
//
//	ollama_url    = "http://localhost:11434"
//	default_model = "qwen2.5:7b"
//	embed_model   = "nomic-embed-text"
//	markdown      = true
//
//	[models."qwen2.5:7b"]
//	temperature       = 0.7
//	top_p             = 0.9
//	max_output_tokens = 2048
package config
