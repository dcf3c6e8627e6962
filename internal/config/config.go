// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and endpoint resolution
// for ollamagen.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/ollamagen/internal/genai"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultBaseURL is the address used when neither an explicit
	// parameter nor the environment provides one.
	DefaultBaseURL = "http://localhost:11434"

	// EnvHost is the environment variable consulted for the server
	// address, matching the variable the Ollama tooling itself uses.
	EnvHost = "OLLAMA_HOST"

	// DefaultModel is used when neither flags nor the config file name one.
	DefaultModel = "qwen2.5:7b"

	// DefaultEmbedModel is the default model for embedding requests.
	DefaultEmbedModel = "nomic-embed-text"

	configFileName = "config.toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ollamagen configuration.
type Config struct {
	// OllamaURL is the URL of the Ollama server. Overrides the
	// environment and built-in default when set.
	OllamaURL string `toml:"ollama_url"`

	// DefaultModel is the model used when a command names none.
	DefaultModel string `toml:"default_model"`

	// EmbedModel is the model used for embedding requests.
	EmbedModel string `toml:"embed_model"`

	// Markdown enables glamour rendering of model output in the CLI.
	Markdown bool `toml:"markdown"`

	// Models maps a model name to default generation options applied
	// when the caller supplies none. Static configuration, not logic.
	Models map[string]ModelOptions `toml:"models"`
}

// ModelOptions holds per-model default generation parameters. Pointer
// fields distinguish "unset" from an explicit zero.
type ModelOptions struct {
	Temperature     *float64 `toml:"temperature"`
	TopP            *float64 `toml:"top_p"`
	TopK            *int     `toml:"top_k"`
	MaxOutputTokens *int     `toml:"max_output_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultModel: DefaultModel,
		EmbedModel:   DefaultEmbedModel,
		Markdown:     true,
	}
}

// =============================================================================
// LOADING
// =============================================================================

// ConfigDir returns the ollamagen configuration directory (~/.ollamagen).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ollamagen"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// Load reads the config file from the default location, falling back to
// built-in defaults when the file does not exist.
func Load() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(filepath.Join(dir, configFileName))
}

// LoadFrom reads a TOML config file from an explicit path. A missing
// file is not an error; malformed TOML is.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that would otherwise fail deep inside a
// request.
func (c *Config) Validate() error {
	if c.OllamaURL != "" {
		u, err := url.Parse(c.OllamaURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid ollama_url %q: must be an absolute URL", c.OllamaURL)
		}
	}
	return nil
}

// =============================================================================
// ENDPOINT RESOLUTION
// =============================================================================

// ResolveBaseURL resolves the server address through three tiers:
// explicit parameter, then the OLLAMA_HOST environment variable, then
// the built-in local default. An environment value without a scheme is
// treated as host:port over plain HTTP.
func ResolveBaseURL(explicit string) string {
	if explicit != "" {
		return strings.TrimSuffix(explicit, "/")
	}

	if env := os.Getenv(EnvHost); env != "" {
		if !strings.Contains(env, "://") {
			env = "http://" + env
		}
		return strings.TrimSuffix(env, "/")
	}

	return DefaultBaseURL
}

// =============================================================================
// MODEL OPTION DEFAULTS
// =============================================================================

// OptionsForModel returns the configured default generation options for
// a model, or nil when none are configured.
func (c *Config) OptionsForModel(model string) *genai.GenerationConfig {
	opts, ok := c.Models[model]
	if !ok {
		return nil
	}
	return &genai.GenerationConfig{
		Temperature:     opts.Temperature,
		TopP:            opts.TopP,
		TopK:            opts.TopK,
		MaxOutputTokens: opts.MaxOutputTokens,
	}
}
