// Copyright 2026 Casecraft Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// SuggesterHost is the base URL for the phrase suggestion service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	SuggesterHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// SuggesterModel is the model identifier to use for phrase suggestion.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	SuggesterModel string

	// MinSalience is the minimum salience score (1-10) for suggested phrases.
	// Phrases with salience below this threshold are filtered out.
	// Default: 6
	MinSalience int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithSuggesterHost sets the phrase suggester service host URL.
func WithSuggesterHost(host string) ConfigOption {
	return func(c *Config) {
		c.SuggesterHost = host
	}
}

// WithHost sets both embedding and suggester hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.SuggesterHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithSuggesterModel sets the suggester model identifier.
func WithSuggesterModel(model string) ConfigOption {
	return func(c *Config) {
		c.SuggesterModel = model
	}
}

// WithMinSalience sets the minimum salience threshold for phrase suggestion.
func WithMinSalience(min int) ConfigOption {
	return func(c *Config) {
		c.MinSalience = min
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both embedding and suggestion use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:  defaultHost,
		SuggesterHost:  defaultHost,
		EmbeddingModel: "embeddinggemma",
		SuggesterModel: "qwen2.5:3b",
		MinSalience:    6,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithEmbeddingModel("text-embedding-3-small"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.SuggesterHost != "" && !strings.HasSuffix(c.SuggesterHost, "/v1") {
		c.SuggesterHost = strings.TrimSuffix(c.SuggesterHost, "/")
		c.SuggesterHost = c.SuggesterHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.SuggesterHost == "" {
		return errors.New("ai config: SuggesterHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.SuggesterModel == "" {
		return errors.New("ai config: SuggesterModel is required")
	}
	if c.MinSalience < 1 || c.MinSalience > 10 {
		return errors.New("ai config: MinSalience must be between 1 and 10")
	}
	return nil
}
