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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/casecraft/caselens/ai"
)

// Suggester implements ai.PhraseSuggester using OpenAI-compatible chat APIs.
type Suggester struct {
	client      llms.Model
	minSalience int
	logger      *slog.Logger
}

// phrase is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type phrase struct {
	Phrase   string `json:"phrase"`
	Kind     string `json:"kind"`
	Salience int    `json:"salience"`
}

// analysis is the wrapper structure for the LLM's JSON response.
type analysis struct {
	StrategyPhrases []phrase `json:"strategy_phrases"`
}

// newSuggester is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSuggester(config *ai.Config) (*Suggester, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.SuggesterHost),
		openai.WithToken("none"),
		openai.WithModel(config.SuggesterModel),
	)
	if err != nil {
		return nil, err
	}

	return &Suggester{
		client:      client,
		minSalience: config.MinSalience,
		logger:      slog.Default().With("component", "openai-suggester"),
	}, nil
}

// NewSuggester creates a new phrase suggester using the provided configuration.
//
// Returns ai.PhraseSuggester interface to enforce abstraction.
func NewSuggester(config *ai.Config) (ai.PhraseSuggester, error) {
	return newSuggester(config)
}

// SuggestPhrases proposes strategy-relevant phrases from text using an LLM.
// It applies salience filtering and returns only phrases above the minimum threshold.
func (s *Suggester) SuggestPhrases(ctx context.Context, text string) ([]ai.SuggestedPhrase, error) {
	text = scrubString(text)

	systemPrompt := buildSystemPrompt()
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result analysis
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			s.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
		}

		if len(response.Choices) < 1 {
			s.logger.Debug("no choices returned from model")
			return []ai.SuggestedPhrase{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			s.logger.Warn("error parsing suggester response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		s.logger.Error("failed to parse suggester response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Filter by salience and convert to ai.SuggestedPhrase
	suggested := make([]ai.SuggestedPhrase, 0, len(result.StrategyPhrases))
	for _, p := range result.StrategyPhrases {
		if p.Salience >= s.minSalience {
			suggested = append(suggested, ai.SuggestedPhrase{
				Text:     strings.ToLower(strings.TrimSpace(p.Phrase)),
				Kind:     strings.ReplaceAll(p.Kind, " ", "_"),
				Salience: p.Salience,
			})
		}
	}

	// Sort by salience (descending)
	slices.SortFunc(suggested, func(a, b ai.SuggestedPhrase) int {
		if a.Salience == b.Salience {
			return 0
		}
		if a.Salience < b.Salience {
			return 1
		}
		return -1
	})

	s.logger.Debug("suggested phrases",
		"total", len(result.StrategyPhrases),
		"filtered", len(suggested))

	return suggested, nil
}
