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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/casecraft/caselens/aggregate"
	"github.com/casecraft/caselens/ai"
	"github.com/casecraft/caselens/assemble"
	"github.com/casecraft/caselens/core"
	"github.com/casecraft/caselens/extract"
	"github.com/casecraft/caselens/resolve"
	"github.com/casecraft/caselens/textnorm"
)

// Request carries the input texts and knobs for one analysis run.
type Request struct {
	CaseText          string
	QuestionText      string
	UserInputsText    string
	StyleInstructions string

	// OnlyQuestion restricts the concept set to phrases extracted from the
	// question text.
	OnlyQuestion bool

	// TopN caps the concept set at the N highest-confidence concepts.
	// Non-positive means uncapped.
	TopN int
}

// Result is the outcome of one analysis run. Warnings record non-fatal
// degradations such as a failed extraction on one input.
type Result struct {
	RequestID string
	Phrases   []core.CandidatePhrase
	Matches   []core.Match
	Concepts  *core.ConceptSet
	Answer    string
	Warnings  []string
}

// Pipeline runs the full analysis chain: phrase extraction, term resolution,
// aggregation, and answer assembly.
type Pipeline struct {
	extractor *extract.Extractor
	resolver  *resolve.Resolver
	assembler *assemble.Assembler
	suggester ai.PhraseSuggester
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithSuggester enables model-suggested phrases as a supplement to rule-based
// extraction. A suggester failure degrades to extraction-only candidates, it
// never fails the run.
func WithSuggester(suggester ai.PhraseSuggester) Option {
	return func(p *Pipeline) error {
		p.suggester = suggester
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline wires the analysis stages together.
func NewPipeline(extractor *extract.Extractor, resolver *resolve.Resolver, assembler *assemble.Assembler, opts ...Option) (*Pipeline, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if assembler == nil {
		return nil, ErrAssemblerRequired
	}

	p := &Pipeline{
		extractor: extractor,
		resolver:  resolver,
		assembler: assembler,
		logger:    slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Run executes the full chain for one request. Extraction failures on a
// single input are recorded as warnings and the remaining inputs still run;
// resolution failures abort the request.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{RequestID: uuid.NewString()}
	logger := p.logger.With("request_id", result.RequestID)

	if strings.TrimSpace(req.CaseText) == "" &&
		strings.TrimSpace(req.QuestionText) == "" &&
		strings.TrimSpace(req.UserInputsText) == "" {
		return nil, ErrEmptyRequest
	}

	result.Phrases = p.collectPhrases(ctx, req, result, logger)
	logger.Debug("candidate phrases collected", "count", len(result.Phrases))

	matches, err := p.resolver.ResolveAll(ctx, result.Phrases)
	if err != nil {
		return nil, fmt.Errorf("resolving candidate phrases: %w", err)
	}
	result.Matches = matches

	var aggOpts []aggregate.Option
	if req.OnlyQuestion {
		aggOpts = append(aggOpts, aggregate.WithSource(core.SourceQuestion))
	}
	if req.TopN > 0 {
		aggOpts = append(aggOpts, aggregate.WithTopN(req.TopN))
	}
	result.Concepts = aggregate.Aggregate(matches, aggOpts...)

	answer := p.assembler.Assemble(result.Concepts, result.Concepts.Frameworks())
	if req.StyleInstructions != "" {
		answer = p.assembler.Revise(answer, req.StyleInstructions)
	}
	result.Answer = answer

	logger.Info("analysis complete",
		"phrases", len(result.Phrases),
		"matches", len(result.Matches),
		"concepts", result.Concepts.Len(),
		"warnings", len(result.Warnings))

	return result, nil
}

// collectPhrases extracts candidates from each non-empty input, supplements
// them with model suggestions when a suggester is configured, and drops
// duplicates on (normalized text, source).
func (p *Pipeline) collectPhrases(ctx context.Context, req Request, result *Result, logger *slog.Logger) []core.CandidatePhrase {
	inputs := []struct {
		text   string
		source core.Source
	}{
		{req.CaseText, core.SourceCase},
		{req.QuestionText, core.SourceQuestion},
		{req.UserInputsText, core.SourceUserInputs},
	}

	type phraseKey struct {
		text   string
		source core.Source
	}
	seen := make(map[phraseKey]bool)

	var phrases []core.CandidatePhrase
	add := func(candidate core.CandidatePhrase) {
		normalized := textnorm.Normalize(candidate.Text)
		if normalized == "" {
			return
		}
		key := phraseKey{normalized, candidate.Source}
		if seen[key] {
			return
		}
		seen[key] = true
		phrases = append(phrases, candidate)
	}

	for _, input := range inputs {
		if strings.TrimSpace(input.text) == "" {
			continue
		}
		extracted, err := p.extractor.ExtractAll(input.text, input.source)
		if err != nil {
			warning := fmt.Sprintf("extraction failed for %s input: %v", input.source, err)
			result.Warnings = append(result.Warnings, warning)
			logger.Warn("extraction failed, continuing with remaining inputs",
				"source", input.source, "error", err)
			continue
		}
		for _, candidate := range extracted {
			add(candidate)
		}
	}

	if p.suggester != nil && strings.TrimSpace(req.CaseText) != "" {
		suggested, err := p.suggester.SuggestPhrases(ctx, req.CaseText)
		if err != nil {
			warning := fmt.Sprintf("phrase suggestion failed: %v", err)
			result.Warnings = append(result.Warnings, warning)
			logger.Warn("phrase suggestion failed, using extracted phrases only", "error", err)
		}
		for _, s := range suggested {
			add(core.CandidatePhrase{Text: s.Text, Source: core.SourceCase})
		}
	}

	return phrases
}
