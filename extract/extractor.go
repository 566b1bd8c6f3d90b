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


package extract

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	prose "github.com/jdkato/prose/v2"

	"github.com/casecraft/caselens/core"
)

// Extractor turns raw input text into candidate phrases: named entities of
// allow-listed kinds, noun phrases, and tokens whose stem belongs to the
// curated business-verb set. Each phrase is tagged with the source it came
// from.
type Extractor struct {
	entityKinds map[string]bool
	verbStems   map[string]bool
	logger      *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithEntityKinds replaces the entity-kind allow-list.
// Default is DefaultEntityKinds.
func WithEntityKinds(kinds []string) Option {
	return func(e *Extractor) error {
		if len(kinds) == 0 {
			return ErrNoEntityKinds
		}
		e.entityKinds = make(map[string]bool, len(kinds))
		for _, kind := range kinds {
			e.entityKinds[strings.ToUpper(kind)] = true
		}
		return nil
	}
}

// WithBusinessVerbs replaces the curated business-verb set.
// Default is DefaultBusinessVerbs.
func WithBusinessVerbs(verbs []string) Option {
	return func(e *Extractor) error {
		if len(verbs) == 0 {
			return ErrNoBusinessVerbs
		}
		stems, err := stemAll(verbs)
		if err != nil {
			return err
		}
		e.verbStems = stems
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExtractor creates a phrase extractor with the default entity allow-list
// and business-verb set.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		logger: slog.Default(),
	}

	defaults := []Option{
		WithEntityKinds(DefaultEntityKinds),
		WithBusinessVerbs(DefaultBusinessVerbs),
	}
	for _, opt := range append(defaults, opts...) {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Extract produces the candidate phrases found in text, each tagged with
// source. The returned sequence is finite and restartable. Empty text yields
// an empty sequence, not an error.
func (e *Extractor) Extract(text string, source core.Source) (iter.Seq[core.CandidatePhrase], error) {
	phrases, err := e.phrases(text, source)
	if err != nil {
		return nil, err
	}
	return slices.Values(phrases), nil
}

// ExtractAll is the slice-returning form of Extract.
func (e *Extractor) ExtractAll(text string, source core.Source) ([]core.CandidatePhrase, error) {
	return e.phrases(text, source)
}

func (e *Extractor) phrases(text string, source core.Source) ([]core.CandidatePhrase, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, &ExtractionError{Source: source, Err: err}
	}

	var phrases []core.CandidatePhrase
	add := func(text string) {
		phrases = append(phrases, core.CandidatePhrase{Text: text, Source: source})
	}

	// (a) named entities restricted to the allow-list
	for _, ent := range doc.Entities() {
		if e.entityKinds[strings.ToUpper(ent.Label)] {
			add(ent.Text)
		}
	}

	tokens := doc.Tokens()

	// (b) noun phrases: maximal runs of adjectives/nouns ending in a noun
	for _, chunk := range nounChunks(tokens) {
		add(chunk)
	}

	// (c) curated business verbs, matched on stems so inflected forms count
	for _, tok := range tokens {
		if !strings.HasPrefix(tok.Tag, "VB") {
			continue
		}
		stem, err := stemWord(tok.Text)
		if err != nil {
			e.logger.Debug("skipping unstemmable token", "token", tok.Text, "err", err)
			continue
		}
		if e.verbStems[stem] {
			add(tok.Text)
		}
	}

	e.logger.Debug("extracted candidate phrases",
		"source", source, "count", len(phrases))

	return phrases, nil
}

// nounChunks collects maximal token runs tagged as adjectives or nouns that
// end in a noun. Determiners and other tags break a run.
func nounChunks(tokens []prose.Token) []string {
	var chunks []string
	var run []prose.Token

	flush := func() {
		// Trim trailing adjectives so every chunk ends in a noun.
		end := len(run)
		for end > 0 && !strings.HasPrefix(run[end-1].Tag, "NN") {
			end--
		}
		if end > 0 {
			words := make([]string, end)
			for i := 0; i < end; i++ {
				words[i] = run[i].Text
			}
			chunks = append(chunks, strings.Join(words, " "))
		}
		run = run[:0]
	}

	for _, tok := range tokens {
		if strings.HasPrefix(tok.Tag, "NN") || strings.HasPrefix(tok.Tag, "JJ") {
			run = append(run, tok)
			continue
		}
		flush()
	}
	flush()

	return chunks
}
