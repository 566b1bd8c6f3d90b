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


package resolve

import (
	"context"
	"log/slog"
	"slices"

	"github.com/casecraft/caselens/core"
	"github.com/casecraft/caselens/taxonomy"
	"github.com/casecraft/caselens/textnorm"
)

const (
	// DefaultFuzzyThreshold is the default minimum fuzzy score (0-100 scale).
	DefaultFuzzyThreshold = 70.0

	// DefaultSemanticThreshold is the default minimum cosine similarity
	// ([0,1] scale).
	DefaultSemanticThreshold = 0.60
)

// Resolver maps candidate phrases to taxonomy entries via the three-tier
// cascade: exact lookup, fuzzy string similarity, then embedding similarity.
// Tiers apply in strict order and the first satisfied tier short-circuits
// the rest. All confidences are reported on the [0,1] scale.
type Resolver struct {
	store             *taxonomy.Store
	models            *ModelContext
	fuzzyThreshold    float64 // 0-100, compared against the raw fuzzy score
	semanticThreshold float64 // [0,1]
	unmappedFallback  bool
	noSemantic        bool
	monitor           ResolveMonitor
	logger            *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithFuzzyThreshold sets the minimum fuzzy score on the 0-100 scale.
// Default is DefaultFuzzyThreshold.
func WithFuzzyThreshold(threshold float64) Option {
	return func(r *Resolver) error {
		if threshold < 0 || threshold > 100 {
			return ErrInvalidFuzzyThreshold
		}
		r.fuzzyThreshold = threshold
		return nil
	}
}

// WithSemanticThreshold sets the minimum embedding similarity on the [0,1]
// scale. Default is DefaultSemanticThreshold.
func WithSemanticThreshold(threshold float64) Option {
	return func(r *Resolver) error {
		if threshold < 0 || threshold > 1 {
			return ErrInvalidSemanticThreshold
		}
		r.semanticThreshold = threshold
		return nil
	}
}

// WithUnmappedFallback makes the resolver emit a placeholder match with
// category "Unmapped" and confidence 0 for phrases no tier can place,
// instead of dropping them silently. Off by default.
func WithUnmappedFallback() Option {
	return func(r *Resolver) error {
		r.unmappedFallback = true
		return nil
	}
}

// WithoutSemanticTier disables the semantic tier, leaving exact and fuzzy
// matching only. This is the explicit opt-in degraded mode for running
// without an embedding backend; it is never entered silently.
func WithoutSemanticTier() Option {
	return func(r *Resolver) error {
		r.noSemantic = true
		return nil
	}
}

// WithMonitor attaches an observer for the resolution cascade.
func WithMonitor(monitor ResolveMonitor) Option {
	return func(r *Resolver) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver creates a resolver over the given taxonomy store. models may be
// nil only when the semantic tier is disabled via WithoutSemanticTier.
func NewResolver(store *taxonomy.Store, models *ModelContext, opts ...Option) (*Resolver, error) {
	if store == nil {
		return nil, ErrTaxonomyRequired
	}

	r := &Resolver{
		store:             store,
		models:            models,
		fuzzyThreshold:    DefaultFuzzyThreshold,
		semanticThreshold: DefaultSemanticThreshold,
		monitor:           &noopMonitor{},
		logger:            slog.Default().With("component", "resolver"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.models == nil && !r.noSemantic {
		return nil, ErrModelContextRequired
	}

	return r, nil
}

// Resolve maps one candidate phrase to zero or more scored matches.
//
// The cascade short-circuits: an exact hit never runs the fuzzy tier, and a
// fuzzy hit never runs the semantic tier. Stop-word-only phrases resolve to
// nothing without touching any tier. The only error condition is an
// unavailable embedding backend in the semantic tier (ai.ErrModelUnavailable);
// the exact and fuzzy tiers never fail for well-formed input.
func (r *Resolver) Resolve(ctx context.Context, phrase core.CandidatePhrase) ([]core.Match, error) {
	r.monitor.Start(phrase)

	normalized := textnorm.Normalize(phrase.Text)
	if normalized == "" || textnorm.IsStopOnly(normalized) {
		r.monitor.SkippedStopOnly(phrase)
		r.monitor.Finish(nil)
		return nil, nil
	}

	// Tier 1: exact lookup against canonical terms and paraphrases.
	// A surface form shared by several entries yields a match per entry.
	if entries := r.store.LookupExact(normalized); len(entries) > 0 {
		matches := make([]core.Match, len(entries))
		for i, entry := range entries {
			matches[i] = core.Match{
				Entry:      entry,
				Surface:    phrase.Text,
				Confidence: 1.0,
				Method:     core.MethodExact,
				Source:     phrase.Source,
			}
		}
		r.monitor.ExactHit(normalized, matches)
		r.monitor.Finish(matches)
		return matches, nil
	}

	// Tier 2: fuzzy string similarity. Every entry independently clearing
	// the threshold is retained; one entry's score never blocks another's.
	if matches := r.fuzzyTier(normalized, phrase); len(matches) > 0 {
		r.monitor.FuzzyHit(normalized, matches)
		r.monitor.Finish(matches)
		return matches, nil
	}

	// Tier 3: embedding similarity against canonical terms, best entry only.
	if !r.noSemantic {
		match, ok, err := r.semanticTier(ctx, normalized, phrase)
		if err != nil {
			return nil, err
		}
		if ok {
			r.monitor.SemanticHit(normalized, match)
			r.monitor.Finish([]core.Match{match})
			return []core.Match{match}, nil
		}
	}

	r.monitor.Miss(phrase)

	if r.unmappedFallback {
		matches := []core.Match{{
			Surface:    phrase.Text,
			Confidence: 0,
			Method:     core.MethodUnmapped,
			Source:     phrase.Source,
		}}
		r.monitor.Finish(matches)
		return matches, nil
	}

	r.monitor.Finish(nil)
	return nil, nil
}

// ResolveAll resolves a batch of phrases, concatenating the matches in input
// order. A semantic-tier failure aborts the batch.
func (r *Resolver) ResolveAll(ctx context.Context, phrases []core.CandidatePhrase) ([]core.Match, error) {
	var all []core.Match
	for _, phrase := range phrases {
		matches, err := r.Resolve(ctx, phrase)
		if err != nil {
			return nil, err
		}
		all = append(all, matches...)
	}
	return all, nil
}

// fuzzyTier scores the phrase against every surface form of every entry and
// keeps the entries whose best score clears the threshold, ordered by
// descending score. Ties keep table order (stable sort).
func (r *Resolver) fuzzyTier(normalized string, phrase core.CandidatePhrase) []core.Match {
	var matches []core.Match
	for _, entry := range r.store.Entries() {
		best := fuzzyScore(normalized, textnorm.Normalize(entry.Term))
		for _, p := range entry.Paraphrases {
			if s := fuzzyScore(normalized, textnorm.Normalize(p)); s > best {
				best = s
			}
		}
		if float64(best) >= r.fuzzyThreshold {
			matches = append(matches, core.Match{
				Entry:      entry,
				Surface:    phrase.Text,
				Confidence: float64(best) / 100.0,
				Method:     core.MethodFuzzy,
				Source:     phrase.Source,
			})
		}
	}

	slices.SortStableFunc(matches, func(a, b core.Match) int {
		if a.Confidence > b.Confidence {
			return -1
		}
		if a.Confidence < b.Confidence {
			return 1
		}
		return 0
	})
	return matches
}

// semanticTier embeds the phrase and compares it against every canonical-term
// vector, emitting the best entry when it clears the threshold. Similarities
// are clamped onto [0,1] before the threshold check so all tiers share one
// scale.
func (r *Resolver) semanticTier(ctx context.Context, normalized string, phrase core.CandidatePhrase) (core.Match, bool, error) {
	phraseVec, err := r.models.Vector(ctx, normalized)
	if err != nil {
		r.logger.Error("embedding failed for phrase", "phrase", normalized, "err", err)
		return core.Match{}, false, err
	}

	var (
		bestEntry *core.Entry
		bestScore float64
	)
	for _, entry := range r.store.Entries() {
		termVec, err := r.models.Vector(ctx, textnorm.Normalize(entry.Term))
		if err != nil {
			r.logger.Error("embedding failed for canonical term", "term", entry.Term, "err", err)
			return core.Match{}, false, err
		}

		score := clampScore(cosineSimilarity(phraseVec, termVec))
		if bestEntry == nil || score > bestScore {
			bestEntry = entry
			bestScore = score
		}
	}

	if bestEntry == nil || bestScore < r.semanticThreshold {
		return core.Match{}, false, nil
	}

	return core.Match{
		Entry:      bestEntry,
		Surface:    phrase.Text,
		Confidence: bestScore,
		Method:     core.MethodSemantic,
		Source:     phrase.Source,
	}, true, nil
}
