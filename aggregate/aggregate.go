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


package aggregate

import (
	"slices"

	"github.com/casecraft/caselens/core"
)

// Option configures an aggregation pass.
type Option func(*settings)

type settings struct {
	source core.Source
	topN   int
}

// WithSource restricts the result to matches from a single source tag.
func WithSource(source core.Source) Option {
	return func(s *settings) {
		s.source = source
	}
}

// WithTopN caps the result to the n highest-confidence matches.
// Non-positive values leave the result uncapped.
func WithTopN(n int) Option {
	return func(s *settings) {
		s.topN = n
	}
}

// Aggregate merges matches from all sources into a ConceptSet: sorted by
// descending confidence (stable, so ties keep first-seen order) and
// deduplicated on (canonical term, source), first occurrence in sort order
// winning. The same term matched from different sources is kept once per
// source. Filters apply after sorting and dedup.
func Aggregate(matches []core.Match, opts ...Option) *core.ConceptSet {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	sorted := make([]core.Match, len(matches))
	copy(sorted, matches)
	slices.SortStableFunc(sorted, func(a, b core.Match) int {
		if a.Confidence > b.Confidence {
			return -1
		}
		if a.Confidence < b.Confidence {
			return 1
		}
		return 0
	})

	seen := make(map[dedupKey]bool, len(sorted))
	result := make([]core.Match, 0, len(sorted))
	for _, m := range sorted {
		if s.source != "" && m.Source != s.source {
			continue
		}
		key := dedupKey{term: termOf(m), source: m.Source}
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, m)

		if s.topN > 0 && len(result) == s.topN {
			break
		}
	}

	return &core.ConceptSet{Matches: result}
}

type dedupKey struct {
	term   string
	source core.Source
}

// termOf returns the canonical term a match resolved to. Unmapped
// placeholders dedupe on their surface text so distinct unresolved phrases
// survive aggregation.
func termOf(m core.Match) string {
	if m.Entry != nil {
		return m.Entry.Term
	}
	return m.Surface
}
