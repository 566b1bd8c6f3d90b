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


package assemble

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/casecraft/caselens/core"
)

// DefaultMaxWords is the default answer word cap.
const DefaultMaxWords = 500

// categoryOrder fixes the order concept sentences appear in.
var categoryOrder = []string{"StrategicTheory", "BusinessConcept", "IndustryContext"}

// Assembler renders a concept set into templated prose. It performs no
// matching logic; the concept set is taken as-is.
type Assembler struct {
	bundles    map[string]Bundle
	maxWords   int
	noConcepts string
	logger     *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler) error

// WithBundle adds or replaces the template bundle for one framework.
func WithBundle(framework string, bundle Bundle) Option {
	return func(a *Assembler) error {
		if framework == "" {
			return ErrEmptyFramework
		}
		a.bundles[framework] = bundle
		return nil
	}
}

// WithBundles replaces the whole bundle table.
func WithBundles(bundles map[string]Bundle) Option {
	return func(a *Assembler) error {
		if len(bundles) == 0 {
			return ErrNoBundles
		}
		a.bundles = make(map[string]Bundle, len(bundles))
		for framework, bundle := range bundles {
			if framework == "" {
				return ErrEmptyFramework
			}
			a.bundles[framework] = bundle
		}
		return nil
	}
}

// WithMaxWords sets the answer word cap. Non-positive disables truncation.
// Default is DefaultMaxWords.
func WithMaxWords(n int) Option {
	return func(a *Assembler) error {
		a.maxWords = n
		return nil
	}
}

// WithNoConceptsMessage sets the message rendered for empty concept sets.
// Default is DefaultNoConceptsMessage.
func WithNoConceptsMessage(msg string) Option {
	return func(a *Assembler) error {
		if msg == "" {
			return ErrEmptyMessage
		}
		a.noConcepts = msg
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAssembler creates an assembler with the default bundles, word cap, and
// no-concepts message.
func NewAssembler(opts ...Option) (*Assembler, error) {
	a := &Assembler{
		bundles:    DefaultBundles(),
		maxWords:   DefaultMaxWords,
		noConcepts: DefaultNoConceptsMessage,
		logger:     slog.Default().With("component", "assembler"),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Assemble renders the concept set into prose. Framework sections appear in
// the caller-supplied order; a nil frameworks slice uses the set's own
// frameworks in alphabetical order. Frameworks without a bundle are skipped.
// An empty set renders the configured no-concepts message, never an error.
func (a *Assembler) Assemble(set *core.ConceptSet, frameworks []string) string {
	if set == nil || set.Len() == 0 {
		return a.noConcepts
	}

	sentences := ConceptSentences(set)
	if sentences == "" {
		// Only unmapped placeholders: nothing to narrate.
		return a.noConcepts
	}

	if frameworks == nil {
		frameworks = set.Frameworks()
	}

	var sections []string
	for _, framework := range frameworks {
		bundle, ok := a.bundles[framework]
		if !ok {
			a.logger.Debug("no template bundle for framework", "framework", framework)
			continue
		}
		sections = append(sections, renderSection(bundle, sentences))
	}

	answer := strings.Join(sections, "\n\n")
	if answer == "" {
		// No bundle matched: fall back to the bare concept sentences so the
		// detected concepts still reach the reader.
		answer = sentences
	}

	return TruncateWords(answer, a.maxWords)
}

// Revise prefixes the answer with the caller's style instructions, marking
// the output as a revision. Empty instructions return the answer unchanged.
func (a *Assembler) Revise(answer, styleInstructions string) string {
	styleInstructions = strings.TrimSpace(styleInstructions)
	if styleInstructions == "" {
		return answer
	}
	return TruncateWords("REVISED["+styleInstructions+"]: "+answer, a.maxWords)
}

// NoConceptsMessage returns the configured empty-set message.
func (a *Assembler) NoConceptsMessage() string {
	return a.noConcepts
}

func renderSection(bundle Bundle, sentences string) string {
	parts := make([]string, 0, 3)
	for _, section := range []string{bundle.Intro, bundle.Analysis, bundle.Conclusion} {
		if section == "" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(section, Placeholder, sentences))
	}
	return strings.Join(parts, "\n\n")
}

// ConceptSentences renders the set's matches into per-category sentences of
// the form "In this case, the <category> concepts include: <term>
// (<framework>), ...". Terms are listed once per category in set order;
// unmapped placeholders are omitted.
func ConceptSentences(set *core.ConceptSet) string {
	grouped := set.ByCategory()

	categories := make([]string, 0, len(grouped))
	for _, category := range categoryOrder {
		if _, ok := grouped[category]; ok {
			categories = append(categories, category)
		}
	}
	var extra []string
	for category := range grouped {
		if category == core.CategoryUnmapped || slices.Contains(categories, category) {
			continue
		}
		extra = append(extra, category)
	}
	slices.Sort(extra)
	categories = append(categories, extra...)

	var sentences []string
	for _, category := range categories {
		var terms []string
		seen := make(map[string]bool)
		for _, m := range grouped[category] {
			if m.Entry == nil || seen[m.Entry.Term] {
				continue
			}
			seen[m.Entry.Term] = true
			if fw := m.Entry.Framework(); fw != "" {
				terms = append(terms, m.Entry.Term+" ("+fw+")")
			} else {
				terms = append(terms, m.Entry.Term)
			}
		}
		if len(terms) == 0 {
			continue
		}
		sentences = append(sentences,
			"In this case, the "+category+" concepts include: "+strings.Join(terms, ", ")+".")
	}

	return strings.Join(sentences, " ")
}

// TruncateWords drops trailing words beyond max and appends an ellipsis
// marker. Non-positive max leaves the text untouched. Whitespace inside the
// kept portion is preserved.
func TruncateWords(text string, max int) string {
	if max <= 0 {
		return text
	}

	count := 0
	inWord := false
	for i, r := range text {
		isSpace := r == ' ' || r == '\n' || r == '\t' || r == '\r'
		if !isSpace && !inWord {
			count++
			inWord = true
			if count > max {
				return strings.TrimRight(text[:i], " \n\t\r") + "..."
			}
		} else if isSpace {
			inWord = false
		}
	}
	return text
}
