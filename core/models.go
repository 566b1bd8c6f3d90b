package core

import (
	"encoding/binary"
	"slices"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated from content so identical content always maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Source identifies which input text a candidate phrase was extracted from.
type Source string

const (
	// SourceCase marks phrases extracted from the case text.
	SourceCase Source = "case"
	// SourceQuestion marks phrases extracted from the question text.
	SourceQuestion Source = "question"
	// SourceUserInputs marks phrases from user-supplied instructions or notes.
	SourceUserInputs Source = "user_inputs"
)

// MatchMethod identifies which tier of the resolution cascade produced a match.
type MatchMethod string

const (
	// MethodExact means the normalized phrase equals a canonical term or paraphrase.
	MethodExact MatchMethod = "exact"
	// MethodFuzzy means the phrase cleared the string-similarity threshold.
	MethodFuzzy MatchMethod = "fuzzy"
	// MethodSemantic means the phrase cleared the embedding-similarity threshold.
	MethodSemantic MatchMethod = "semantic"
	// MethodUnmapped marks the fallback placeholder emitted for unmatched
	// phrases when the unmapped-fallback policy is enabled.
	MethodUnmapped MatchMethod = "unmapped"
)

// CategoryUnmapped is the category assigned to fallback placeholder matches.
const CategoryUnmapped = "Unmapped"

// Entry is a single taxonomy record: a canonical term inside a sub-bucket or
// framework of a top-level category, with its accepted paraphrases.
// Entries are immutable once the taxonomy is loaded.
type Entry struct {
	Category    string
	Bucket      string // framework name for StrategicTheory, sub-bucket otherwise
	Term        string
	Paraphrases []string
}

// Framework returns the strategic framework this entry belongs to, or the
// empty string for entries outside the StrategicTheory category.
func (e *Entry) Framework() string {
	if e.Category == "StrategicTheory" {
		return e.Bucket
	}
	return ""
}

// Key returns a string identifying the entry as "(category,bucket,term)".
// Used for deterministic IDs and for deduplication.
func (e *Entry) Key() string {
	return "(" + e.Category + "," + e.Bucket + "," + e.Term + ")"
}

// Id returns the content-based ID of the entry.
func (e *Entry) Id() ID {
	return IDFromContent(e.Key())
}

// CandidatePhrase is a text span extracted from one input, tagged with its
// origin. Candidate phrases live only for the duration of one request.
type CandidatePhrase struct {
	Text   string
	Source Source
}

// Match ties a candidate phrase to a taxonomy entry with a confidence score.
// Confidence is always on the [0,1] scale regardless of the tier that
// produced it.
type Match struct {
	Entry      *Entry
	Surface    string // the phrase text as it appeared in the input
	Confidence float64
	Method     MatchMethod
	Source     Source
}

// ConceptSet is the deduplicated, confidence-ordered list of matches for one
// request. No two elements share the same (canonical term, source) pair and
// confidence is non-increasing.
type ConceptSet struct {
	Matches []Match
}

// Frameworks returns the distinct strategic frameworks represented in the
// set, sorted alphabetically. Entries outside StrategicTheory contribute
// nothing.
func (s *ConceptSet) Frameworks() []string {
	seen := make(map[string]bool)
	var frameworks []string
	for _, m := range s.Matches {
		if m.Entry == nil {
			continue
		}
		fw := m.Entry.Framework()
		if fw == "" || seen[fw] {
			continue
		}
		seen[fw] = true
		frameworks = append(frameworks, fw)
	}
	slices.Sort(frameworks)
	return frameworks
}

// ByCategory groups matches by their entry's category, preserving the set's
// confidence ordering inside each group. Unmapped placeholders group under
// CategoryUnmapped.
func (s *ConceptSet) ByCategory() map[string][]Match {
	grouped := make(map[string][]Match)
	for _, m := range s.Matches {
		category := CategoryUnmapped
		if m.Entry != nil {
			category = m.Entry.Category
		}
		grouped[category] = append(grouped[category], m)
	}
	return grouped
}

// Len returns the number of matches in the set.
func (s *ConceptSet) Len() int {
	return len(s.Matches)
}
