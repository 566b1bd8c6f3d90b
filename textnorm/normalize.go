package textnorm

import "strings"

// Normalize lower-cases text and collapses runs of whitespace to a single
// space, preserving punctuation. It is a pure function and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Stop words filtered out when deciding whether a phrase carries content.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// TokenizeAndFilter splits text into words, lowercases, trims punctuation,
// and removes stop words.
func TokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		// Skip stop words and empty strings
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// IsStopOnly reports whether text contains no content words: it is empty
// after normalization or consists solely of stop words and punctuation.
// Such phrases are excluded from the fuzzy and semantic tiers.
func IsStopOnly(text string) bool {
	return len(TokenizeAndFilter(text)) == 0
}
