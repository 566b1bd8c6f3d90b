package extract

import (
	"strings"

	"github.com/kljensen/snowball"
)

// DefaultEntityKinds is the entity-kind allow-list applied to recognized
// named entities: organizations, products, and places.
var DefaultEntityKinds = []string{"ORG", "PRODUCT", "GPE"}

// DefaultBusinessVerbs is the curated set of strategy-relevant verbs.
// Matching is stem-based, so inflected forms ("competing", "acquired")
// also count.
var DefaultBusinessVerbs = []string{
	"acquire",
	"compete",
	"differentiate",
	"diversify",
	"enter",
	"exit",
	"expand",
	"innovate",
	"integrate",
	"merge",
	"outsource",
	"partner",
	"position",
	"scale",
	"segment",
	"specialize",
	"standardize",
}

// stemWord returns the English snowball stem of the lowercased word.
func stemWord(word string) (string, error) {
	return snowball.Stem(strings.ToLower(word), "english", true)
}

// stemAll stems every verb in the list into a membership set.
func stemAll(words []string) (map[string]bool, error) {
	stems := make(map[string]bool, len(words))
	for _, word := range words {
		stem, err := stemWord(word)
		if err != nil {
			return nil, err
		}
		stems[stem] = true
	}
	return stems, nil
}
