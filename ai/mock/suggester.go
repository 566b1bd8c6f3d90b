package mock

import (
	"context"
	"strings"

	"github.com/casecraft/caselens/ai"
)

// MockSuggester is a test double for ai.PhraseSuggester.
// It allows custom behavior injection via function fields.
type MockSuggester struct {
	// SuggestPhrasesFunc is called by SuggestPhrases if set.
	// If nil, uses default simple word extraction.
	SuggestPhrasesFunc func(ctx context.Context, text string) ([]ai.SuggestedPhrase, error)

	callCount int
}

// NewMockSuggester creates a mock phrase suggester with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockSuggester().
func NewMockSuggester() *MockSuggester {
	return &MockSuggester{}
}

// SuggestPhrases proposes simple mock phrases from text.
// Default behavior: splits text by spaces and proposes the first few words.
func (m *MockSuggester) SuggestPhrases(ctx context.Context, text string) ([]ai.SuggestedPhrase, error) {
	m.callCount++

	if m.SuggestPhrasesFunc != nil {
		return m.SuggestPhrasesFunc(ctx, text)
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return []ai.SuggestedPhrase{}, nil
	}

	phrases := make([]ai.SuggestedPhrase, 0, len(words))
	salience := 10
	for i, word := range words {
		if i >= 5 { // Limit to 5 phrases
			break
		}

		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" {
			continue
		}

		phrases = append(phrases, ai.SuggestedPhrase{
			Text:     word,
			Kind:     "business_concept",
			Salience: salience,
		})

		if salience > 1 {
			salience--
		}
	}

	return phrases, nil
}

// CallCount returns the number of times SuggestPhrases was called.
func (m *MockSuggester) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSuggester) Reset() {
	m.callCount = 0
	m.SuggestPhrasesFunc = nil
}
