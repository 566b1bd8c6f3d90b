package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// PhraseSuggester proposes candidate strategy phrases from prose.
// It supplements rule-based phrase extraction with model-suggested phrases
// that the part-of-speech pass may have missed.
// Implementations must be thread-safe for concurrent use.
type PhraseSuggester interface {
	// SuggestPhrases analyzes text and proposes strategy-relevant phrases
	// with salience scores. Returns an empty slice if nothing relevant is
	// found. Returns an error if the suggestion call fails.
	SuggestPhrases(ctx context.Context, text string) ([]SuggestedPhrase, error)
}

// SuggestedPhrase is a strategy-relevant phrase proposed by a model.
type SuggestedPhrase struct {
	// Text is the phrase in lowercase, 1-4 words.
	// Example: "network effects", "switching costs"
	Text string

	// Kind categorizes the phrase (e.g. "strategic_theory_term").
	// Must match one of the predefined suggestion kinds.
	Kind string

	// Salience is a score from 1-10 indicating how central this phrase
	// is to the strategic content of the text. Higher scores = more central.
	Salience int
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and PhraseSuggester
// instances, ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// PhraseSuggester returns the phrase suggestion service.
	// The returned PhraseSuggester is safe for concurrent use.
	PhraseSuggester() PhraseSuggester

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
