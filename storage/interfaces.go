package storage

import "context"

// VectorRecord is one cached embedding: the vector an embedding model
// produced for a text. Vectors from different models are never
// interchangeable, so the model identifier is part of the record.
type VectorRecord struct {
	Model  string
	Text   string
	Vector []float32
}

// VectorCache persists embedding vectors across processes, keyed by
// (model, text). It backs the model context's warm-up so the taxonomy
// does not have to be re-embedded on every start.
// Implementations must be thread-safe and support concurrent access.
type VectorCache interface {
	// GetVector retrieves the cached vector for (model, text).
	// Returns nil (not an error) when nothing is cached.
	GetVector(ctx context.Context, model, text string) ([]float32, error)

	// PutVector stores the vector for (model, text), replacing any
	// previously cached value.
	PutVector(ctx context.Context, model, text string, vector []float32) error

	// DeleteVectors removes every vector cached for model.
	// Returns the number of records removed.
	DeleteVectors(ctx context.Context, model string) (int, error)

	// Len returns the number of cached vectors across all models.
	Len(ctx context.Context) (int, error)

	// Close closes the cache and releases resources.
	Close() error
}
