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
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/casecraft/caselens/ai"
	"github.com/casecraft/caselens/storage"
	"github.com/casecraft/caselens/taxonomy"
	"github.com/casecraft/caselens/textnorm"
)

// warmBatchSize is the number of texts embedded per batch call during Warm.
const warmBatchSize = 16

// ModelContext owns the embedding backend and the memoized vectors for
// taxonomy terms and resolved phrases. It replaces process-global model state
// with an explicit object constructed once at startup and shared read-mostly
// across resolution calls. Safe for concurrent use.
type ModelContext struct {
	embedder   ai.Embedder
	model      string
	cache      storage.VectorCache
	poolSize   int
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger

	mu      sync.RWMutex
	vectors map[string][]float32
	closed  bool
}

// ModelOption configures a ModelContext.
type ModelOption func(*ModelContext) error

// WithVectorCache attaches a persistent vector cache. Vectors are looked up
// there before the embedder is called and stored there after embedding, so
// warm-up survives process restarts.
func WithVectorCache(cache storage.VectorCache) ModelOption {
	return func(mc *ModelContext) error {
		mc.cache = cache
		return nil
	}
}

// WithModelName sets the model identifier used to key cached vectors.
// Vectors from different embedding models are never interchangeable.
// Default is "default".
func WithModelName(name string) ModelOption {
	return func(mc *ModelContext) error {
		if name != "" {
			mc.model = name
		}
		return nil
	}
}

// WithWarmPoolSize sets the worker pool size used by Warm.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWarmPoolSize(size int) ModelOption {
	return func(mc *ModelContext) error {
		if size < 1 {
			size = 1
		}
		mc.poolSize = size
		return nil
	}
}

// WithRetry configures retry behavior for embedding calls.
// Defaults: 3 attempts, 500ms base delay with exponential backoff.
func WithRetry(maxAttempts int, baseDelay time.Duration) ModelOption {
	return func(mc *ModelContext) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		mc.maxRetries = maxAttempts
		mc.retryDelay = baseDelay
		return nil
	}
}

// WithModelLogger sets a custom logger.
// Default is slog.Default().
func WithModelLogger(logger *slog.Logger) ModelOption {
	return func(mc *ModelContext) error {
		if logger == nil {
			logger = slog.Default()
		}
		mc.logger = logger
		return nil
	}
}

// NewModelContext creates a model context around an embedder.
func NewModelContext(embedder ai.Embedder, opts ...ModelOption) (*ModelContext, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	mc := &ModelContext{
		embedder:   embedder,
		model:      "default",
		poolSize:   poolSize,
		maxRetries: 3,
		retryDelay: 500 * time.Millisecond,
		logger:     slog.Default().With("component", "model-context"),
		vectors:    make(map[string][]float32),
	}

	for _, opt := range opts {
		if err := opt(mc); err != nil {
			return nil, err
		}
	}

	return mc, nil
}

// Vector returns the unit-length embedding vector for text, memoizing the
// result. The persistent cache, when attached, is consulted before the
// embedder. Backend failures are reported as ai.ErrModelUnavailable.
func (mc *ModelContext) Vector(ctx context.Context, text string) ([]float32, error) {
	mc.mu.RLock()
	if mc.closed {
		mc.mu.RUnlock()
		return nil, ErrContextClosed
	}
	if vec, ok := mc.vectors[text]; ok {
		mc.mu.RUnlock()
		return vec, nil
	}
	mc.mu.RUnlock()

	if vec := mc.fromCache(ctx, text); vec != nil {
		mc.memoize(text, vec)
		return vec, nil
	}

	var raw []float32
	err := retryWithBackoff(ctx, func() error {
		var err error
		raw, err = mc.embedder.EmbedText(ctx, text)
		return err
	}, mc.maxRetries, mc.retryDelay)
	if err != nil {
		return nil, mc.asUnavailable(err)
	}

	vec := normalizeVector(raw)
	mc.memoize(text, vec)
	mc.toCache(ctx, text, vec)
	return vec, nil
}

// Warm precomputes vectors for texts using a worker pool, batching embedder
// calls. onProgress, when non-nil, is invoked after each completed batch with
// the number of texts processed so far and the total.
func (mc *ModelContext) Warm(ctx context.Context, texts []string, onProgress func(done, total int)) error {
	mc.mu.RLock()
	if mc.closed {
		mc.mu.RUnlock()
		return ErrContextClosed
	}
	mc.mu.RUnlock()

	pending := mc.withoutKnown(ctx, texts)
	total := len(texts)
	done := total - len(pending)
	if onProgress != nil && done > 0 {
		onProgress(done, total)
	}
	if len(pending) == 0 {
		return nil
	}

	pool, err := ants.NewPool(mc.poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(pending); start += warmBatchSize {
		end := start + warmBatchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			if err := mc.warmBatch(ctx, batch); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			mu.Lock()
			done += len(batch)
			current := done
			mu.Unlock()
			if onProgress != nil {
				onProgress(current, total)
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	return firstErr
}

// WarmTaxonomy precomputes vectors for every canonical term in the store.
func (mc *ModelContext) WarmTaxonomy(ctx context.Context, store *taxonomy.Store, onProgress func(done, total int)) error {
	if store == nil {
		return ErrTaxonomyRequired
	}
	return mc.Warm(ctx, CanonicalTexts(store), onProgress)
}

// Close releases the memoized vectors and marks the context unusable.
// It does not close an attached vector cache; the cache owner does that.
func (mc *ModelContext) Close() error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.closed = true
	mc.vectors = nil
	return nil
}

// Known reports whether a vector for text is already memoized.
func (mc *ModelContext) Known(text string) bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	_, ok := mc.vectors[text]
	return ok
}

func (mc *ModelContext) warmBatch(ctx context.Context, batch []string) error {
	var raw [][]float32
	err := retryWithBackoff(ctx, func() error {
		var err error
		raw, err = mc.embedder.EmbedTexts(ctx, batch)
		return err
	}, mc.maxRetries, mc.retryDelay)
	if err != nil {
		return mc.asUnavailable(err)
	}
	if len(raw) != len(batch) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(batch), len(raw))
	}

	for i, text := range batch {
		vec := normalizeVector(raw[i])
		mc.memoize(text, vec)
		mc.toCache(ctx, text, vec)
	}
	return nil
}

// withoutKnown filters out texts whose vectors are already memoized or found
// in the persistent cache, memoizing cache hits along the way.
func (mc *ModelContext) withoutKnown(ctx context.Context, texts []string) []string {
	pending := make([]string, 0, len(texts))
	seen := make(map[string]bool, len(texts))
	for _, text := range texts {
		if seen[text] || mc.Known(text) {
			continue
		}
		seen[text] = true
		if vec := mc.fromCache(ctx, text); vec != nil {
			mc.memoize(text, vec)
			continue
		}
		pending = append(pending, text)
	}
	return pending
}

func (mc *ModelContext) memoize(text string, vec []float32) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.closed {
		return
	}
	mc.vectors[text] = vec
}

// fromCache looks text up in the persistent cache. Cache errors are logged
// and treated as misses.
func (mc *ModelContext) fromCache(ctx context.Context, text string) []float32 {
	if mc.cache == nil {
		return nil
	}
	vec, err := mc.cache.GetVector(ctx, mc.model, text)
	if err != nil {
		mc.logger.Warn("vector cache lookup failed", "err", err)
		return nil
	}
	return vec
}

// toCache stores a vector in the persistent cache, best effort.
func (mc *ModelContext) toCache(ctx context.Context, text string, vec []float32) {
	if mc.cache == nil {
		return
	}
	if err := mc.cache.PutVector(ctx, mc.model, text, vec); err != nil {
		mc.logger.Warn("vector cache store failed", "err", err)
	}
}

// asUnavailable tags embedding-backend failures as ai.ErrModelUnavailable so
// callers can distinguish them from request errors. Context cancellation
// passes through untouched.
func (mc *ModelContext) asUnavailable(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, ai.ErrModelUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
}

// CanonicalTexts returns the normalized canonical term of every entry in the
// store, in table order. These are the comparison texts of the semantic tier.
func CanonicalTexts(store *taxonomy.Store) []string {
	entries := store.Entries()
	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = textnorm.Normalize(entry.Term)
	}
	return texts
}
