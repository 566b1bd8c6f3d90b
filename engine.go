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


package caselens

import (
	"context"
	"log/slog"

	"github.com/casecraft/caselens/ai"
	"github.com/casecraft/caselens/ai/openai"
	"github.com/casecraft/caselens/assemble"
	"github.com/casecraft/caselens/extract"
	"github.com/casecraft/caselens/pipeline"
	"github.com/casecraft/caselens/resolve"
	"github.com/casecraft/caselens/storage"
	"github.com/casecraft/caselens/storage/badger"
	"github.com/casecraft/caselens/taxonomy"
)

// Engine bundles the taxonomy, the embedding model context, and the analysis
// pipeline behind one handle with a single Close.
type Engine struct {
	store    *taxonomy.Store
	backend  *badger.Backend
	cache    storage.VectorCache
	provider ai.Provider
	models   *resolve.ModelContext
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig          *ai.Config
	provider          ai.Provider
	taxonomyPath      string
	cachePath         string
	fuzzyThreshold    float64
	semanticThreshold float64
	maxWords          int
	topTemplates      map[string]assemble.Bundle
	noSemantic        bool
	unmappedFallback  bool
	suggestPhrases    bool
}

// WithAIConfig sets the model backend configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built AI provider instead of constructing one
// from the config. The engine takes ownership and closes it.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithTaxonomyFile loads the taxonomy table from a file instead of the
// embedded default table.
func WithTaxonomyFile(path string) EngineOption {
	return func(o *engineOptions) {
		o.taxonomyPath = path
	}
}

// WithVectorCachePath enables the persistent vector cache at the given
// database path. Without it, vectors are memoized in memory only.
func WithVectorCachePath(path string) EngineOption {
	return func(o *engineOptions) {
		o.cachePath = path
	}
}

// WithFuzzyThreshold overrides the fuzzy tier threshold (0-100 scale).
func WithFuzzyThreshold(threshold float64) EngineOption {
	return func(o *engineOptions) {
		o.fuzzyThreshold = threshold
	}
}

// WithSemanticThreshold overrides the semantic tier threshold ([0,1] scale).
func WithSemanticThreshold(threshold float64) EngineOption {
	return func(o *engineOptions) {
		o.semanticThreshold = threshold
	}
}

// WithoutSemanticTier disables the semantic tier. No AI provider is
// constructed; unresolved phrases stop after the fuzzy tier.
func WithoutSemanticTier() EngineOption {
	return func(o *engineOptions) {
		o.noSemantic = true
	}
}

// WithUnmappedFallback emits zero-confidence placeholder matches for phrases
// no tier could resolve.
func WithUnmappedFallback() EngineOption {
	return func(o *engineOptions) {
		o.unmappedFallback = true
	}
}

// WithMaxAnswerWords overrides the answer word cap.
func WithMaxAnswerWords(n int) EngineOption {
	return func(o *engineOptions) {
		o.maxWords = n
	}
}

// WithTemplateBundles replaces the default answer template bundles.
func WithTemplateBundles(bundles map[string]assemble.Bundle) EngineOption {
	return func(o *engineOptions) {
		o.topTemplates = bundles
	}
}

// WithPhraseSuggestion supplements extraction with model-suggested phrases.
// Requires the semantic tier's provider, so it has no effect together with
// WithoutSemanticTier.
func WithPhraseSuggestion() EngineOption {
	return func(o *engineOptions) {
		o.suggestPhrases = true
	}
}

// NewEngine builds a ready-to-use analysis engine.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := loadStore(options)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		store:  store,
		logger: slog.Default().With("component", "engine"),
	}

	if err := e.initModels(options); err != nil {
		e.Close()
		return nil, err
	}

	resolver, err := newResolver(store, e.models, options)
	if err != nil {
		e.Close()
		return nil, err
	}

	if err := e.initPipeline(resolver, options); err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

func loadStore(options *engineOptions) (*taxonomy.Store, error) {
	if options.taxonomyPath != "" {
		return taxonomy.LoadFile(options.taxonomyPath)
	}
	return taxonomy.Default()
}

// initModels sets up the AI provider, the optional persistent vector cache,
// and the model context. Skipped entirely in fuzzy-only mode.
func (e *Engine) initModels(options *engineOptions) error {
	if options.noSemantic {
		return nil
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return err
		}
	}
	e.provider = provider

	modelOpts := []resolve.ModelOption{
		resolve.WithModelName(options.aiConfig.EmbeddingModel),
	}

	if options.cachePath != "" {
		backend, err := badger.OpenBackend(options.cachePath, false)
		if err != nil {
			return err
		}
		e.backend = backend

		cache, err := badger.NewVectorCache(backend)
		if err != nil {
			return err
		}
		e.cache = cache
		modelOpts = append(modelOpts, resolve.WithVectorCache(cache))
	}

	models, err := resolve.NewModelContext(provider.Embedder(), modelOpts...)
	if err != nil {
		return err
	}
	e.models = models
	return nil
}

func newResolver(store *taxonomy.Store, models *resolve.ModelContext, options *engineOptions) (*resolve.Resolver, error) {
	var resolverOpts []resolve.Option
	if options.noSemantic {
		resolverOpts = append(resolverOpts, resolve.WithoutSemanticTier())
	}
	if options.fuzzyThreshold > 0 {
		resolverOpts = append(resolverOpts, resolve.WithFuzzyThreshold(options.fuzzyThreshold))
	}
	if options.semanticThreshold > 0 {
		resolverOpts = append(resolverOpts, resolve.WithSemanticThreshold(options.semanticThreshold))
	}
	if options.unmappedFallback {
		resolverOpts = append(resolverOpts, resolve.WithUnmappedFallback())
	}
	return resolve.NewResolver(store, models, resolverOpts...)
}

func (e *Engine) initPipeline(resolver *resolve.Resolver, options *engineOptions) error {
	extractor, err := extract.NewExtractor()
	if err != nil {
		return err
	}

	var assembleOpts []assemble.Option
	if options.maxWords != 0 {
		assembleOpts = append(assembleOpts, assemble.WithMaxWords(options.maxWords))
	}
	if options.topTemplates != nil {
		assembleOpts = append(assembleOpts, assemble.WithBundles(options.topTemplates))
	}
	assembler, err := assemble.NewAssembler(assembleOpts...)
	if err != nil {
		return err
	}

	var pipelineOpts []pipeline.Option
	if options.suggestPhrases && e.provider != nil {
		pipelineOpts = append(pipelineOpts, pipeline.WithSuggester(e.provider.PhraseSuggester()))
	}

	p, err := pipeline.NewPipeline(extractor, resolver, assembler, pipelineOpts...)
	if err != nil {
		return err
	}
	e.pipeline = p
	return nil
}

// Analyze runs the full analysis chain for one request.
func (e *Engine) Analyze(ctx context.Context, req pipeline.Request) (*pipeline.Result, error) {
	return e.pipeline.Run(ctx, req)
}

// WarmTaxonomy precomputes embeddings for every canonical term so the first
// request pays no embedding latency. A no-op in fuzzy-only mode.
func (e *Engine) WarmTaxonomy(ctx context.Context, onProgress func(done, total int)) error {
	if e.models == nil {
		return nil
	}
	return e.models.WarmTaxonomy(ctx, e.store, onProgress)
}

// Taxonomy returns the loaded taxonomy store.
func (e *Engine) Taxonomy() *taxonomy.Store {
	return e.store
}

// Close releases the model context, the AI provider, and the vector cache.
func (e *Engine) Close() error {
	var firstErr error

	if e.models != nil {
		if err := e.models.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if e.cache != nil {
		if err := e.cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing vector cache backend", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
