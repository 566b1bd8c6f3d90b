package caselens

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casecraft/caselens/ai/mock"
	"github.com/casecraft/caselens/core"
	"github.com/casecraft/caselens/pipeline"
)

func TestNewEngine_FuzzyOnly(t *testing.T) {
	e, err := NewEngine(WithoutSemanticTier())
	require.NoError(t, err)
	defer e.Close()

	assert.Nil(t, e.provider)
	assert.Nil(t, e.models)
	assert.NotNil(t, e.Taxonomy())

	result, err := e.Analyze(context.Background(), pipeline.Request{
		CaseText: "The network effects strengthen the platform.",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Answer, "network effects (PlatformStrategy)")
}

func TestNewEngine_BadTaxonomyFile(t *testing.T) {
	_, err := NewEngine(
		WithoutSemanticTier(),
		WithTaxonomyFile(filepath.Join(t.TempDir(), "missing.json")))
	assert.Error(t, err)
}

func TestNewEngine_WithProvider(t *testing.T) {
	e, err := NewEngine(WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer e.Close()

	require.NotNil(t, e.models)

	// Exact hits never touch the embedder.
	result, err := e.Analyze(context.Background(), pipeline.Request{
		QuestionText: "Do switching costs matter here?",
	})
	require.NoError(t, err)

	terms := make([]string, 0, result.Concepts.Len())
	for _, m := range result.Concepts.Matches {
		if m.Entry != nil {
			terms = append(terms, m.Entry.Term)
		}
	}
	assert.Contains(t, terms, "switching costs")
}

func TestEngine_WarmTaxonomy(t *testing.T) {
	t.Run("fuzzy-only is a no-op", func(t *testing.T) {
		e, err := NewEngine(WithoutSemanticTier())
		require.NoError(t, err)
		defer e.Close()

		require.NoError(t, e.WarmTaxonomy(context.Background(), nil))
	})

	t.Run("precomputes every canonical term", func(t *testing.T) {
		e, err := NewEngine(WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		defer e.Close()

		var lastDone, lastTotal int
		err = e.WarmTaxonomy(context.Background(), func(done, total int) {
			lastDone, lastTotal = done, total
		})
		require.NoError(t, err)
		assert.Equal(t, e.Taxonomy().Len(), lastTotal)
		assert.Equal(t, lastTotal, lastDone)
	})
}

func TestEngine_VectorCachePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vectors")
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), mock.NewMockSuggester())

	e, err := NewEngine(WithProvider(provider), WithVectorCachePath(dbPath))
	require.NoError(t, err)
	require.NoError(t, e.WarmTaxonomy(context.Background(), nil))
	require.NoError(t, e.Close())

	// A fresh engine over the same path finds the cached vectors without
	// calling the embedder.
	embedder := mock.NewMockEmbedder()
	e2, err := NewEngine(
		WithProvider(mock.NewMockProviderWithServices(embedder, mock.NewMockSuggester())),
		WithVectorCachePath(dbPath))
	require.NoError(t, err)
	defer e2.Close()

	require.NoError(t, e2.WarmTaxonomy(context.Background(), nil))
	assert.Zero(t, embedder.CallCount())
}

func TestEngine_UnmappedFallback(t *testing.T) {
	e, err := NewEngine(WithoutSemanticTier(), WithUnmappedFallback())
	require.NoError(t, err)
	defer e.Close()

	result, err := e.Analyze(context.Background(), pipeline.Request{
		CaseText: "The xylophone zeppelin drifted along.",
	})
	require.NoError(t, err)

	found := false
	for _, m := range result.Matches {
		if m.Method == core.MethodUnmapped {
			found = true
			assert.Nil(t, m.Entry)
			assert.Zero(t, m.Confidence)
		}
	}
	assert.True(t, found, "unmatched phrase must yield a placeholder")
}
