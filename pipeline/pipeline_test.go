package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casecraft/caselens/ai"
	"github.com/casecraft/caselens/ai/mock"
	"github.com/casecraft/caselens/assemble"
	"github.com/casecraft/caselens/core"
	"github.com/casecraft/caselens/extract"
	"github.com/casecraft/caselens/resolve"
	"github.com/casecraft/caselens/taxonomy"
)

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()

	store, err := taxonomy.Default()
	require.NoError(t, err)

	resolver, err := resolve.NewResolver(store, nil, resolve.WithoutSemanticTier())
	require.NoError(t, err)

	extractor, err := extract.NewExtractor()
	require.NoError(t, err)

	assembler, err := assemble.NewAssembler()
	require.NoError(t, err)

	p, err := NewPipeline(extractor, resolver, assembler, opts...)
	require.NoError(t, err)
	return p
}

func TestNewPipeline_Validation(t *testing.T) {
	store, err := taxonomy.Default()
	require.NoError(t, err)
	resolver, err := resolve.NewResolver(store, nil, resolve.WithoutSemanticTier())
	require.NoError(t, err)
	extractor, err := extract.NewExtractor()
	require.NoError(t, err)
	assembler, err := assemble.NewAssembler()
	require.NoError(t, err)

	t.Run("nil extractor", func(t *testing.T) {
		_, err := NewPipeline(nil, resolver, assembler)
		assert.ErrorIs(t, err, ErrExtractorRequired)
	})

	t.Run("nil resolver", func(t *testing.T) {
		_, err := NewPipeline(extractor, nil, assembler)
		assert.ErrorIs(t, err, ErrResolverRequired)
	})

	t.Run("nil assembler", func(t *testing.T) {
		_, err := NewPipeline(extractor, resolver, nil)
		assert.ErrorIs(t, err, ErrAssemblerRequired)
	})
}

func TestRun_EmptyRequest(t *testing.T) {
	p := newTestPipeline(t)

	_, err := p.Run(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrEmptyRequest)

	_, err = p.Run(context.Background(), Request{CaseText: "   \n"})
	assert.ErrorIs(t, err, ErrEmptyRequest)
}

func TestRun_EndToEnd(t *testing.T) {
	p := newTestPipeline(t)

	result, err := p.Run(context.Background(), Request{
		CaseText: "The network effects strengthen the platform as more participants join.",
	})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(result.RequestID)
	assert.NoError(t, parseErr, "request ID must be a valid UUID")

	require.NotNil(t, result.Concepts)
	terms := conceptTerms(result.Concepts)
	assert.Contains(t, terms, "network effects")

	assert.Contains(t, result.Answer, "network effects (PlatformStrategy)")
	assert.Contains(t, result.Answer, "Platform strategy centers on orchestrating an ecosystem")
	assert.Empty(t, result.Warnings)
}

func TestRun_NoMatches(t *testing.T) {
	p := newTestPipeline(t)

	result, err := p.Run(context.Background(), Request{
		CaseText: "The xylophone zeppelin drifted along.",
	})
	require.NoError(t, err)

	assert.Zero(t, result.Concepts.Len())
	assert.Equal(t, assemble.DefaultNoConceptsMessage, result.Answer)
}

func TestRun_OnlyQuestion(t *testing.T) {
	p := newTestPipeline(t)

	req := Request{
		CaseText:     "The network effects strengthen the platform.",
		QuestionText: "How do switching costs protect the incumbent?",
	}

	full, err := p.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, conceptTerms(full.Concepts), "network effects")
	assert.Contains(t, conceptTerms(full.Concepts), "switching costs")

	req.OnlyQuestion = true
	filtered, err := p.Run(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, conceptTerms(filtered.Concepts), "network effects")
	assert.Contains(t, conceptTerms(filtered.Concepts), "switching costs")
	for _, m := range filtered.Concepts.Matches {
		assert.Equal(t, core.SourceQuestion, m.Source)
	}
}

func TestRun_TopN(t *testing.T) {
	p := newTestPipeline(t)

	req := Request{
		CaseText: "Network effects and switching costs reinforce economies of scale.",
		TopN:     1,
	}
	result, err := p.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Concepts.Len())
}

func TestRun_StyleInstructions(t *testing.T) {
	p := newTestPipeline(t)

	result, err := p.Run(context.Background(), Request{
		CaseText:          "The network effects strengthen the platform.",
		StyleInstructions: "bullet points",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Answer, "REVISED[bullet points]: "))
}

func TestRun_SuggesterSupplement(t *testing.T) {
	suggester := mock.NewMockSuggester()
	suggester.SuggestPhrasesFunc = func(ctx context.Context, text string) ([]ai.SuggestedPhrase, error) {
		return []ai.SuggestedPhrase{
			{Text: "asset specificity", Kind: "strategic_theory_term", Salience: 9},
		}, nil
	}

	p := newTestPipeline(t, WithSuggester(suggester))

	result, err := p.Run(context.Background(), Request{
		CaseText: "The xylophone zeppelin drifted along.",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, suggester.CallCount())
	require.Contains(t, conceptTerms(result.Concepts), "asset specificity")

	for _, m := range result.Concepts.Matches {
		if m.Entry != nil && m.Entry.Term == "asset specificity" {
			assert.Equal(t, core.SourceCase, m.Source)
			assert.Equal(t, core.MethodExact, m.Method)
		}
	}
}

func TestRun_SuggesterFailureDegrades(t *testing.T) {
	suggester := mock.NewMockSuggester()
	suggester.SuggestPhrasesFunc = func(ctx context.Context, text string) ([]ai.SuggestedPhrase, error) {
		return nil, errors.New("model offline")
	}

	p := newTestPipeline(t, WithSuggester(suggester))

	result, err := p.Run(context.Background(), Request{
		CaseText: "The network effects strengthen the platform.",
	})
	require.NoError(t, err)

	assert.Contains(t, conceptTerms(result.Concepts), "network effects")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "phrase suggestion failed")
}

func TestRun_EmbedderFailurePropagates(t *testing.T) {
	store, err := taxonomy.Default()
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("connection refused")
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("connection refused")
	}

	models, err := resolve.NewModelContext(embedder, resolve.WithRetry(1, 0))
	require.NoError(t, err)
	defer models.Close()

	resolver, err := resolve.NewResolver(store, models)
	require.NoError(t, err)

	extractor, err := extract.NewExtractor()
	require.NoError(t, err)
	assembler, err := assemble.NewAssembler()
	require.NoError(t, err)

	p, err := NewPipeline(extractor, resolver, assembler)
	require.NoError(t, err)

	// The phrase misses the exact and fuzzy tiers, so the semantic tier runs
	// and surfaces the embedding failure.
	_, err = p.Run(context.Background(), Request{
		CaseText: "The xylophone zeppelin drifted along.",
	})
	assert.ErrorIs(t, err, ai.ErrModelUnavailable)
}

func TestRun_DuplicatePhrasesResolvedOnce(t *testing.T) {
	p := newTestPipeline(t)

	result, err := p.Run(context.Background(), Request{
		CaseText: "Network effects matter. The network effects grow. Network Effects win.",
	})
	require.NoError(t, err)

	count := 0
	for _, phrase := range result.Phrases {
		if strings.EqualFold(phrase.Text, "network effects") {
			count++
		}
	}
	assert.Equal(t, 1, count, "duplicate phrases from one source must collapse")
}

func conceptTerms(set *core.ConceptSet) []string {
	terms := make([]string, 0, set.Len())
	for _, m := range set.Matches {
		if m.Entry != nil {
			terms = append(terms, m.Entry.Term)
		}
	}
	return terms
}
