package assemble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casecraft/caselens/core"
)

func entry(category, bucket, term string) *core.Entry {
	return &core.Entry{Category: category, Bucket: bucket, Term: term}
}

func mapped(category, bucket, term string, conf float64) core.Match {
	return core.Match{
		Entry:      entry(category, bucket, term),
		Surface:    term,
		Confidence: conf,
		Method:     core.MethodExact,
		Source:     core.SourceCase,
	}
}

func set(matches ...core.Match) *core.ConceptSet {
	return &core.ConceptSet{Matches: matches}
}

func TestNewAssembler(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := NewAssembler()
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxWords, a.maxWords)
		assert.Equal(t, DefaultNoConceptsMessage, a.noConcepts)
		assert.Contains(t, a.bundles, "RBV")
		assert.Contains(t, a.bundles, "TCE")
		assert.Contains(t, a.bundles, "PlatformStrategy")
	})

	t.Run("custom bundle", func(t *testing.T) {
		a, err := NewAssembler(WithBundle("Porter", Bundle{Intro: "five forces"}))
		require.NoError(t, err)
		assert.Contains(t, a.bundles, "Porter")
		assert.Contains(t, a.bundles, "RBV")
	})

	t.Run("empty framework rejected", func(t *testing.T) {
		_, err := NewAssembler(WithBundle("", Bundle{}))
		assert.ErrorIs(t, err, ErrEmptyFramework)
	})

	t.Run("empty bundle table rejected", func(t *testing.T) {
		_, err := NewAssembler(WithBundles(nil))
		assert.ErrorIs(t, err, ErrNoBundles)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		_, err := NewAssembler(WithNoConceptsMessage(""))
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})
}

func TestAssemble_EmptySet(t *testing.T) {
	a, err := NewAssembler()
	require.NoError(t, err)

	assert.Equal(t, DefaultNoConceptsMessage, a.Assemble(nil, nil))
	assert.Equal(t, DefaultNoConceptsMessage, a.Assemble(set(), nil))

	t.Run("custom message", func(t *testing.T) {
		a, err := NewAssembler(WithNoConceptsMessage("nothing found"))
		require.NoError(t, err)
		assert.Equal(t, "nothing found", a.Assemble(set(), nil))
	})
}

func TestAssemble_OnlyUnmappedPlaceholders(t *testing.T) {
	a, err := NewAssembler()
	require.NoError(t, err)

	placeholder := core.Match{
		Surface: "mystery phrase",
		Method:  core.MethodUnmapped,
		Source:  core.SourceCase,
	}
	assert.Equal(t, DefaultNoConceptsMessage, a.Assemble(set(placeholder), nil))
}

func TestAssemble_SingleFramework(t *testing.T) {
	a, err := NewAssembler()
	require.NoError(t, err)

	cs := set(mapped("StrategicTheory", "PlatformStrategy", "network effects", 1.0))
	answer := a.Assemble(cs, nil)

	assert.Contains(t, answer,
		"In this case, the StrategicTheory concepts include: network effects (PlatformStrategy).")
	assert.Contains(t, answer, "Platform strategy centers on orchestrating an ecosystem")
	assert.NotContains(t, answer, Placeholder)
	assert.NotContains(t, answer, "resource-based view")
}

func TestAssemble_FrameworkOrder(t *testing.T) {
	a, err := NewAssembler()
	require.NoError(t, err)

	cs := set(
		mapped("StrategicTheory", "PlatformStrategy", "network effects", 1.0),
		mapped("StrategicTheory", "TCE", "transaction costs", 0.9),
	)

	answer := a.Assemble(cs, []string{"TCE", "PlatformStrategy"})
	tce := strings.Index(answer, "Transaction cost economics")
	platform := strings.Index(answer, "Platform strategy centers")
	require.GreaterOrEqual(t, tce, 0)
	require.GreaterOrEqual(t, platform, 0)
	assert.Less(t, tce, platform, "sections must follow the caller order")

	reversed := a.Assemble(cs, []string{"PlatformStrategy", "TCE"})
	assert.Less(t,
		strings.Index(reversed, "Platform strategy centers"),
		strings.Index(reversed, "Transaction cost economics"))
}

func TestAssemble_UnknownFrameworkSkipped(t *testing.T) {
	a, err := NewAssembler()
	require.NoError(t, err)

	cs := set(
		mapped("StrategicTheory", "TCE", "transaction costs", 0.9),
		mapped("StrategicTheory", "GameTheory", "first-mover advantage", 0.8),
	)
	answer := a.Assemble(cs, nil)

	assert.Contains(t, answer, "Transaction cost economics")
	assert.Contains(t, answer, "first-mover advantage (GameTheory)")
	assert.NotContains(t, answer, "GameTheory lens")
}

func TestAssemble_NoBundleMatches(t *testing.T) {
	a, err := NewAssembler()
	require.NoError(t, err)

	// Frameworkless business concept: no bundle applies, but the concept
	// sentences must still be rendered.
	cs := set(mapped("BusinessConcept", "MarketStrategy", "market segmentation", 1.0))
	answer := a.Assemble(cs, nil)

	assert.Equal(t,
		"In this case, the BusinessConcept concepts include: market segmentation.",
		answer)
}

func TestConceptSentences(t *testing.T) {
	t.Run("category grouping and order", func(t *testing.T) {
		cs := set(
			mapped("BusinessConcept", "MarketStrategy", "market segmentation", 1.0),
			mapped("StrategicTheory", "TCE", "transaction costs", 0.9),
			mapped("StrategicTheory", "PlatformStrategy", "network effects", 0.8),
		)

		got := ConceptSentences(cs)
		assert.Equal(t,
			"In this case, the StrategicTheory concepts include: "+
				"transaction costs (TCE), network effects (PlatformStrategy). "+
				"In this case, the BusinessConcept concepts include: market segmentation.",
			got)
	})

	t.Run("duplicate terms listed once", func(t *testing.T) {
		a := mapped("StrategicTheory", "TCE", "transaction costs", 1.0)
		b := mapped("StrategicTheory", "TCE", "transaction costs", 0.8)
		b.Source = core.SourceQuestion

		got := ConceptSentences(set(a, b))
		assert.Equal(t, 1, strings.Count(got, "transaction costs"))
	})

	t.Run("unmapped placeholders omitted", func(t *testing.T) {
		cs := set(
			mapped("StrategicTheory", "TCE", "transaction costs", 1.0),
			core.Match{Surface: "mystery phrase", Method: core.MethodUnmapped, Source: core.SourceCase},
		)

		got := ConceptSentences(cs)
		assert.NotContains(t, got, "mystery phrase")
		assert.NotContains(t, got, core.CategoryUnmapped)
	})

	t.Run("frameworkless entry has no parenthetical", func(t *testing.T) {
		cs := set(mapped("BusinessConcept", "", "economies of scale", 1.0))
		assert.Equal(t,
			"In this case, the BusinessConcept concepts include: economies of scale.",
			ConceptSentences(cs))
	})
}

func TestRevise(t *testing.T) {
	a, err := NewAssembler()
	require.NoError(t, err)

	t.Run("prefixes style instructions", func(t *testing.T) {
		got := a.Revise("The answer.", "more concise")
		assert.Equal(t, "REVISED[more concise]: The answer.", got)
	})

	t.Run("blank instructions return answer unchanged", func(t *testing.T) {
		assert.Equal(t, "The answer.", a.Revise("The answer.", ""))
		assert.Equal(t, "The answer.", a.Revise("The answer.", "   "))
	})
}

func TestTruncateWords(t *testing.T) {
	t.Run("under cap untouched", func(t *testing.T) {
		assert.Equal(t, "one two three", TruncateWords("one two three", 3))
		assert.Equal(t, "one two three", TruncateWords("one two three", 10))
	})

	t.Run("over cap truncated with marker", func(t *testing.T) {
		assert.Equal(t, "one two...", TruncateWords("one two three four", 2))
	})

	t.Run("preserves interior whitespace", func(t *testing.T) {
		assert.Equal(t, "one\n\ntwo...", TruncateWords("one\n\ntwo three", 2))
	})

	t.Run("non-positive cap disables truncation", func(t *testing.T) {
		assert.Equal(t, "one two three", TruncateWords("one two three", 0))
		assert.Equal(t, "one two three", TruncateWords("one two three", -1))
	})
}

func TestAssemble_WordCap(t *testing.T) {
	a, err := NewAssembler(WithMaxWords(10))
	require.NoError(t, err)

	cs := set(mapped("StrategicTheory", "TCE", "transaction costs", 1.0))
	answer := a.Assemble(cs, nil)

	assert.True(t, strings.HasSuffix(answer, "..."), "truncated answer must end with ellipsis")
	assert.LessOrEqual(t, len(strings.Fields(answer)), 11)
}
