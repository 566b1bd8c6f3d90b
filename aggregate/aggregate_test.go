package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casecraft/caselens/core"
)

var (
	networkEffects = &core.Entry{
		Category: "StrategicTheory",
		Bucket:   "PlatformStrategy",
		Term:     "network effects",
	}
	transactionCosts = &core.Entry{
		Category: "StrategicTheory",
		Bucket:   "TCE",
		Term:     "transaction costs",
	}
)

func match(entry *core.Entry, confidence float64, source core.Source) core.Match {
	return core.Match{
		Entry:      entry,
		Surface:    entry.Term,
		Confidence: confidence,
		Method:     core.MethodFuzzy,
		Source:     source,
	}
}

func TestAggregate_Ordering(t *testing.T) {
	set := Aggregate([]core.Match{
		match(networkEffects, 0.7, core.SourceCase),
		match(transactionCosts, 0.95, core.SourceCase),
	})

	require.Equal(t, 2, set.Len())
	assert.Equal(t, "transaction costs", set.Matches[0].Entry.Term)
	assert.Equal(t, "network effects", set.Matches[1].Entry.Term)

	for i := 1; i < set.Len(); i++ {
		assert.GreaterOrEqual(t, set.Matches[i-1].Confidence, set.Matches[i].Confidence)
	}
}

func TestAggregate_StableOnTies(t *testing.T) {
	first := match(networkEffects, 0.8, core.SourceCase)
	second := match(transactionCosts, 0.8, core.SourceCase)

	set := Aggregate([]core.Match{first, second})

	require.Equal(t, 2, set.Len())
	assert.Equal(t, "network effects", set.Matches[0].Entry.Term)
	assert.Equal(t, "transaction costs", set.Matches[1].Entry.Term)
}

func TestAggregate_DedupWithinSource(t *testing.T) {
	set := Aggregate([]core.Match{
		match(networkEffects, 0.7, core.SourceCase),
		match(networkEffects, 0.9, core.SourceCase),
	})

	require.Equal(t, 1, set.Len())
	// Highest confidence occurrence wins.
	assert.Equal(t, 0.9, set.Matches[0].Confidence)
}

func TestAggregate_KeepsAcrossSources(t *testing.T) {
	// The same canonical term hit from case and question text stays once
	// per source.
	set := Aggregate([]core.Match{
		match(networkEffects, 0.9, core.SourceCase),
		match(networkEffects, 0.8, core.SourceQuestion),
	})

	require.Equal(t, 2, set.Len())
	assert.Equal(t, core.SourceCase, set.Matches[0].Source)
	assert.Equal(t, core.SourceQuestion, set.Matches[1].Source)
}

func TestAggregate_DedupInvariant(t *testing.T) {
	set := Aggregate([]core.Match{
		match(networkEffects, 0.9, core.SourceCase),
		match(networkEffects, 0.8, core.SourceCase),
		match(networkEffects, 0.7, core.SourceQuestion),
		match(transactionCosts, 0.6, core.SourceQuestion),
		match(transactionCosts, 0.5, core.SourceQuestion),
	})

	type key struct {
		term   string
		source core.Source
	}
	seen := make(map[key]bool)
	for _, m := range set.Matches {
		k := key{m.Entry.Term, m.Source}
		assert.False(t, seen[k], "duplicate (term, source): %v", k)
		seen[k] = true
	}
}

func TestAggregate_SourceFilter(t *testing.T) {
	set := Aggregate([]core.Match{
		match(networkEffects, 0.9, core.SourceCase),
		match(transactionCosts, 0.8, core.SourceQuestion),
	}, WithSource(core.SourceQuestion))

	require.Equal(t, 1, set.Len())
	assert.Equal(t, core.SourceQuestion, set.Matches[0].Source)
}

func TestAggregate_TopN(t *testing.T) {
	matches := []core.Match{
		match(networkEffects, 0.9, core.SourceCase),
		match(transactionCosts, 0.8, core.SourceCase),
		match(networkEffects, 0.7, core.SourceQuestion),
	}

	set := Aggregate(matches, WithTopN(2))
	assert.Equal(t, 2, set.Len())

	set = Aggregate(matches, WithTopN(0))
	assert.Equal(t, 3, set.Len())
}

func TestAggregate_UnmappedPlaceholders(t *testing.T) {
	unmapped := func(surface string, source core.Source) core.Match {
		return core.Match{
			Surface: surface,
			Method:  core.MethodUnmapped,
			Source:  source,
		}
	}

	set := Aggregate([]core.Match{
		unmapped("purple elephant", core.SourceCase),
		unmapped("purple elephant", core.SourceCase),
		unmapped("quantum widget", core.SourceCase),
	})

	// Distinct unresolved phrases survive; identical ones dedupe.
	assert.Equal(t, 2, set.Len())
}

func TestAggregate_Empty(t *testing.T) {
	set := Aggregate(nil)
	assert.Zero(t, set.Len())
	assert.NotNil(t, set.Matches)
}
