package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("network effects")
		id2 := IDFromContent("network effects")
		assert.Equal(t, id1, id2)
	})

	t.Run("distinct content distinct IDs", func(t *testing.T) {
		id1 := IDFromContent("network effects")
		id2 := IDFromContent("transaction costs")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content", func(t *testing.T) {
		assert.NotPanics(t, func() { IDFromContent("") })
	})
}

func TestEntryFramework(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name:  "strategic theory entry has framework",
			entry: Entry{Category: "StrategicTheory", Bucket: "PlatformStrategy", Term: "network effects"},
			want:  "PlatformStrategy",
		},
		{
			name:  "business concept entry has no framework",
			entry: Entry{Category: "BusinessConcept", Bucket: "MarketStrategy", Term: "switching costs"},
			want:  "",
		},
		{
			name:  "industry context entry has no framework",
			entry: Entry{Category: "IndustryContext", Bucket: "Facilities", Term: "phoenix factory"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Framework())
		})
	}
}

func TestEntryKey(t *testing.T) {
	entry := &Entry{Category: "StrategicTheory", Bucket: "TCE", Term: "asset specificity"}
	assert.Equal(t, "(StrategicTheory,TCE,asset specificity)", entry.Key())
	assert.Equal(t, IDFromContent(entry.Key()), entry.Id())
}

func TestConceptSetFrameworks(t *testing.T) {
	tce := &Entry{Category: "StrategicTheory", Bucket: "TCE", Term: "opportunism"}
	platform := &Entry{Category: "StrategicTheory", Bucket: "PlatformStrategy", Term: "network effects"}
	biz := &Entry{Category: "BusinessConcept", Bucket: "MarketStrategy", Term: "switching costs"}

	set := &ConceptSet{Matches: []Match{
		{Entry: platform, Confidence: 1.0, Method: MethodExact, Source: SourceCase},
		{Entry: tce, Confidence: 0.9, Method: MethodFuzzy, Source: SourceCase},
		{Entry: biz, Confidence: 0.8, Method: MethodFuzzy, Source: SourceQuestion},
		{Entry: tce, Confidence: 0.7, Method: MethodFuzzy, Source: SourceQuestion},
	}}

	frameworks := set.Frameworks()
	require.Len(t, frameworks, 2)
	assert.Equal(t, []string{"PlatformStrategy", "TCE"}, frameworks)
}

func TestConceptSetByCategory(t *testing.T) {
	theory := &Entry{Category: "StrategicTheory", Bucket: "TCE", Term: "opportunism"}
	biz := &Entry{Category: "BusinessConcept", Bucket: "Operations", Term: "quality control"}

	set := &ConceptSet{Matches: []Match{
		{Entry: theory, Confidence: 1.0, Method: MethodExact, Source: SourceCase},
		{Entry: biz, Confidence: 0.8, Method: MethodFuzzy, Source: SourceCase},
		{Entry: nil, Confidence: 0, Method: MethodUnmapped, Source: SourceQuestion},
	}}

	grouped := set.ByCategory()
	require.Len(t, grouped, 3)
	assert.Len(t, grouped["StrategicTheory"], 1)
	assert.Len(t, grouped["BusinessConcept"], 1)
	assert.Len(t, grouped[CategoryUnmapped], 1)
}

func TestConceptSetLen(t *testing.T) {
	empty := &ConceptSet{}
	assert.Equal(t, 0, empty.Len())

	set := &ConceptSet{Matches: []Match{{Method: MethodUnmapped, Source: SourceCase}}}
	assert.Equal(t, 1, set.Len())
}
