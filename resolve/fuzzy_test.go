package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzyScore(t *testing.T) {
	t.Run("identical strings score 100", func(t *testing.T) {
		assert.Equal(t, 100, fuzzyScore("network effects", "network effects"))
	})

	t.Run("empty input scores 0", func(t *testing.T) {
		assert.Zero(t, fuzzyScore("", "network effects"))
		assert.Zero(t, fuzzyScore("network effects", ""))
	})

	t.Run("misspelling scores high but below 100", func(t *testing.T) {
		score := fuzzyScore("transact cost", "transaction costs")
		assert.GreaterOrEqual(t, score, 70)
		assert.Less(t, score, 100)
	})

	t.Run("token order does not matter", func(t *testing.T) {
		assert.Equal(t, 100, fuzzyScore("costs transaction", "transaction costs"))
	})

	t.Run("unrelated strings score low", func(t *testing.T) {
		assert.Less(t, fuzzyScore("purple elephant dancing", "transaction costs"), 60)
	})
}

func TestClampScore(t *testing.T) {
	assert.Zero(t, clampScore(-0.4))
	assert.Equal(t, 0.5, clampScore(0.5))
	assert.Equal(t, 1.0, clampScore(1.2))
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical unit vectors", func(t *testing.T) {
		v := []float32{1, 0, 0}
		assert.InDelta(t, 1.0, cosineSimilarity(v, v), 1e-9)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		assert.Zero(t, cosineSimilarity([]float32{1}, []float32{1, 0}))
	})

	t.Run("zero vector", func(t *testing.T) {
		assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	})
}

func TestNormalizeVector(t *testing.T) {
	t.Run("unit length result", func(t *testing.T) {
		v := normalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
		assert.InDelta(t, 0.8, float64(v[1]), 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := normalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, v)
	})

	t.Run("empty vector passes through", func(t *testing.T) {
		assert.Empty(t, normalizeVector(nil))
	})
}
