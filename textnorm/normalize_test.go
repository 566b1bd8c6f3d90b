package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Network Effects", "network effects"},
		{"collapse whitespace", "network   \t effects", "network effects"},
		{"trim ends", "  network effects  ", "network effects"},
		{"preserve punctuation", "make-or-buy, decision!", "make-or-buy, decision!"},
		{"newlines collapse", "network\neffects", "network effects"},
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Network Effects",
		"  MANY   spaces   here ",
		"already normalized",
		"",
		"Mixed CASE with\tTabs",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		assert.Equal(t, once, twice, "Normalize must be idempotent for %q", in)
	}
}

func TestTokenizeAndFilter(t *testing.T) {
	t.Run("removes stop words", func(t *testing.T) {
		got := TokenizeAndFilter("the value of the network")
		assert.Equal(t, []string{"value", "network"}, got)
	})

	t.Run("trims punctuation", func(t *testing.T) {
		got := TokenizeAndFilter("costs, (fixed)!")
		assert.Equal(t, []string{"costs", "fixed"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, TokenizeAndFilter(""))
	})
}

func TestIsStopOnly(t *testing.T) {
	assert.True(t, IsStopOnly(""))
	assert.True(t, IsStopOnly("   "))
	assert.True(t, IsStopOnly("the of and"))
	assert.True(t, IsStopOnly("...!!!"))
	assert.False(t, IsStopOnly("network effects"))
	assert.False(t, IsStopOnly("the network"))
}
