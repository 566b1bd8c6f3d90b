package resolve

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// fuzzyScore computes the string-similarity score between two normalized
// strings on the 0-100 scale. The score is the maximum of the simple
// character ratio, the partial (substring) ratio, the token-order-independent
// sort ratio, and the token-set ratio.
func fuzzyScore(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	best := fuzzy.Ratio(a, b)
	if s := fuzzy.PartialRatio(a, b); s > best {
		best = s
	}
	if s := fuzzy.TokenSortRatio(a, b); s > best {
		best = s
	}
	if s := fuzzy.TokenSetRatio(a, b); s > best {
		best = s
	}
	return best
}
