// Package textnorm provides text normalization used across the matching
// cascade: lower-casing, whitespace collapsing, and stop-word filtering.
package textnorm
