// Package caselens maps free-text business-case prose onto a fixed strategic
// management taxonomy and assembles templated answers from the result.
//
// The Engine is the top-level entry point. It owns the taxonomy store, the
// embedding model context with its optional persistent vector cache, and the
// analysis pipeline. Candidate phrases are resolved through a three-tier
// cascade (exact, fuzzy string similarity, embedding similarity) and every
// match carries a confidence on a single [0,1] scale.
package caselens
