// Package resolve implements the three-tier term-resolution cascade at the
// heart of the engine.
//
// Each candidate phrase is normalized and then tried against the taxonomy in
// strict order: exact lookup of canonical terms and paraphrases (confidence
// 1.0), fuzzy string similarity (maximum of simple, partial, token-sort, and
// token-set ratios, threshold on the 0-100 scale), and finally embedding
// similarity against canonical terms (cosine, threshold on [0,1]). The first
// tier that fires wins; later tiers never run. All confidences are reported
// on the single [0,1] scale.
//
// The embedding backend is wrapped in a ModelContext: an explicit, shareable
// object that memoizes term vectors, retries transient failures with
// backoff, optionally persists vectors in a cache, and can pre-warm the
// whole taxonomy through a worker pool. Backend failures surface as
// ai.ErrModelUnavailable; running without the semantic tier is possible but
// only as an explicit opt-in (WithoutSemanticTier).
package resolve
