// Package taxonomy holds the static table of strategic-management concepts:
// categories containing sub-buckets or frameworks, which contain canonical
// terms and their accepted paraphrases.
//
// The table is loaded once at process start and is read-only afterwards. The
// store exposes two views of the same data: a normalized-surface-form index
// for O(1) exact lookup, and a flat entry list scanned by the fuzzy and
// semantic matching tiers.
package taxonomy
