// Package extract turns raw case and question text into candidate phrases
// for term resolution.
//
// Three kinds of phrases are emitted per input, in order: named entities
// restricted to an allow-list of kinds, noun phrases, and tokens whose stem
// belongs to a curated set of strategy-relevant verbs. Every phrase carries
// the source tag of the input it came from so downstream stages can
// attribute matches to the case, the question, or user-supplied text.
package extract
