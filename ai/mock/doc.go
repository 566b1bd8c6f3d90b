// Package mock provides test doubles for the ai package interfaces.
//
// The mocks default to deterministic behavior so tests are repeatable
// without external model services: embeddings are derived from an FNV
// hash of the input text, and phrase suggestions are split from the
// input words. Custom behavior can be injected via the exported
// function fields (EmbedTextFunc, SuggestPhrasesFunc).
package mock
