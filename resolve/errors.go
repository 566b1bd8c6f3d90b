// Copyright 2026 Casecraft Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package resolve

import "errors"

var (
	// ErrTaxonomyRequired is returned when a resolver is created without a taxonomy store.
	ErrTaxonomyRequired = errors.New("taxonomy store is required")

	// ErrModelContextRequired is returned when a resolver needs the semantic
	// tier but no model context was provided.
	ErrModelContextRequired = errors.New("model context is required unless the semantic tier is disabled")

	// ErrEmbedderRequired is returned when a model context is created without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidFuzzyThreshold is returned for fuzzy thresholds outside [0,100].
	ErrInvalidFuzzyThreshold = errors.New("fuzzy threshold must be in [0,100]")

	// ErrInvalidSemanticThreshold is returned for semantic thresholds outside [0,1].
	ErrInvalidSemanticThreshold = errors.New("semantic threshold must be in [0,1]")

	// ErrContextClosed is returned when a model context is used after Close.
	ErrContextClosed = errors.New("model context is closed")

	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbeddingCountMismatch is returned when a batch embedding call
	// returns a different number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")
)
