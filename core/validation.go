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


package core

import "fmt"

// ValidateEntry validates a taxonomy Entry according to domain rules.
//
// Validation rules:
//   - Term must not be empty
//   - Category must not be empty
//
// NOT validated:
//   - Bucket (flat categories may use an empty sub-bucket)
//   - Paraphrases (an empty list is valid)
func ValidateEntry(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if entry.Term == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyTerm)
	}

	if entry.Category == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyCategory)
	}

	return nil
}

// ValidateMatch validates a Match according to domain rules.
//
// Validation rules:
//   - Entry must be present unless the method is MethodUnmapped
//   - Confidence must be within [0,1]
//   - Source and Method must be recognized values
func ValidateMatch(match *Match) error {
	if match == nil {
		return fmt.Errorf("%w: match is nil", ErrInvalidMatch)
	}

	if match.Entry == nil && match.Method != MethodUnmapped {
		return fmt.Errorf("%w: entry is nil for method %q", ErrInvalidMatch, match.Method)
	}

	if match.Confidence < 0 || match.Confidence > 1 {
		return fmt.Errorf("%w: %w: value %v", ErrInvalidMatch, ErrInvalidConfidence, match.Confidence)
	}

	if err := ValidateSource(match.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMatch, err)
	}

	if err := ValidateMethod(match.Method); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMatch, err)
	}

	return nil
}

// ValidateSource validates that a Source has a recognized value.
func ValidateSource(source Source) error {
	switch source {
	case SourceCase, SourceQuestion, SourceUserInputs:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidSource, source)
}

// ValidateMethod validates that a MatchMethod has a recognized value.
func ValidateMethod(method MatchMethod) error {
	switch method {
	case MethodExact, MethodFuzzy, MethodSemantic, MethodUnmapped:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidMethod, method)
}
