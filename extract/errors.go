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


package extract

import (
	"errors"
	"fmt"

	"github.com/casecraft/caselens/core"
)

var (
	// ErrExtraction indicates phrase extraction failed for one input text.
	// A failure on one input does not abort extraction on other inputs.
	ErrExtraction = errors.New("phrase extraction failed")

	// ErrNoEntityKinds is returned when an empty entity allow-list is configured.
	ErrNoEntityKinds = errors.New("entity kind allow-list cannot be empty")

	// ErrNoBusinessVerbs is returned when an empty business-verb set is configured.
	ErrNoBusinessVerbs = errors.New("business verb set cannot be empty")
)

// ExtractionError reports which input's extraction failed. It unwraps to
// ErrExtraction so callers can match either the sentinel or the typed form.
type ExtractionError struct {
	Source core.Source
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("phrase extraction failed for %s input: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtraction, e.Err}
}
