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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntry indicates a taxonomy Entry failed validation.
	ErrInvalidEntry = errors.New("invalid taxonomy entry")

	// ErrInvalidMatch indicates a Match failed validation.
	ErrInvalidMatch = errors.New("invalid match")

	// ErrEmptyTerm indicates the canonical term field is empty.
	ErrEmptyTerm = errors.New("canonical term cannot be empty")

	// ErrEmptyCategory indicates the category field is empty.
	ErrEmptyCategory = errors.New("category cannot be empty")

	// ErrInvalidSource indicates an unrecognized source tag.
	ErrInvalidSource = errors.New("invalid source tag")

	// ErrInvalidConfidence indicates a confidence score outside [0,1].
	ErrInvalidConfidence = errors.New("confidence must be in [0,1]")

	// ErrInvalidMethod indicates an unrecognized match method.
	ErrInvalidMethod = errors.New("invalid match method")
)
