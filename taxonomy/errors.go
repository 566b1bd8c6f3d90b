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


package taxonomy

import "errors"

var (
	// ErrLoad indicates the taxonomy table could not be loaded or is malformed.
	// This is fatal at startup: the engine cannot run without its taxonomy.
	ErrLoad = errors.New("taxonomy load failed")

	// ErrEmptyTable indicates the table contained no entries.
	ErrEmptyTable = errors.New("taxonomy table is empty")

	// ErrMissingCategory indicates a category with no name.
	ErrMissingCategory = errors.New("category name is required")
)
