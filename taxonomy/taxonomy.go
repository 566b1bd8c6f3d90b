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

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/casecraft/caselens/core"
	"github.com/casecraft/caselens/textnorm"
)

// tableFile mirrors the on-disk JSON layout:
// category -> sub-bucket/framework -> canonical term -> paraphrases.
type tableFile struct {
	Version    string         `json:"version"`
	Categories []categoryFile `json:"categories"`
}

type categoryFile struct {
	Name    string       `json:"name"`
	Buckets []bucketFile `json:"buckets"`
}

type bucketFile struct {
	Name  string     `json:"name"`
	Terms []termFile `json:"terms"`
}

type termFile struct {
	Term        string   `json:"term"`
	Paraphrases []string `json:"paraphrases"`
}

// Store is the read-only taxonomy table, loaded once at process start.
// It holds a flat list of entries for the fuzzy/semantic scan tiers and a
// paraphrase index for O(1) exact lookup. Safe for concurrent readers.
type Store struct {
	version string
	entries []*core.Entry
	exact   map[string][]*core.Entry // normalized surface form -> entries
}

// Load reads a taxonomy table from r and builds the lookup index.
// A malformed or empty table is a fatal ErrLoad: resolution cannot produce
// correct output without the taxonomy, so there is no degraded mode here.
func Load(r io.Reader) (*Store, error) {
	var file tableFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return build(&file)
}

// LoadFile reads a taxonomy table from the file at path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()
	return Load(f)
}

func build(file *tableFile) (*Store, error) {
	store := &Store{
		version: file.Version,
		exact:   make(map[string][]*core.Entry),
	}

	for _, category := range file.Categories {
		if category.Name == "" {
			return nil, fmt.Errorf("%w: %w", ErrLoad, ErrMissingCategory)
		}
		for _, bucket := range category.Buckets {
			for _, term := range bucket.Terms {
				entry := &core.Entry{
					Category:    category.Name,
					Bucket:      bucket.Name,
					Term:        term.Term,
					Paraphrases: term.Paraphrases,
				}
				if err := core.ValidateEntry(entry); err != nil {
					return nil, fmt.Errorf("%w: category %q bucket %q: %w",
						ErrLoad, category.Name, bucket.Name, err)
				}
				store.entries = append(store.entries, entry)

				store.index(entry.Term, entry)
				for _, p := range entry.Paraphrases {
					store.index(p, entry)
				}
			}
		}
	}

	if len(store.entries) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrLoad, ErrEmptyTable)
	}

	return store, nil
}

// index maps the normalized surface form to the entry. A surface form may
// legitimately map to several entries; exact lookups return all of them.
func (s *Store) index(surface string, entry *core.Entry) {
	normalized := textnorm.Normalize(surface)
	if normalized == "" {
		return
	}
	for _, existing := range s.exact[normalized] {
		if existing == entry {
			return
		}
	}
	s.exact[normalized] = append(s.exact[normalized], entry)
}

// Version returns the version string of the loaded table.
func (s *Store) Version() string {
	return s.version
}

// Entries returns the flat list of taxonomy entries, in table order.
// Callers must not mutate the returned entries.
func (s *Store) Entries() []*core.Entry {
	return s.entries
}

// Len returns the number of canonical terms in the table.
func (s *Store) Len() int {
	return len(s.entries)
}

// LookupExact returns every entry for which the already-normalized surface
// form equals the canonical term or one of its paraphrases. Returns nil when
// nothing matches.
func (s *Store) LookupExact(normalized string) []*core.Entry {
	return s.exact[normalized]
}
