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


package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/casecraft/caselens/storage"
)

// VectorCacheRepository implements storage.VectorCache on BadgerDB.
type VectorCacheRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorCache = (*VectorCacheRepository)(nil)

// NewVectorCache creates a vector cache over the given backend.
//
// Returns storage.VectorCache interface to enforce abstraction.
func NewVectorCache(backend *Backend) (storage.VectorCache, error) {
	if backend == nil {
		return nil, storage.ErrBackendRequired
	}
	return &VectorCacheRepository{
		backend: backend,
		logger:  slog.Default().With("component", "vector-cache"),
	}, nil
}

// GetVector retrieves the cached vector for (model, text).
// Returns nil when nothing is cached.
func (r *VectorCacheRepository) GetVector(ctx context.Context, model, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var vector []float32
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(model, text))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			record, err := storage.UnmarshalVectorRecord(val)
			if err != nil {
				return err
			}
			// The key holds only a hash of the text; reject the rare
			// collision where a different text landed on the same key.
			if record.Text != text || record.Model != model {
				r.logger.Warn("vector cache key collision", "model", model)
				return nil
			}
			vector = record.Vector
			return nil
		})
	}, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	return vector, nil
}

// PutVector stores the vector for (model, text), replacing any previous value.
func (r *VectorCacheRepository) PutVector(ctx context.Context, model, text string, vector []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	record := &storage.VectorRecord{
		Model:  model,
		Text:   text,
		Vector: vector,
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(model, text), storage.MarshalVectorRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	return nil
}

// DeleteVectors removes every vector cached for model.
// Returns the number of records removed.
func (r *VectorCacheRepository) DeleteVectors(ctx context.Context, model string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	deleted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeModelPrefix(model)
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	return deleted, nil
}

// Len returns the number of cached vectors across all models.
func (r *VectorCacheRepository) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(vectorCachePrefix + ":")
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	return count, nil
}

// Close is a no-op: the backend owns the database handle and is closed by
// its creator.
func (r *VectorCacheRepository) Close() error {
	return nil
}
