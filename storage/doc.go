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


// Package storage provides the persistence abstraction for caselens.
//
// The only persisted artifact is the embedding-vector cache: vectors are
// expensive to produce, so the cache lets a warmed taxonomy survive process
// restarts. The VectorCache interface decouples the resolver from the
// concrete backend; storage/badger provides the BadgerDB implementation.
//
// # Constructor Return Type Pattern
//
// Public constructors return the VectorCache interface to prevent coupling
// to BadgerDB specifics and to keep alternative backends (in-memory,
// PostgreSQL) swappable. Internal constructors may return concrete types.
//
// # Serialization
//
// Records are serialized in the MUS binary format (mus-go). The serializers
// are written by hand against the mus-go primitive serializers; the record
// is a single small struct.
//
// # Thread Safety
//
// All cache implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All cache methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific
// timeout requirements.
package storage
