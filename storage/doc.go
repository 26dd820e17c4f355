// Copyright 2025 Poiesic Systems
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


// Package storage provides the storage abstraction layer for intertext.
//
// This package defines repository interfaces that decouple the corpus data
// (texts, featurized units, features, searches, matches and multitext
// results) from the components that consume it. The bigram index itself
// lives in package bigram; this layer holds everything around it.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - TextRepository: texts and their metadata
//   - UnitRepository: featurized units, streamed per text and granularity
//   - FeatureRepository: token to FeatureIndex assignment and lookup
//   - SearchRepository: primary searches and multitext job status records
//   - MatchRepository: matches of primary searches
//   - ResultRepository: multitext results
//
// # Usage
//
// Open a BadgerDB backend and build repositories on top of it:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	texts := badger.NewTextRepository(backend)
//
// Use in tests with in-memory storage:
//
//	repos, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
