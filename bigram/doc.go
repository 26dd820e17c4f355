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


// Package bigram builds and queries the per-text bigram index.
//
// Every (text, unit type, feature type) triple owns one store, a BadgerDB
// directory whose path is derived from the triple by Directory.Path. A store
// is written in two phases: any number of Append calls, then Finalize, which
// builds the (word1, word2) lookup structure over everything appended so far.
// Lookup works in both phases; before Finalize it falls back to a full scan.
//
// Builder turns featurized units into scored records. The score of a bigram
// is ln((inv(form_i) + inv(form_j)) / (j - i)) where inv is the inverse
// frequency of the form value at a position within the text.
//
// No locking is provided between writers of the same store; one pipeline
// owns a text's stores at a time.
package bigram
