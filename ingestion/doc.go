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


// Package ingestion registers texts in the bigram index.
//
// The Pipeline type manages the registration workflow for a text:
//   - Computing inverse form frequencies over the text's lines
//   - Building the line and phrase bigram stores for every feature type
//   - Removing a text's stores on unregistration
//
// RegisterAsync runs registrations on a worker pool. Errors during async
// registration are logged and do not affect other texts.
package ingestion
