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


package multitext

import "errors"

var (
	// ErrNoTargetTexts is returned when a search names no target texts.
	ErrNoTargetTexts = errors.New("no target texts")

	// ErrUnknownToken is returned when a matched token has no feature index
	// in the target language.
	ErrUnknownToken = errors.New("unknown token")

	// ErrResultCount is returned when the engine output does not line up
	// with the matches it was given.
	ErrResultCount = errors.New("result count does not match match count")

	// ErrJobPanicked wraps a panic recovered while running a job.
	ErrJobPanicked = errors.New("job panicked")

	// ErrJobNotDone is returned when results are requested before a job is DONE.
	ErrJobNotDone = errors.New("job is not done")

	// ErrRepositoryRequired is returned when a repository is not provided.
	ErrRepositoryRequired = errors.New("repository required")

	// ErrEngineRequired is returned when a search engine is not provided.
	ErrEngineRequired = errors.New("search engine required")

	// ErrQueueRequired is returned when a job queue is not provided.
	ErrQueueRequired = errors.New("job queue required")
)
