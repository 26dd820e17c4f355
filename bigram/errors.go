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


package bigram

import "errors"

var (
	// ErrMissingForm is returned when a token carries no form value.
	// Every position must have one because scores weight by form frequency.
	ErrMissingForm = errors.New("token has no form value")

	// ErrStoreClosed is returned when using a store after Close.
	ErrStoreClosed = errors.New("bigram store is closed")

	// ErrStoreReadOnly is returned when writing through a lookup handle.
	ErrStoreReadOnly = errors.New("bigram store is open read-only")

	// ErrBuilderClosed is returned when recording into a closed builder.
	ErrBuilderClosed = errors.New("bigram builder is closed")

	// ErrMalformedKey is returned when a stored key has the wrong shape.
	ErrMalformedKey = errors.New("malformed bigram store key")
)
