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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidUnit indicates a Unit failed validation.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrInvalidFeature indicates a Feature failed validation.
	ErrInvalidFeature = errors.New("invalid feature")

	// ErrInvalidMatch indicates a Match failed validation.
	ErrInvalidMatch = errors.New("invalid match")

	// ErrInvalidMultiResult indicates a MultiResult failed validation.
	ErrInvalidMultiResult = errors.New("invalid multitext result")

	// ErrUnknownUnitType indicates a unit type other than line or phrase.
	ErrUnknownUnitType = errors.New("unknown unit type")

	// ErrEmptyLanguage indicates the language field is empty.
	ErrEmptyLanguage = errors.New("language cannot be empty")

	// ErrEmptyToken indicates the token field is empty.
	ErrEmptyToken = errors.New("token cannot be empty")

	// ErrNegativeIndex indicates a negative FeatureIndex.
	ErrNegativeIndex = errors.New("feature index cannot be negative")

	// ErrInvalidTransition indicates an illegal job status change.
	ErrInvalidTransition = errors.New("invalid status transition")
)
