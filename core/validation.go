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

import (
	"fmt"
	"slices"
)

// ValidateUnit validates a Unit according to domain rules.
//
// Validation rules:
//   - UnitType must be line or phrase
//   - Index must not be negative
//   - every feature value must be a non-negative index
//
// NOT validated here (checked while building bigrams):
//   - presence of a form value at every position
func ValidateUnit(unit *Unit) error {
	if unit == nil {
		return fmt.Errorf("%w: unit is nil", ErrInvalidUnit)
	}

	if err := ValidateUnitType(unit.UnitType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUnit, err)
	}

	if unit.Index < 0 {
		return fmt.Errorf("%w: negative position %d", ErrInvalidUnit, unit.Index)
	}

	for pos, token := range unit.Tokens {
		for featureType, values := range token.Features {
			for _, v := range values {
				if v < 0 {
					return fmt.Errorf("%w: token %d %s: %w", ErrInvalidUnit, pos, featureType, ErrNegativeIndex)
				}
			}
		}
	}

	return nil
}

// ValidateFeature validates a Feature according to domain rules.
func ValidateFeature(feature *Feature) error {
	if feature == nil {
		return fmt.Errorf("%w: feature is nil", ErrInvalidFeature)
	}

	if feature.Language == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeature, ErrEmptyLanguage)
	}

	if feature.Token == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeature, ErrEmptyToken)
	}

	if feature.FeatureType == "" {
		return fmt.Errorf("%w: feature type cannot be empty", ErrInvalidFeature)
	}

	if feature.Index < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFeature, ErrNegativeIndex)
	}

	return nil
}

// ValidateMatch validates a Match according to domain rules.
func ValidateMatch(match *Match) error {
	if match == nil {
		return fmt.Errorf("%w: match is nil", ErrInvalidMatch)
	}

	if match.SearchId.IsZero() {
		return fmt.Errorf("%w: missing search id", ErrInvalidMatch)
	}

	if slices.Contains(match.MatchedFeatures, "") {
		return fmt.Errorf("%w: %w", ErrInvalidMatch, ErrEmptyToken)
	}

	return nil
}

// ValidateMultiResult checks that the parallel sequences line up.
func ValidateMultiResult(result *MultiResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidMultiResult)
	}

	if len(result.Units) != len(result.Scores) {
		return fmt.Errorf("%w: %d units but %d scores", ErrInvalidMultiResult, len(result.Units), len(result.Scores))
	}

	return nil
}

// ValidateUnitType validates that a unit type is line or phrase.
func ValidateUnitType(unitType string) error {
	if !slices.Contains(UnitTypes, unitType) {
		return fmt.Errorf("%w: %q", ErrUnknownUnitType, unitType)
	}
	return nil
}
