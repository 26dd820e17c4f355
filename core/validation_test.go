package core

import (
	"errors"
	"testing"
)

func TestValidateUnit(t *testing.T) {
	tests := []struct {
		name    string
		unit    *Unit
		wantErr error
	}{
		{
			name: "valid line",
			unit: &Unit{
				Id:       NewID(),
				UnitType: UnitLine,
				Tokens: []Token{
					{Features: map[string][]FeatureIndex{FeatureForm: {1}, FeatureLemmata: {4, 5}}},
				},
			},
			wantErr: nil,
		},
		{
			name:    "nil unit",
			unit:    nil,
			wantErr: ErrInvalidUnit,
		},
		{
			name:    "unknown unit type",
			unit:    &Unit{UnitType: "paragraph"},
			wantErr: ErrUnknownUnitType,
		},
		{
			name:    "negative position",
			unit:    &Unit{UnitType: UnitPhrase, Index: -1},
			wantErr: ErrInvalidUnit,
		},
		{
			name: "negative feature index",
			unit: &Unit{
				UnitType: UnitPhrase,
				Tokens:   []Token{{Features: map[string][]FeatureIndex{FeatureForm: {-3}}}},
			},
			wantErr: ErrNegativeIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUnit(tt.unit)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateUnit() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateUnit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFeature(t *testing.T) {
	tests := []struct {
		name    string
		feature *Feature
		wantErr error
	}{
		{
			name:    "valid feature",
			feature: &Feature{Language: "latin", FeatureType: FeatureForm, Token: "arma", Index: 0},
		},
		{
			name:    "missing language",
			feature: &Feature{FeatureType: FeatureForm, Token: "arma"},
			wantErr: ErrEmptyLanguage,
		},
		{
			name:    "missing token",
			feature: &Feature{Language: "latin", FeatureType: FeatureForm},
			wantErr: ErrEmptyToken,
		},
		{
			name:    "missing type",
			feature: &Feature{Language: "latin", Token: "arma"},
			wantErr: ErrInvalidFeature,
		},
		{
			name:    "negative index",
			feature: &Feature{Language: "latin", FeatureType: FeatureForm, Token: "arma", Index: -1},
			wantErr: ErrNegativeIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFeature(tt.feature)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFeature() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFeature() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMatch(t *testing.T) {
	if err := ValidateMatch(&Match{SearchId: NewID(), MatchedFeatures: []string{"arma", "virum"}}); err != nil {
		t.Errorf("ValidateMatch() unexpected error = %v", err)
	}
	if err := ValidateMatch(&Match{MatchedFeatures: []string{"arma"}}); !errors.Is(err, ErrInvalidMatch) {
		t.Errorf("ValidateMatch() error = %v, want %v", err, ErrInvalidMatch)
	}
	if err := ValidateMatch(&Match{SearchId: NewID(), MatchedFeatures: []string{""}}); !errors.Is(err, ErrEmptyToken) {
		t.Errorf("ValidateMatch() error = %v, want %v", err, ErrEmptyToken)
	}
}

func TestValidateMultiResult(t *testing.T) {
	ok := &MultiResult{Units: []ID{NewID()}, Scores: []float64{0.1}}
	if err := ValidateMultiResult(ok); err != nil {
		t.Errorf("ValidateMultiResult() unexpected error = %v", err)
	}
	bad := &MultiResult{Units: []ID{NewID()}}
	if err := ValidateMultiResult(bad); !errors.Is(err, ErrInvalidMultiResult) {
		t.Errorf("ValidateMultiResult() error = %v, want %v", err, ErrInvalidMultiResult)
	}
}
