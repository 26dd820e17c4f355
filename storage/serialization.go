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


package storage

import (
	"fmt"

	"github.com/poiesic/intertext/core"
)

// serializer is the subset of the mus serializer contract used here.
type serializer[T any] interface {
	Marshal(v T, bs []byte) (n int)
	Unmarshal(bs []byte) (v T, n int, err error)
	Size(v T) (size int)
}

func marshal[T any](s serializer[T], v T) []byte {
	buf := make([]byte, s.Size(v))
	s.Marshal(v, buf)
	return buf
}

func unmarshal[T any](s serializer[T], data []byte) (*T, error) {
	v, _, err := s.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &v, nil
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	return marshal[core.ID](core.ObjectIDMUS, id)
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, err := unmarshal[core.ID](core.ObjectIDMUS, data)
	if err != nil {
		return core.ID{}, err
	}
	return *id, nil
}

// MarshalText serializes a Text to bytes.
func MarshalText(text *core.Text) []byte {
	return marshal[core.Text](core.TextMUS, *text)
}

// UnmarshalText deserializes a Text from bytes.
func UnmarshalText(data []byte) (*core.Text, error) {
	return unmarshal[core.Text](core.TextMUS, data)
}

// MarshalUnit serializes a Unit to bytes.
func MarshalUnit(unit *core.Unit) []byte {
	return marshal[core.Unit](core.UnitMUS, *unit)
}

// UnmarshalUnit deserializes a Unit from bytes.
func UnmarshalUnit(data []byte) (*core.Unit, error) {
	return unmarshal[core.Unit](core.UnitMUS, data)
}

// MarshalFeature serializes a Feature to bytes.
func MarshalFeature(feature *core.Feature) []byte {
	return marshal[core.Feature](core.FeatureMUS, *feature)
}

// UnmarshalFeature deserializes a Feature from bytes.
func UnmarshalFeature(data []byte) (*core.Feature, error) {
	return unmarshal[core.Feature](core.FeatureMUS, data)
}

// MarshalMatch serializes a Match to bytes.
func MarshalMatch(match *core.Match) []byte {
	return marshal[core.Match](core.MatchMUS, *match)
}

// UnmarshalMatch deserializes a Match from bytes.
func UnmarshalMatch(data []byte) (*core.Match, error) {
	return unmarshal[core.Match](core.MatchMUS, data)
}

// MarshalSearch serializes a Search to bytes.
func MarshalSearch(search *core.Search) []byte {
	return marshal[core.Search](core.SearchMUS, *search)
}

// UnmarshalSearch deserializes a Search from bytes.
func UnmarshalSearch(data []byte) (*core.Search, error) {
	return unmarshal[core.Search](core.SearchMUS, data)
}

// MarshalMultiResult serializes a MultiResult to bytes.
func MarshalMultiResult(result *core.MultiResult) []byte {
	return marshal[core.MultiResult](core.MultiResultMUS, *result)
}

// UnmarshalMultiResult deserializes a MultiResult from bytes.
func UnmarshalMultiResult(data []byte) (*core.MultiResult, error) {
	return unmarshal[core.MultiResult](core.MultiResultMUS, data)
}

// MarshalBigramRecord serializes a BigramRecord to bytes.
func MarshalBigramRecord(record *core.BigramRecord) []byte {
	return marshal[core.BigramRecord](core.BigramRecordMUS, *record)
}

// UnmarshalBigramRecord deserializes a BigramRecord from bytes.
func UnmarshalBigramRecord(data []byte) (*core.BigramRecord, error) {
	return unmarshal[core.BigramRecord](core.BigramRecordMUS, data)
}

// MarshalEvidence serializes an Evidence pair to bytes.
func MarshalEvidence(evidence *core.Evidence) []byte {
	return marshal[core.Evidence](core.EvidenceMUS, *evidence)
}

// UnmarshalEvidence deserializes an Evidence pair from bytes.
func UnmarshalEvidence(data []byte) (*core.Evidence, error) {
	return unmarshal[core.Evidence](core.EvidenceMUS, data)
}
