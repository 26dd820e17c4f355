package bigram

import (
	"fmt"
	"math"

	"github.com/poiesic/intertext/core"
)

// InverseFrequencies maps a form index to its inverse frequency in a text.
// Indices the text never uses map to 0.
type InverseFrequencies interface {
	At(index core.FeatureIndex) float64
}

// Score is the tesserae score of two positions distance apart whose forms
// have inverse frequencies invA and invB.
func Score(invA, invB float64, distance int) float64 {
	return math.Log((invA + invB) / float64(distance))
}

// positionedValues splits a unit into per-position value lists for the form
// feature and for every other requested feature. A position without a form
// value fails with ErrMissingForm; a position without another feature keeps
// an empty list so positions stay aligned.
func positionedValues(unit *core.Unit, features []string) (forms [][]core.FeatureIndex, values map[string][][]core.FeatureIndex, err error) {
	forms = make([][]core.FeatureIndex, len(unit.Tokens))
	values = make(map[string][][]core.FeatureIndex, len(features))
	for _, feature := range features {
		values[feature] = make([][]core.FeatureIndex, len(unit.Tokens))
	}
	for pos, token := range unit.Tokens {
		form := token.Features[core.FeatureForm]
		if len(form) == 0 {
			return nil, nil, fmt.Errorf("%w: unit %s position %d", ErrMissingForm, unit.Id.Hex(), pos)
		}
		forms[pos] = form
		for _, feature := range features {
			values[feature][pos] = token.Features[feature]
		}
	}
	return forms, values, nil
}

// scoreUnit produces one record per distinct key of a unit.
//
// Pairs are visited by increasing i, then increasing j. When several pairs
// give the same key, the score of the pair visited last wins; records keep
// the order in which their key first appeared. Scores always weight by the
// first form value at each position.
func scoreUnit(unitID core.ID, forms, values [][]core.FeatureIndex, inv InverseFrequencies) []core.BigramRecord {
	var order []core.BigramKey
	scores := make(map[core.BigramKey]float64)
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			score := Score(inv.At(forms[i][0]), inv.At(forms[j][0]), j-i)
			for _, a := range values[i] {
				for _, b := range values[j] {
					key := core.NewBigramKey(a, b)
					if _, seen := scores[key]; !seen {
						order = append(order, key)
					}
					scores[key] = score
				}
			}
		}
	}

	records := make([]core.BigramRecord, len(order))
	for n, key := range order {
		records[n] = core.BigramRecord{Key: key, UnitId: unitID, Score: scores[key]}
	}
	return records
}
