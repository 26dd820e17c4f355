package badger

import (
	"encoding/binary"

	"github.com/poiesic/intertext/core"
)

// Key prefixes for different data types
const (
	textPrefix          = "text:"
	unitPrefix          = "unit:"
	featurePrefix       = "feat:"
	featureSeqPrefix    = "featseq:"
	searchPrefix        = "srch:"
	searchResultsPrefix = "srchres:"
	matchPrefix         = "mtch:"
	matchSeq            = "mtchseq"
	resultPrefix        = "mres:"
	resultSeq           = "mresseq"
)

// sep separates variable-length string components of a key.
const sep = 0x00

// makeTextKey generates a key for a text by ID.
func makeTextKey(id core.ID) []byte {
	return append([]byte(textPrefix), id[:]...)
}

// makePartialUnitKey generates the prefix shared by every unit of a text,
// optionally narrowed to one unit type.
// Format: prefix:textID[unitType\x00]
func makePartialUnitKey(textID core.ID, unitType string) []byte {
	buf := make([]byte, 0, len(unitPrefix)+len(textID)+len(unitType)+1)
	buf = append(buf, unitPrefix...)
	buf = append(buf, textID[:]...)
	if unitType != "" {
		buf = append(buf, unitType...)
		buf = append(buf, sep)
	}
	return buf
}

// makeUnitKey generates a composite key ordering units by position.
// Format: prefix:textID unitType\x00 index unitID
func makeUnitKey(unit *core.Unit) []byte {
	buf := makePartialUnitKey(unit.TextId, unit.UnitType)
	// Write in BigEndian order so lexicographic sort works correctly
	buf = binary.BigEndian.AppendUint64(buf, uint64(unit.Index))
	return append(buf, unit.Id[:]...)
}

// makeFeatureKey generates a key for the feature of one token.
// Format: prefix:language\x00featureType\x00token
func makeFeatureKey(language, featureType, token string) []byte {
	buf := make([]byte, 0, len(featurePrefix)+len(language)+len(featureType)+len(token)+2)
	buf = append(buf, featurePrefix...)
	buf = append(buf, language...)
	buf = append(buf, sep)
	buf = append(buf, featureType...)
	buf = append(buf, sep)
	return append(buf, token...)
}

// makeFeatureSeqName names the index sequence of a (language, feature type) space.
func makeFeatureSeqName(language, featureType string) string {
	return featureSeqPrefix + language + string(rune(sep)) + featureType
}

// makeSearchKey generates a key for a search by ID.
func makeSearchKey(id core.ID) []byte {
	return append([]byte(searchPrefix), id[:]...)
}

// makeSearchResultsKey generates the secondary key resolving a results id.
func makeSearchResultsKey(resultsID string) []byte {
	return append([]byte(searchResultsPrefix), resultsID...)
}

// makePartialMatchKey generates the prefix of every match of a search.
func makePartialMatchKey(searchID core.ID) []byte {
	return append([]byte(matchPrefix), searchID[:]...)
}

// makeMatchKey generates a key ordering matches by insertion.
// Format: prefix:searchID seq
func makeMatchKey(searchID core.ID, seq uint64) []byte {
	return binary.BigEndian.AppendUint64(makePartialMatchKey(searchID), seq)
}

// makePartialResultKey generates the prefix of every result of a job.
func makePartialResultKey(searchID core.ID) []byte {
	return append([]byte(resultPrefix), searchID[:]...)
}

// makeResultKey generates a key ordering results by insertion.
// Format: prefix:searchID seq
func makeResultKey(searchID core.ID, seq uint64) []byte {
	return binary.BigEndian.AppendUint64(makePartialResultKey(searchID), seq)
}
