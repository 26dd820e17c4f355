package bigram

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/intertext/core"
)

const (
	recordPrefix = 'r'
	indexPrefix  = 'x'
	autoIDSeq    = "seq:autoid"
)

var indexedMarker = []byte("m:indexed")

// makeRecordKey: r + autoId
func makeRecordKey(autoID uint64) []byte {
	key := make([]byte, 1+8)
	key[0] = recordPrefix
	binary.BigEndian.PutUint64(key[1:], autoID)
	return key
}

// makePartialIndexKey: x + word1 + word2
func makePartialIndexKey(key core.BigramKey) []byte {
	out := make([]byte, 1+8+8, 1+8+8+8)
	out[0] = indexPrefix
	binary.BigEndian.PutUint64(out[1:], uint64(key.Word1))
	binary.BigEndian.PutUint64(out[9:], uint64(key.Word2))
	return out
}

// makeIndexKey: x + word1 + word2 + autoId
func makeIndexKey(key core.BigramKey, autoID uint64) []byte {
	return binary.BigEndian.AppendUint64(makePartialIndexKey(key), autoID)
}

func parseRecordKey(key []byte) (uint64, error) {
	if len(key) != 9 || key[0] != recordPrefix {
		return 0, fmt.Errorf("%w: %x", ErrMalformedKey, key)
	}
	return binary.BigEndian.Uint64(key[1:]), nil
}
