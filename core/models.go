package core

//go:generate go run ../cmd/musgen

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID identifies texts, units, searches, matches and results.
// Units are addressed by the same 12-byte value inside the bigram index.
type ID = primitive.ObjectID

// NewID returns a fresh identifier.
func NewID() ID {
	return primitive.NewObjectID()
}

// ParseID parses the hex form of an identifier.
func ParseID(s string) (ID, error) {
	return primitive.ObjectIDFromHex(s)
}

// FeatureIndex is the dense integer assigned to one feature value
// (e.g. one lemma) within a (language, feature type) space.
type FeatureIndex int64

// Feature types accepted by the bigram index.
const (
	FeatureForm    = "form"
	FeatureLemmata = "lemmata"
)

// AcceptedFeatures lists the feature types for which bigram stores are built.
var AcceptedFeatures = []string{FeatureForm, FeatureLemmata}

// Unit granularities.
const (
	UnitLine   = "line"
	UnitPhrase = "phrase"
)

// UnitTypes lists every unit granularity that gets indexed.
var UnitTypes = []string{UnitLine, UnitPhrase}

// Text is a document in a corpus.
type Text struct {
	Id       ID
	Language string
	Author   string
	Title    string
	Path     string
}

// Token carries, per feature type, every value the token maps to.
// A token may have several values of one type (e.g. candidate lemmata).
type Token struct {
	Features map[string][]FeatureIndex
}

// Unit is an ordered, already featurized line or phrase of a text.
type Unit struct {
	Id       ID
	TextId   ID
	Index    int
	UnitType string
	Tokens   []Token
}

// Feature binds a token value to its FeatureIndex.
type Feature struct {
	Language    string
	FeatureType string
	Token       string
	Index       FeatureIndex
}

// BigramKey is an unordered pair of feature indices in canonical order.
type BigramKey struct {
	Word1 FeatureIndex
	Word2 FeatureIndex
}

// NewBigramKey returns the canonical key for a and b.
func NewBigramKey(a, b FeatureIndex) BigramKey {
	if a > b {
		a, b = b, a
	}
	return BigramKey{Word1: a, Word2: b}
}

// BigramRecord is one scored occurrence of a bigram inside a unit.
type BigramRecord struct {
	Key    BigramKey
	UnitId ID
	Score  float64
}

// Evidence is a unit containing a bigram together with its score.
type Evidence struct {
	UnitId ID
	Score  float64
}

// TokenBigram is a bigram expressed in token form, lexically ordered.
type TokenBigram [2]string

// NewTokenBigram returns the ordered token pair for a and b.
func NewTokenBigram(a, b string) TokenBigram {
	if a > b {
		a, b = b, a
	}
	return TokenBigram{a, b}
}

// Match is one result of a primary search.
type Match struct {
	Id              ID
	SearchId        ID
	Index           int
	MatchedFeatures []string
}

// SearchParameters holds the parameters of a search.
// Primary searches set Feature; multitext jobs set all three.
type SearchParameters struct {
	SearchId string
	TextIds  []string
	Feature  string
}

// Search is the persisted status record of a search or multitext job.
type Search struct {
	Id         ID
	ResultsId  string
	SearchType string
	Status     Status
	Message    string
	Parameters SearchParameters
}

// MultiResult is the persisted evidence for one bigram of one match.
// Units and Scores are parallel and always the same length.
type MultiResult struct {
	Id       ID
	SearchId ID
	MatchId  ID
	Bigram   TokenBigram
	Units    []ID
	Scores   []float64
}

// NewMultiResult splits evidence into the persisted parallel form.
func NewMultiResult(searchID, matchID ID, bigram TokenBigram, evidence []Evidence) *MultiResult {
	r := &MultiResult{
		Id:       NewID(),
		SearchId: searchID,
		MatchId:  matchID,
		Bigram:   bigram,
		Units:    make([]ID, len(evidence)),
		Scores:   make([]float64, len(evidence)),
	}
	for i, e := range evidence {
		r.Units[i] = e.UnitId
		r.Scores[i] = e.Score
	}
	return r
}

// Evidence joins the parallel Units and Scores back into pairs.
func (r *MultiResult) Evidence() []Evidence {
	n := min(len(r.Units), len(r.Scores))
	out := make([]Evidence, n)
	for i := 0; i < n; i++ {
		out[i] = Evidence{UnitId: r.Units[i], Score: r.Scores[i]}
	}
	return out
}
