package storage

import (
	"context"

	"github.com/poiesic/intertext/core"
)

// TextRepository provides operations for managing texts.
type TextRepository interface {
	// AddTexts adds texts to storage. Texts with a zero Id get a new one.
	AddTexts(ctx context.Context, texts ...*core.Text) ([]*core.Text, error)

	// GetText retrieves a single text by ID.
	// Returns ErrNotFound if the text doesn't exist.
	GetText(ctx context.Context, id core.ID) (*core.Text, error)

	// GetTexts retrieves texts by their IDs, preserving the requested order.
	// Returns ErrNotFound if any text doesn't exist.
	GetTexts(ctx context.Context, ids ...core.ID) ([]*core.Text, error)

	// ListTexts returns every stored text ordered by ID.
	ListTexts(ctx context.Context) ([]*core.Text, error)

	// DeleteText removes a text. Its units are removed as well.
	DeleteText(ctx context.Context, id core.ID) error
}

// UnitRepository provides operations for managing featurized units.
type UnitRepository interface {
	// AddUnits adds units in bulk. Units with a zero Id get a new one.
	AddUnits(ctx context.Context, units ...*core.Unit) ([]*core.Unit, error)

	// ForEachUnit streams the units of one text and granularity in
	// position order. The underlying iterator stays valid for the whole scan.
	// Iteration stops at the first error returned by fn.
	ForEachUnit(ctx context.Context, textID core.ID, unitType string, fn func(*core.Unit) error) error

	// CountFeatures returns the occurrence count of every value of a feature
	// type within a text.
	CountFeatures(ctx context.Context, textID core.ID, featureType string) (map[core.FeatureIndex]int, error)
}

// FeatureRepository maps token values to feature indices.
type FeatureRepository interface {
	// GetOrCreateFeature finds the feature for a token or assigns it the
	// next free index in its (language, feature type) space.
	GetOrCreateFeature(ctx context.Context, language, featureType, token string) (*core.Feature, error)

	// FindFeatures resolves tokens to indices. Unknown tokens are absent
	// from the returned map.
	FindFeatures(ctx context.Context, language, featureType string, tokens ...string) (map[string]core.FeatureIndex, error)
}

// SearchRepository stores search and job status records.
type SearchRepository interface {
	// AddSearch inserts a new search. A zero Id is replaced by a new one.
	AddSearch(ctx context.Context, search *core.Search) (*core.Search, error)

	// UpdateSearch replaces a stored search. Status changes must follow
	// core.ValidateTransition; otherwise ErrInvalidTransition is returned.
	// Returns ErrNotFound if the search doesn't exist.
	UpdateSearch(ctx context.Context, search *core.Search) (*core.Search, error)

	// GetSearch retrieves a search by ID.
	// Returns ErrNotFound if the search doesn't exist.
	GetSearch(ctx context.Context, id core.ID) (*core.Search, error)

	// FindByResultsID retrieves a search by its external correlation id.
	// Returns ErrNotFound if no search carries that id.
	FindByResultsID(ctx context.Context, resultsID string) (*core.Search, error)
}

// MatchRepository stores the matches of primary searches.
type MatchRepository interface {
	// AddMatches appends matches to their searches, keeping insertion order.
	AddMatches(ctx context.Context, matches ...*core.Match) ([]*core.Match, error)

	// GetMatches returns the matches of a search in insertion order.
	GetMatches(ctx context.Context, searchID core.ID) ([]*core.Match, error)
}

// ResultRepository stores multitext results.
type ResultRepository interface {
	// AddMultiResults persists results in one batch.
	AddMultiResults(ctx context.Context, results ...*core.MultiResult) error

	// GetMultiResults returns the results of a multitext job in insertion order.
	GetMultiResults(ctx context.Context, searchID core.ID) ([]*core.MultiResult, error)
}
