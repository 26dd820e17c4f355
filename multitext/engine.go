package multitext

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/intertext/core"
)

// FeatureResolver maps tokens to feature indices within a language.
type FeatureResolver interface {
	FindFeatures(ctx context.Context, language, featureType string, tokens ...string) (map[string]core.FeatureIndex, error)
}

// Index looks bigram keys up in the store of one text.
type Index interface {
	Lookup(ctx context.Context, textID core.ID, unitType, feature string, keys []core.BigramKey) (map[core.BigramKey][]core.Evidence, error)
}

// Searcher runs a multitext search.
type Searcher interface {
	Search(ctx context.Context, matches []*core.Match, featureType, unitType string, texts []*core.Text) ([]MatchResult, error)
}

// MatchResult maps every candidate bigram of one match to its evidence.
type MatchResult map[core.TokenBigram][]core.Evidence

// Engine searches target texts for bigrams formed from matched tokens.
type Engine struct {
	features FeatureResolver
	index    Index
	logger   *slog.Logger
}

var _ Searcher = (*Engine)(nil)

// NewEngine creates an Engine.
func NewEngine(features FeatureResolver, index Index, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		features: features,
		index:    index,
		logger:   logger.With("component", "multitext-engine"),
	}
}

type candidate struct {
	bigram core.TokenBigram
	key    core.BigramKey
}

// Search returns one MatchResult per match, in match order.
//
// Candidates of a match are all pairs of its distinct matched tokens. Tokens
// resolve in the language of the first target text. Each distinct key is
// looked up once per text; evidence from several texts is concatenated in
// text order.
func (e *Engine) Search(ctx context.Context, matches []*core.Match, featureType, unitType string, texts []*core.Text) ([]MatchResult, error) {
	if len(texts) == 0 {
		return nil, ErrNoTargetTexts
	}
	language := texts[0].Language

	indices, err := e.resolve(ctx, language, featureType, matches)
	if err != nil {
		return nil, err
	}

	perMatch := make([][]candidate, len(matches))
	var keys []core.BigramKey
	seen := make(map[core.BigramKey]bool)
	for i, match := range matches {
		perMatch[i] = candidates(match.MatchedFeatures, indices)
		for _, c := range perMatch[i] {
			if !seen[c.key] {
				seen[c.key] = true
				keys = append(keys, c.key)
			}
		}
	}

	evidence := make(map[core.BigramKey][]core.Evidence, len(keys))
	if len(keys) > 0 {
		for _, text := range texts {
			found, err := e.index.Lookup(ctx, text.Id, unitType, featureType, keys)
			if err != nil {
				return nil, fmt.Errorf("looking up text %s: %w", text.Id.Hex(), err)
			}
			for _, key := range keys {
				evidence[key] = append(evidence[key], found[key]...)
			}
		}
	}

	results := make([]MatchResult, len(matches))
	for i, cs := range perMatch {
		result := make(MatchResult, len(cs))
		for _, c := range cs {
			result[c.bigram] = append([]core.Evidence{}, evidence[c.key]...)
		}
		results[i] = result
	}

	e.logger.Debug("multitext search finished",
		"matches", len(matches),
		"keys", len(keys),
		"texts", len(texts),
	)
	return results, nil
}

// resolve maps every matched token to its index, failing on the first
// unknown ones.
func (e *Engine) resolve(ctx context.Context, language, featureType string, matches []*core.Match) (map[string]core.FeatureIndex, error) {
	var tokens []string
	seen := make(map[string]bool)
	for _, match := range matches {
		for _, token := range match.MatchedFeatures {
			if !seen[token] {
				seen[token] = true
				tokens = append(tokens, token)
			}
		}
	}
	if len(tokens) == 0 {
		return map[string]core.FeatureIndex{}, nil
	}

	indices, err := e.features.FindFeatures(ctx, language, featureType, tokens...)
	if err != nil {
		return nil, fmt.Errorf("resolving %d tokens: %w", len(tokens), err)
	}
	var missing []string
	for _, token := range tokens {
		if _, ok := indices[token]; !ok {
			missing = append(missing, token)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s (%s, %s)", ErrUnknownToken, strings.Join(missing, ", "), language, featureType)
	}
	return indices, nil
}

// candidates pairs every two distinct tokens of a match, tokens sorted.
func candidates(tokens []string, indices map[string]core.FeatureIndex) []candidate {
	distinct := slices.Clone(tokens)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	var out []candidate
	for i := 0; i < len(distinct); i++ {
		for j := i + 1; j < len(distinct); j++ {
			out = append(out, candidate{
				bigram: core.TokenBigram{distinct[i], distinct[j]},
				key:    core.NewBigramKey(indices[distinct[i]], indices[distinct[j]]),
			})
		}
	}
	return out
}
