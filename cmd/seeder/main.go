package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/poiesic/intertext"
	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/storage"
)

var lines = []string{
	"Arma virumque cano, Troiae qui primus ab oris",
	"Italiam, fato profugus, Laviniaque venit",
	"litora, multum ille et terris iactatus et alto",
	"vi superum saevae memorem Iunonis ob iram;",
	"multa quoque et bello passus, dum conderet urbem,",
	"inferretque deos Latio, genus unde Latinum,",
	"Albanique patres, atque altae moenia Romae.",
	"Musa, mihi causas memora, quo numine laeso,",
	"quidve dolens, regina deum tot volvere casus",
	"insignem pietate virum, tot adire labores",
	"impulerit. Tantaene animis caelestibus irae?",
}

// lemmata is a toy lemmatizer for the built-in lines.
var lemmata = map[string]string{
	"virum":  "vir",
	"iram":   "ira",
	"irae":   "ira",
	"multum": "multus",
	"multa":  "multus",
	"terris": "terra",
	"litora": "litus",
	"oris":   "ora",
	"deos":   "deus",
	"deum":   "deus",
	"patres": "pater",
	"altae":  "altus",
	"memora": "memoro",
	"casus":  "casus",
	"animis": "animus",
}

// matches stands in for the output of a primary lemma search.
var matches = [][]string{
	{"arma", "cano"},
	{"vir", "ira"},
	{"multus", "terra"},
}

var (
	seedFileName = flag.String("src", "", "file of seed lines")
	dbPath       = flag.String("db", "./intertext_db", "path to the corpus database")
	indexPath    = flag.String("index", "./intertext_bigrams", "base directory of the bigram stores")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

func lemmatize(form string) string {
	if lemma, ok := lemmata[form]; ok {
		return lemma
	}
	if strings.HasSuffix(form, "que") && len(form) > 5 {
		return lemmatize(strings.TrimSuffix(form, "que"))
	}
	return form
}

type featurizer struct {
	features storage.FeatureRepository
	language string
}

func (f featurizer) token(ctx context.Context, word string) (core.Token, error) {
	form, err := f.features.GetOrCreateFeature(ctx, f.language, core.FeatureForm, word)
	if err != nil {
		return core.Token{}, err
	}
	lemma, err := f.features.GetOrCreateFeature(ctx, f.language, core.FeatureLemmata, lemmatize(word))
	if err != nil {
		return core.Token{}, err
	}
	return core.Token{Features: map[string][]core.FeatureIndex{
		core.FeatureForm:    {form.Index},
		core.FeatureLemmata: {lemma.Index},
	}}, nil
}

// featurize builds one line unit per source line and one phrase unit per
// run of words ending in strong punctuation.
func featurize(ctx context.Context, f featurizer, textID core.ID, source iter.Seq[string]) ([]*core.Unit, error) {
	var units []*core.Unit
	var phrase []core.Token
	phrases := 0
	endPhrase := func() {
		if len(phrase) == 0 {
			return
		}
		units = append(units, &core.Unit{TextId: textID, Index: phrases, UnitType: core.UnitPhrase, Tokens: phrase})
		phrases++
		phrase = nil
	}

	lineIndex := 0
	for line := range source {
		var tokens []core.Token
		for _, raw := range strings.Fields(line) {
			word := strings.ToLower(strings.TrimFunc(raw, func(r rune) bool { return !unicode.IsLetter(r) }))
			if word != "" {
				tok, err := f.token(ctx, word)
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, tok)
				phrase = append(phrase, tok)
			}
			if strings.ContainsAny(raw, ".;?!:") {
				endPhrase()
			}
		}
		if len(tokens) == 0 {
			continue
		}
		units = append(units, &core.Unit{TextId: textID, Index: lineIndex, UnitType: core.UnitLine, Tokens: tokens})
		lineIndex++
	}
	endPhrase()
	return units, nil
}

func main() {
	db, err := intertext.NewDatabase(*dbPath, intertext.WithIndexDir(*indexPath))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(lines)
	}

	texts, err := db.TextRepository().AddTexts(ctx, &core.Text{
		Language: "latin",
		Author:   "vergil",
		Title:    "aeneid",
		Path:     *seedFileName,
	})
	if err != nil {
		panic(err)
	}
	text := texts[0]

	units, err := featurize(ctx, featurizer{features: db.FeatureRepository(), language: text.Language}, text.Id, source)
	if err != nil {
		panic(err)
	}
	if _, err := db.UnitRepository().AddUnits(ctx, units...); err != nil {
		panic(err)
	}

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()
	if err := pipeline.Register(ctx, text.Id); err != nil {
		panic(err)
	}

	search, err := db.SearchRepository().AddSearch(ctx, &core.Search{
		ResultsId:  "seed-primary",
		SearchType: "vanilla",
		Status:     core.StatusDone,
		Parameters: core.SearchParameters{Feature: core.FeatureLemmata},
	})
	if err != nil {
		panic(err)
	}
	for i, tokens := range matches {
		if _, err := db.MatchRepository().AddMatches(ctx, &core.Match{SearchId: search.Id, Index: i, MatchedFeatures: tokens}); err != nil {
			panic(err)
		}
	}

	slog.Info("corpus seeded",
		"text", text.Id.Hex(),
		"units", len(units),
		"search", search.Id.Hex(),
		"matches", len(matches),
	)
}
