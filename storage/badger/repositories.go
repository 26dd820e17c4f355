package badger

import "errors"

// Repositories bundles every repository sharing one backend.
type Repositories struct {
	Texts    *TextRepository
	Units    *UnitRepository
	Features *FeatureRepository
	Searches *SearchRepository
	Matches  *MatchRepository
	Results  *ResultRepository
}

// NewRepositories creates all repositories over backend.
// The caller keeps ownership of backend.
func NewRepositories(backend *Backend) (*Repositories, error) {
	matches, err := NewMatchRepository(backend)
	if err != nil {
		return nil, err
	}
	results, err := NewResultRepository(backend)
	if err != nil {
		matches.Close()
		return nil, err
	}
	return &Repositories{
		Texts:    NewTextRepository(backend),
		Units:    NewUnitRepository(backend),
		Features: NewFeatureRepository(backend),
		Searches: NewSearchRepository(backend),
		Matches:  matches,
		Results:  results,
	}, nil
}

// Close releases the sequences held by the repositories.
func (r *Repositories) Close() error {
	return errors.Join(
		r.Features.Close(),
		r.Matches.Close(),
		r.Results.Close(),
	)
}
