package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/multitext"
	"github.com/poiesic/intertext/storage"
)

type fakeJobs struct {
	searches map[string]*core.Search
	results  map[string][]*core.MultiResult
}

func (f *fakeJobs) Status(_ context.Context, resultsID string) (*core.Search, error) {
	search, ok := f.searches[resultsID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, resultsID)
	}
	return search, nil
}

func (f *fakeJobs) Results(ctx context.Context, resultsID string) ([]*core.MultiResult, error) {
	search, err := f.Status(ctx, resultsID)
	if err != nil {
		return nil, err
	}
	if search.Status != core.StatusDone {
		return nil, fmt.Errorf("%w: %s is %s", multitext.ErrJobNotDone, resultsID, search.Status)
	}
	if search.Message == "boom" {
		return nil, fmt.Errorf("disk on fire")
	}
	return f.results[resultsID], nil
}

func newServer(t *testing.T) (*fakeJobs, *Client) {
	done := &core.Search{Id: core.NewID(), ResultsId: "done", Status: core.StatusDone, Message: "Done in 0.1 seconds"}
	jobs := &fakeJobs{
		searches: map[string]*core.Search{
			"done":    done,
			"running": {Id: core.NewID(), ResultsId: "running", Status: core.StatusRun},
			"broken":  {Id: core.NewID(), ResultsId: "broken", Status: core.StatusDone, Message: "boom"},
		},
		results: map[string][]*core.MultiResult{
			"done": {{
				Id:       core.NewID(),
				SearchId: done.Id,
				MatchId:  core.NewID(),
				Bigram:   core.NewTokenBigram("arma", "cano"),
				Units:    []core.ID{core.NewID()},
				Scores:   []float64{1.5},
			}},
		},
	}

	mux := http.NewServeMux()
	NewHandler(jobs, nil).Mount(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return jobs, NewClient(server.URL + "/")
}

func TestClient_Status(t *testing.T) {
	jobs, client := newServer(t)

	search, err := client.Status(context.Background(), "done")
	require.NoError(t, err)
	assert.Equal(t, jobs.searches["done"].Id, search.Id)
	assert.Equal(t, core.StatusDone, search.Status)
	assert.Equal(t, "Done in 0.1 seconds", search.Message)
}

func TestClient_Results(t *testing.T) {
	jobs, client := newServer(t)

	results, err := client.Results(context.Background(), "done")
	require.NoError(t, err)
	assert.Equal(t, jobs.results["done"], results)
}

func TestClient_MapsErrors(t *testing.T) {
	_, client := newServer(t)
	ctx := context.Background()

	_, err := client.Status(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = client.Results(ctx, "running")
	assert.ErrorIs(t, err, multitext.ErrJobNotDone)

	_, err = client.Results(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
	assert.Contains(t, err.Error(), "500")
	assert.NotContains(t, err.Error(), "disk on fire")
}

func TestHandler_EmptyResultsEncodeAsArray(t *testing.T) {
	jobs := &fakeJobs{searches: map[string]*core.Search{"empty": {ResultsId: "empty", Status: core.StatusDone}}}
	mux := http.NewServeMux()
	NewHandler(jobs, nil).Mount(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/empty/results", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandler_RejectsOtherMethods(t *testing.T) {
	mux := http.NewServeMux()
	NewHandler(&fakeJobs{}, nil).Mount(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/done", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
