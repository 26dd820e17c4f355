package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/intertext/core"
	"github.com/poiesic/intertext/multitext"
	"github.com/poiesic/intertext/storage"
)

// Client queries a worker's job routes. It satisfies Jobs.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Status(ctx context.Context, resultsID string) (*core.Search, error) {
	var search core.Search
	if err := c.get(ctx, "/jobs/"+url.PathEscape(resultsID), &search); err != nil {
		return nil, err
	}
	return &search, nil
}

func (c *Client) Results(ctx context.Context, resultsID string) ([]*core.MultiResult, error) {
	var results []*core.MultiResult
	if err := c.get(ctx, "/jobs/"+url.PathEscape(resultsID)+"/results", &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("querying %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body errorBody
		_ = json.NewDecoder(resp.Body).Decode(&body)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", storage.ErrNotFound, body.Error)
		case http.StatusConflict:
			return fmt.Errorf("%w: %s", multitext.ErrJobNotDone, body.Error)
		default:
			return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, body.Error)
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
