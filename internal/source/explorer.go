package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// PageEntry is one row of an explorer block page: a height with its
// lifecycle status.
type PageEntry struct {
	Height int64             `json:"height"`
	Status chain.BlockStatus `json:"blockStatus"`
}

// ExplorerClient fetches block-status pages from the explorer API. It is a
// dumb fetch primitive; the backward search lives in Resolver.
type ExplorerClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logger.Logger
}

// NewExplorerClient creates an explorer API client. apiKey may be empty for
// deployments that do not require one.
func NewExplorerClient(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *ExplorerClient {
	return &ExplorerClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     log,
	}
}

// FetchPage fetches the blocks in [from, to] as an ordered sequence of
// (height, status) entries. One GET per call.
func (c *ExplorerClient) FetchPage(ctx context.Context, from, to int64) ([]PageEntry, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &FetchError{Upstream: "explorer", Stage: StageRequest, Err: err}
	}

	q := u.Query()
	q.Set("from", strconv.FormatInt(from, 10))
	q.Set("to", strconv.FormatInt(to, 10))
	if c.apiKey != "" {
		q.Set("apiKey", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Upstream: "explorer", Stage: StageRequest, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Upstream: "explorer", Stage: StageRequest, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Upstream: "explorer",
			Stage:    StageRequest,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var entries []PageEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, &FetchError{Upstream: "explorer", Stage: StageDecode, Err: err}
	}

	return entries, nil
}
