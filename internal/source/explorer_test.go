package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

func TestExplorerFetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "81", r.URL.Query().Get("from"))
		assert.Equal(t, "100", r.URL.Query().Get("to"))
		assert.Equal(t, "secret", r.URL.Query().Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]PageEntry{
			{Height: 100, Status: 2},
			{Height: 99, Status: 2},
			{Height: 95, Status: chain.StatusProven},
		})
	}))
	defer server.Close()

	c := NewExplorerClient(server.URL, "secret", 5*time.Second, logger.NewTestLogger())
	entries, err := c.FetchPage(context.Background(), 81, 100)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(95), entries[2].Height)
	assert.Equal(t, chain.StatusProven, entries[2].Status)
}

func TestExplorerFetchPageNoAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["apiKey"]
		assert.False(t, present)
		json.NewEncoder(w).Encode([]PageEntry{})
	}))
	defer server.Close()

	c := NewExplorerClient(server.URL, "", 5*time.Second, logger.NewTestLogger())
	entries, err := c.FetchPage(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExplorerFetchPageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewExplorerClient(server.URL, "", 5*time.Second, logger.NewTestLogger())
	_, err := c.FetchPage(context.Background(), 0, 0)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "explorer", fetchErr.Upstream)
	assert.Equal(t, StageRequest, fetchErr.Stage)
}

func TestExplorerFetchPageMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	c := NewExplorerClient(server.URL, "", 5*time.Second, logger.NewTestLogger())
	_, err := c.FetchPage(context.Background(), 0, 0)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, StageDecode, fetchErr.Stage)
}

func TestExplorerAgainstResolver(t *testing.T) {
	// End to end over HTTP: tip discovery then one window with a hit.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")

		w.Header().Set("Content-Type", "application/json")
		if from == "0" && to == "0" {
			json.NewEncoder(w).Encode([]PageEntry{{Height: 100, Status: 2}})
			return
		}

		require.Equal(t, "81", from)
		require.Equal(t, "100", to)
		json.NewEncoder(w).Encode([]PageEntry{
			{Height: 100, Status: 2},
			{Height: 95, Status: chain.StatusProven},
			{Height: 90, Status: chain.StatusProven},
		})
	}))
	defer server.Close()

	c := NewExplorerClient(server.URL, "", 5*time.Second, logger.NewTestLogger())
	r := NewResolver(c, 20, logger.NewTestLogger())

	h, err := r.ProvenHeight(context.Background())
	require.NoError(t, err)
	n, _ := h.Int()
	assert.Equal(t, int64(95), n)
}
