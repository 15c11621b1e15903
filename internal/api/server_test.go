package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/internal/config"
	"github.com/syncvisor/syncvisor/internal/monitor"
	"github.com/syncvisor/syncvisor/internal/status"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// stubProvider serves a canned cycle result.
type stubProvider struct {
	result monitor.CycleResult
	ready  bool
}

func (s *stubProvider) Latest() (monitor.CycleResult, bool) {
	return s.result, s.ready
}

func (s *stubProvider) Stats() status.StatsView {
	return s.result.Stats
}

func testResult() monitor.CycleResult {
	return monitor.CycleResult{
		Snapshot: chain.NewSnapshot(chain.NewHeight(450), chain.NewHeight(500), chain.SourcePrimary),
		Status:   status.Classify(chain.NewHeight(450), chain.NewHeight(500)),
		Stats: status.StatsView{
			TotalChecks: 10,
			ErrorChecks: 2,
			SuccessRate: 80,
			LastSource:  chain.SourcePrimary,
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, provider StatusProvider) *Server {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return NewServer(cfg, provider, logger.NewTestLogger())
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil, &stubProvider{})

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t, nil, &stubProvider{result: testResult(), ready: true})

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Snapshot struct {
			Local  *int64 `json:"local_height"`
			Remote *int64 `json:"remote_height"`
			Source string `json:"remote_source"`
		} `json:"snapshot"`
		Status struct {
			State    string `json:"state"`
			Progress string `json:"progress"`
		} `json:"status"`
		Stats struct {
			SuccessRate int64 `json:"success_rate_percent"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.NotNil(t, body.Snapshot.Local)
	assert.Equal(t, int64(450), *body.Snapshot.Local)
	require.NotNil(t, body.Snapshot.Remote)
	assert.Equal(t, int64(500), *body.Snapshot.Remote)
	assert.Equal(t, "primary", body.Snapshot.Source)
	assert.Equal(t, "syncing", body.Status.State)
	assert.Equal(t, "90.00", body.Status.Progress)
	assert.Equal(t, int64(80), body.Stats.SuccessRate)
}

func TestStatusEndpointBeforeFirstCycle(t *testing.T) {
	s := newTestServer(t, nil, &stubProvider{})

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t, nil, &stubProvider{result: testResult(), ready: true})

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_checks":10`)
}

func TestAPIKeyAuth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.APIKey = "secret"
	s := newTestServer(t, cfg, &stubProvider{result: testResult(), ready: true})

	// No key: rejected.
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong key: rejected.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("X-API-Key", "wrong")
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Header key: accepted.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("X-API-Key", "secret")
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Query key: accepted.
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status?apiKey=secret", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays open.
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
