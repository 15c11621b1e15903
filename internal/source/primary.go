package source

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// PrimaryClient queries the proven chain tip from a node's JSON-RPC
// endpoint with a single node_getL2Tips call.
type PrimaryClient struct {
	httpClient *http.Client
	url        string
	logger     *logger.Logger
}

// NewPrimaryClient creates a primary RPC source client.
func NewPrimaryClient(url string, timeout time.Duration, log *logger.Logger) *PrimaryClient {
	return &PrimaryClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		logger:     log,
	}
}

// ProvenHeight returns the proven tip height. Exactly one request is made;
// on failure the caller falls back to the explorer search rather than
// retrying here.
func (c *PrimaryClient) ProvenHeight(ctx context.Context) (chain.Height, error) {
	tips, err := getL2Tips(ctx, c.httpClient, c.url, "primary")
	if err != nil {
		return chain.Unknown(), err
	}

	h, err := tips.Proven.height()
	if err != nil {
		return chain.Unknown(), &FetchError{Upstream: "primary", Stage: StageDecode, Err: err}
	}

	c.logger.Debug("primary proven height",
		zap.String("height", h.String()))

	return h, nil
}
