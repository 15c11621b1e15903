package source

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// LocalClient queries the locally-run node for its own sync height, i.e.
// the latest tip it has processed.
type LocalClient struct {
	httpClient *http.Client
	url        string
	logger     *logger.Logger
}

// NewLocalClient creates a client for the local node endpoint.
func NewLocalClient(url string, timeout time.Duration, log *logger.Logger) *LocalClient {
	return &LocalClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		logger:     log,
	}
}

// LatestHeight returns the local node's latest processed block height.
// A *chain.ParseError wrapped in the result means the node answered but the
// height field was not numeric; callers surface that as invalid data rather
// than a plain outage.
func (c *LocalClient) LatestHeight(ctx context.Context) (chain.Height, error) {
	tips, err := getL2Tips(ctx, c.httpClient, c.url, "local")
	if err != nil {
		return chain.Unknown(), err
	}

	h, err := tips.Latest.height()
	if err != nil {
		return chain.Unknown(), err
	}

	c.logger.Debug("local latest height",
		zap.String("height", h.String()))

	return h, nil
}
