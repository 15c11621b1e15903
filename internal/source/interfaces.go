package source

import (
	"context"

	"github.com/syncvisor/syncvisor/internal/chain"
)

// HeightSource resolves the proven chain height from one upstream.
// Implementations must not retry internally; retry and fallback policy
// belong to the caller.
type HeightSource interface {
	ProvenHeight(ctx context.Context) (chain.Height, error)
}

// LocalSource reports the sync height of the locally-run node.
type LocalSource interface {
	LatestHeight(ctx context.Context) (chain.Height, error)
}

// PageFetcher fetches one page of block statuses from the explorer.
// It is a dumb fetch primitive: page boundaries are caller-supplied and no
// searching happens here.
type PageFetcher interface {
	FetchPage(ctx context.Context, from, to int64) ([]PageEntry, error)
}
