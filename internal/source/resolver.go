package source

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// DefaultWindowSize is the number of blocks fetched per search window.
const DefaultWindowSize = 20

// Resolver finds the highest block whose status is Proven by searching
// backward from the current chain tip, one fixed-size window at a time.
// Proven blocks are not assumed to form a contiguous suffix of the chain.
type Resolver struct {
	pages  PageFetcher
	window int64
	logger *logger.Logger
}

// NewResolver creates a proven-height resolver over the given page fetcher.
// window <= 0 selects DefaultWindowSize.
func NewResolver(pages PageFetcher, window int64, log *logger.Logger) *Resolver {
	if window <= 0 {
		window = DefaultWindowSize
	}
	return &Resolver{
		pages:  pages,
		window: window,
		logger: log,
	}
}

// ProvenHeight runs the backward search.
//
// The [0,0] page is fetched solely to learn the current tip from its first
// entry. Each following window [max(0, cur-W+1), cur] is scanned in
// descending height order and the first proven entry wins; the search stops
// at the first window containing any proven block, even if an older window
// would also have one. Running past height 0 fails with
// ErrResolutionExhausted.
func (r *Resolver) ProvenHeight(ctx context.Context) (chain.Height, error) {
	tipPage, err := r.pages.FetchPage(ctx, 0, 0)
	if err != nil {
		return chain.Unknown(), err
	}
	if len(tipPage) == 0 {
		return chain.Unknown(), &FetchError{Upstream: "explorer", Stage: StageDecode, Err: ErrEmptyPage}
	}

	tip := tipPage[0].Height
	r.logger.Debug("searching for proven height",
		zap.Int64("tip", tip),
		zap.Int64("window", r.window))

	current := tip
	for current >= 0 {
		if err := ctx.Err(); err != nil {
			return chain.Unknown(), err
		}

		from := current - r.window + 1
		if from < 0 {
			from = 0
		}

		entries, err := r.pages.FetchPage(ctx, from, current)
		if err != nil {
			return chain.Unknown(), err
		}

		// Heights are unique, but the order of the page is the upstream's
		// choice; sort descending so "highest proven" is well-defined.
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Height > entries[j].Height
		})

		for _, e := range entries {
			if e.Status == chain.StatusProven {
				r.logger.Debug("proven height found",
					zap.Int64("height", e.Height),
					zap.Int64("window_from", from),
					zap.Int64("window_to", current))
				return chain.NewHeight(e.Height), nil
			}
		}

		current = from - 1
	}

	return chain.Unknown(), ErrResolutionExhausted
}
