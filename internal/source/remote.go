package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// RemoteResolver resolves the proven chain height by trying the primary RPC
// once and falling back to the explorer search. Fallback is strictly
// sequential: the primary must fully fail before the explorer is touched,
// and the primary is never retried within a cycle.
type RemoteResolver struct {
	primary  HeightSource
	fallback HeightSource
	logger   *logger.Logger
}

// NewRemoteResolver creates the primary-then-fallback chain. Either source
// may be nil when not configured.
func NewRemoteResolver(primary, fallback HeightSource, log *logger.Logger) *RemoteResolver {
	return &RemoteResolver{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
}

// Resolve returns the proven height and the identity of the source that
// produced it. Failures are folded: both sources failing yields
// (Unknown, SourceNone), never an error, so a cycle always completes.
func (r *RemoteResolver) Resolve(ctx context.Context) (chain.Height, chain.Source) {
	if r.primary != nil {
		h, err := r.primary.ProvenHeight(ctx)
		if err == nil && h.Known() {
			return h, chain.SourcePrimary
		}
		r.logger.Warn("primary source failed, falling back to explorer",
			zap.Error(err))
	}

	if r.fallback != nil {
		h, err := r.fallback.ProvenHeight(ctx)
		if err == nil && h.Known() {
			return h, chain.SourceFallback
		}
		r.logger.Warn("fallback source failed",
			zap.Error(err))
	}

	return chain.Unknown(), chain.SourceNone
}
