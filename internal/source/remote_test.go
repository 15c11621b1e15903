package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// stubSource returns a fixed height or error and counts calls.
type stubSource struct {
	height chain.Height
	err    error
	calls  int
}

func (s *stubSource) ProvenHeight(ctx context.Context) (chain.Height, error) {
	s.calls++
	return s.height, s.err
}

func TestRemoteResolverPrimaryWins(t *testing.T) {
	primary := &stubSource{height: chain.NewHeight(500)}
	fallback := &stubSource{height: chain.NewHeight(490)}

	r := NewRemoteResolver(primary, fallback, logger.NewTestLogger())
	h, src := r.Resolve(context.Background())

	n, _ := h.Int()
	assert.Equal(t, int64(500), n)
	assert.Equal(t, chain.SourcePrimary, src)

	// The fallback must not be touched when the primary succeeds.
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestRemoteResolverFallsBack(t *testing.T) {
	primary := &stubSource{err: &FetchError{Upstream: "primary", Stage: StageRequest, Err: assert.AnError}}
	fallback := &stubSource{height: chain.NewHeight(490)}

	r := NewRemoteResolver(primary, fallback, logger.NewTestLogger())
	h, src := r.Resolve(context.Background())

	n, _ := h.Int()
	assert.Equal(t, int64(490), n)
	assert.Equal(t, chain.SourceFallback, src)

	// Primary is tried exactly once, never retried.
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestRemoteResolverBothFail(t *testing.T) {
	primary := &stubSource{err: assert.AnError}
	fallback := &stubSource{err: ErrResolutionExhausted}

	r := NewRemoteResolver(primary, fallback, logger.NewTestLogger())
	h, src := r.Resolve(context.Background())

	assert.False(t, h.Known())
	assert.Equal(t, chain.SourceNone, src)
}

func TestRemoteResolverNoPrimaryConfigured(t *testing.T) {
	fallback := &stubSource{height: chain.NewHeight(123)}

	r := NewRemoteResolver(nil, fallback, logger.NewTestLogger())
	h, src := r.Resolve(context.Background())

	n, _ := h.Int()
	assert.Equal(t, int64(123), n)
	assert.Equal(t, chain.SourceFallback, src)
}

func TestRemoteResolverUnknownWithoutErrorFallsBack(t *testing.T) {
	// A source returning Unknown without an error still counts as a failure.
	primary := &stubSource{height: chain.Unknown()}
	fallback := &stubSource{height: chain.NewHeight(7)}

	r := NewRemoteResolver(primary, fallback, logger.NewTestLogger())
	h, src := r.Resolve(context.Background())

	n, _ := h.Int()
	assert.Equal(t, int64(7), n)
	assert.Equal(t, chain.SourceFallback, src)
}
