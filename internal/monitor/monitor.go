// Package monitor drives the periodic sync check: query the local node with
// retries, resolve the proven remote height, classify, and record running
// statistics.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/internal/config"
	"github.com/syncvisor/syncvisor/internal/metrics"
	"github.com/syncvisor/syncvisor/internal/source"
	"github.com/syncvisor/syncvisor/internal/status"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// DefaultSubscriberBufferSize is the buffer size for subscriber channels
const DefaultSubscriberBufferSize = 10

// RemoteResolver resolves the proven chain height with source identity.
// *source.RemoteResolver is the production implementation.
type RemoteResolver interface {
	Resolve(ctx context.Context) (chain.Height, chain.Source)
}

// CycleResult bundles everything one poll cycle produced.
type CycleResult struct {
	Snapshot chain.Snapshot   `json:"snapshot"`
	Status   status.Status    `json:"status"`
	Stats    status.StatsView `json:"stats"`
}

// Monitor runs the poll loop. A single goroutine owns the loop; Latest,
// Stats and Subscribe are safe to call from other goroutines.
type Monitor struct {
	logger *logger.Logger
	local  source.LocalSource
	remote RemoteResolver

	// Optional; nil disables metric observation.
	collector *metrics.Collector

	cfgMu sync.RWMutex
	cfg   *config.Config

	stats *status.RunningStats

	// consecutiveErrors counts failed cycles since the last Synced outcome.
	consecutiveErrors int

	lastMu  sync.RWMutex
	last    CycleResult
	hasLast bool

	subscribers []chan<- CycleResult
	subMu       sync.RWMutex
}

// New creates a sync monitor. collector may be nil.
func New(cfg *config.Config, local source.LocalSource, remote RemoteResolver, collector *metrics.Collector, log *logger.Logger) *Monitor {
	return &Monitor{
		logger:    log,
		local:     local,
		remote:    remote,
		collector: collector,
		cfg:       cfg,
		stats:     status.NewRunningStats(),
	}
}

// UpdateConfig swaps in a reloaded configuration. Interval and retry knobs
// take effect from the next cycle.
func (m *Monitor) UpdateConfig(cfg *config.Config) {
	m.cfgMu.Lock()
	m.cfg = cfg
	m.cfgMu.Unlock()

	m.logger.Info("monitor configuration updated",
		zap.Duration("check_interval", cfg.CheckInterval),
		zap.Int("max_retries", cfg.MaxRetries))
}

func (m *Monitor) config() *config.Config {
	m.cfgMu.RLock()
	defer m.cfgMu.RUnlock()
	return m.cfg
}

// Run executes poll cycles until ctx is cancelled. The first cycle starts
// immediately; each subsequent cycle follows a check-interval sleep.
// Cancellation is observed between every blocking operation and returns nil
// so the process can exit cleanly.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("sync monitor started",
		zap.Duration("check_interval", m.config().CheckInterval))

	for {
		if _, err := m.RunOnce(ctx); err != nil {
			// Only cancellation aborts a cycle; everything else is folded
			// into the cycle result.
			m.logger.Info("sync monitor stopped")
			return nil
		}

		select {
		case <-ctx.Done():
			m.logger.Info("sync monitor stopped")
			return nil
		case <-time.After(m.config().CheckInterval):
		}
	}
}

// RunOnce executes exactly one poll cycle. The returned error is non-nil
// only when ctx was cancelled mid-cycle, in which case nothing was recorded.
func (m *Monitor) RunOnce(ctx context.Context) (CycleResult, error) {
	cfg := m.config()

	local, localErr := m.fetchLocal(ctx, cfg)
	if ctx.Err() != nil {
		return CycleResult{}, ctx.Err()
	}

	remote, src := m.remote.Resolve(ctx)
	if ctx.Err() != nil {
		return CycleResult{}, ctx.Err()
	}

	snap := chain.NewSnapshot(local, remote, src)

	var st status.Status
	var parseErr *chain.ParseError
	if localErr != nil && errors.As(localErr, &parseErr) {
		// The node answered but the height field was not numeric. That is
		// data corruption, not an outage, and is surfaced as such.
		st = status.Status{Kind: status.InvalidData}
	} else {
		st = status.Classify(snap.Local, snap.Remote)
	}

	// One increment per cycle at most, regardless of how many retries
	// failed inside it.
	errored := !snap.Local.Known() || !snap.Remote.Known()
	m.stats.RecordCycle(errored, src)

	if st.Kind == status.Synced {
		m.consecutiveErrors = 0
	} else if errored {
		m.consecutiveErrors++
	}

	res := CycleResult{
		Snapshot: snap,
		Status:   st,
		Stats:    m.stats.View(),
	}

	m.lastMu.Lock()
	m.last = res
	m.hasLast = true
	m.lastMu.Unlock()

	if m.collector != nil {
		m.collector.ObserveCycle(snap, st, errored)
	}

	m.report(res, localErr)
	m.notifySubscribers(res)

	return res, nil
}

// fetchLocal queries the local node up to MaxRetries times with RetryDelay
// between attempts, stopping at the first usable response.
func (m *Monitor) fetchLocal(ctx context.Context, cfg *config.Config) (chain.Height, error) {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		h, err := m.local.LatestHeight(ctx)
		if err == nil && h.Known() {
			return h, nil
		}
		lastErr = err

		m.logger.Warn("local node query failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", cfg.MaxRetries),
			zap.Error(err))

		if attempt < cfg.MaxRetries {
			select {
			case <-ctx.Done():
				return chain.Unknown(), ctx.Err()
			case <-time.After(cfg.RetryDelay):
			}
		}
	}

	return chain.Unknown(), lastErr
}

// Latest returns the most recent cycle result, if any cycle has completed.
func (m *Monitor) Latest() (CycleResult, bool) {
	m.lastMu.RLock()
	defer m.lastMu.RUnlock()
	return m.last, m.hasLast
}

// Stats returns a copy of the running statistics.
func (m *Monitor) Stats() status.StatsView {
	return m.stats.View()
}

// Subscribe returns a channel receiving every cycle result. The channel is
// buffered; if a subscriber falls behind, updates are dropped rather than
// blocking the loop.
func (m *Monitor) Subscribe() <-chan CycleResult {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	ch := make(chan CycleResult, DefaultSubscriberBufferSize)
	m.subscribers = append(m.subscribers, ch)
	return ch
}

func (m *Monitor) notifySubscribers(res CycleResult) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for i, ch := range m.subscribers {
		select {
		case ch <- res:
		default:
			m.logger.Warn("subscriber channel full, dropping update",
				zap.Int("subscriber_index", i))
		}
	}
}
