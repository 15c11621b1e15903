package status

import (
	"sync"

	"github.com/syncvisor/syncvisor/internal/chain"
)

// RunningStats holds the per-process counters of the poll loop: total cycles,
// cycles that failed, and the source that produced the last remote height.
// The loop is the only writer; the status API reads concurrently, so access
// is guarded. Counters reset only with a process restart.
type RunningStats struct {
	mu          sync.RWMutex
	totalChecks int64
	errorChecks int64
	lastSource  chain.Source
}

// StatsView is an immutable copy of the counters plus the derived success
// rate, taken once per report.
type StatsView struct {
	TotalChecks int64        `json:"total_checks"`
	ErrorChecks int64        `json:"error_checks"`
	SuccessRate int64        `json:"success_rate_percent"`
	LastSource  chain.Source `json:"last_source"`
}

// NewRunningStats creates zeroed running statistics.
func NewRunningStats() *RunningStats {
	return &RunningStats{}
}

// RecordCycle records the outcome of one poll cycle. errored must reflect
// the whole cycle, so errorChecks moves by at most one per cycle no matter
// how many retries failed inside it.
func (s *RunningStats) RecordCycle(errored bool, src chain.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalChecks++
	if errored {
		s.errorChecks++
	}
	s.lastSource = src
}

// View returns a consistent copy of the counters. The success rate uses
// integer division; before the first cycle it reports 100.
func (s *RunningStats) View() StatsView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rate := int64(100)
	if s.totalChecks > 0 {
		rate = (s.totalChecks - s.errorChecks) * 100 / s.totalChecks
	}

	return StatsView{
		TotalChecks: s.totalChecks,
		ErrorChecks: s.errorChecks,
		SuccessRate: rate,
		LastSource:  s.lastSource,
	}
}
