package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syncvisor/syncvisor/internal/chain"
)

func TestRunningStatsBeforeFirstCycle(t *testing.T) {
	s := NewRunningStats()
	view := s.View()
	assert.Equal(t, int64(0), view.TotalChecks)
	assert.Equal(t, int64(0), view.ErrorChecks)
	assert.Equal(t, int64(100), view.SuccessRate)
	assert.Equal(t, chain.SourceNone, view.LastSource)
}

func TestRunningStatsRecordCycle(t *testing.T) {
	s := NewRunningStats()

	s.RecordCycle(false, chain.SourcePrimary)
	s.RecordCycle(true, chain.SourceNone)
	s.RecordCycle(false, chain.SourceFallback)

	view := s.View()
	assert.Equal(t, int64(3), view.TotalChecks)
	assert.Equal(t, int64(1), view.ErrorChecks)
	// Integer division: 2*100/3 = 66.
	assert.Equal(t, int64(66), view.SuccessRate)
	assert.Equal(t, chain.SourceFallback, view.LastSource)
}

func TestRunningStatsAllErrors(t *testing.T) {
	s := NewRunningStats()
	for i := 0; i < 5; i++ {
		s.RecordCycle(true, chain.SourceNone)
	}
	view := s.View()
	assert.Equal(t, int64(5), view.TotalChecks)
	assert.Equal(t, int64(5), view.ErrorChecks)
	assert.Equal(t, int64(0), view.SuccessRate)
}
