// Package chain defines the core data model shared by the sync monitor:
// block heights, upstream source identities and per-cycle snapshots.
package chain

import (
	"encoding/json"
	"time"

	"github.com/syncvisor/syncvisor/pkg/format"
)

// Height is a non-negative block number observed from a node or explorer.
// The zero value is Unknown, which is distinct from height 0: comparisons
// and percentage arithmetic on an Unknown height must short-circuit rather
// than treat it as zero.
type Height struct {
	value int64
	known bool
}

// NewHeight creates a known Height. Negative values yield Unknown since a
// block number can never be negative.
func NewHeight(n int64) Height {
	if n < 0 {
		return Height{}
	}
	return Height{value: n, known: true}
}

// Unknown returns the sentinel height for a value that could not be resolved.
func Unknown() Height {
	return Height{}
}

// Known reports whether the height carries a valid block number.
func (h Height) Known() bool {
	return h.known
}

// Int returns the block number and whether it is valid.
func (h Height) Int() (int64, bool) {
	return h.value, h.known
}

// Equal reports whether both heights are known and hold the same number.
func (h Height) Equal(other Height) bool {
	return h.known && other.known && h.value == other.value
}

// String renders the height with thousands grouping, or "N/A" when unknown.
func (h Height) String() string {
	if !h.known {
		return format.Unknown
	}
	return format.GroupThousands(h.value)
}

// MarshalJSON encodes a known height as its number and Unknown as null.
func (h Height) MarshalJSON() ([]byte, error) {
	if !h.known {
		return []byte("null"), nil
	}
	return json.Marshal(h.value)
}

// Source identifies which upstream produced a resolved height.
type Source int

const (
	// SourceNone means no upstream produced a height this cycle.
	SourceNone Source = iota
	// SourcePrimary is the node JSON-RPC endpoint.
	SourcePrimary
	// SourceFallback is the block explorer API.
	SourceFallback
)

// String returns the display tag for the source
func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceFallback:
		return "fallback"
	default:
		return "none"
	}
}

// MarshalJSON encodes the source as its display tag.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// BlockStatus is the lifecycle state code the explorer API reports per block.
type BlockStatus int

// StatusProven marks a block whose rollup proof has been posted and verified.
// It is the only status the backward proven-height search accepts.
const StatusProven BlockStatus = 4

// Snapshot is the immutable record of one poll cycle. It is produced once
// per cycle and never mutated afterwards.
type Snapshot struct {
	Local     Height    `json:"local_height"`
	Remote    Height    `json:"remote_height"`
	Source    Source    `json:"remote_source"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSnapshot builds a Snapshot, normalizing the source identity so that
// Source is None exactly when the remote height is unknown.
func NewSnapshot(local, remote Height, src Source) Snapshot {
	if !remote.Known() {
		src = SourceNone
	}
	return Snapshot{
		Local:     local,
		Remote:    remote,
		Source:    src,
		Timestamp: time.Now(),
	}
}
