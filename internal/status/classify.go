// Package status turns a local and a remote block height into a sync state
// and keeps the running statistics of the poll loop.
package status

import (
	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/pkg/format"
)

// Kind is the classified sync state.
type Kind int

const (
	// Unknown means one or both heights could not be resolved this cycle.
	Unknown Kind = iota
	// Synced means the local node matches the proven chain height.
	Synced
	// Ahead means the local node is past the externally proven height.
	Ahead
	// Syncing means the local node is behind and making progress.
	Syncing
	// InvalidData means a height field was present but not numeric; this is
	// surfaced distinctly rather than coerced to Unknown.
	InvalidData
)

// String returns the display name of the state
func (k Kind) String() string {
	switch k {
	case Synced:
		return "synced"
	case Ahead:
		return "ahead"
	case Syncing:
		return "syncing"
	case InvalidData:
		return "invalid-data"
	default:
		return "unknown"
	}
}

// Milestone tags notable progress thresholds while syncing.
type Milestone string

const (
	MilestoneNone         Milestone = ""
	MilestoneGoodProgress Milestone = "good-progress"
	MilestoneNearComplete Milestone = "near-complete"
)

// Status is the outcome of classifying one cycle.
type Status struct {
	Kind      Kind      `json:"state"`
	Progress  string    `json:"progress,omitempty"`
	Milestone Milestone `json:"milestone,omitempty"`
}

// MarshalJSON encodes the kind as its display name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Classify determines the sync state from a local and a remote height.
//
// Rules, in order: either side unknown is Unknown; equal heights are
// Synced (on which the caller resets its consecutive-error counter); a
// local height past the remote is Ahead; otherwise the node is Syncing
// with progress truncated to two decimals and a milestone tag when the
// integer percent is strictly above 90 or 50.
func Classify(local, remote chain.Height) Status {
	localN, localOK := local.Int()
	remoteN, remoteOK := remote.Int()

	if !localOK || !remoteOK {
		return Status{Kind: Unknown}
	}

	if localN == remoteN {
		return Status{Kind: Synced}
	}

	if localN > remoteN {
		return Status{Kind: Ahead}
	}

	if remoteN == 0 {
		// Behind a zero-height chain cannot happen with non-negative
		// heights, but the percentage must never divide by zero.
		return Status{Kind: Unknown}
	}

	progress := format.PercentOf(localN, remoteN)
	wholePercent := localN * 100 / remoteN

	milestone := MilestoneNone
	switch {
	case wholePercent > 90:
		milestone = MilestoneNearComplete
	case wholePercent > 50:
		milestone = MilestoneGoodProgress
	}

	return Status{
		Kind:      Syncing,
		Progress:  progress,
		Milestone: milestone,
	}
}

// ClassifyRaw classifies from raw display strings, the serving-boundary
// variant of Classify. Grouping and other decoration is stripped before
// comparison; a value with no digits at all yields InvalidData.
func ClassifyRaw(local, remote string) Status {
	if local == "" || local == format.Unknown || remote == "" || remote == format.Unknown {
		return Status{Kind: Unknown}
	}

	localH, err := chain.ParseDecorated(local)
	if err != nil {
		return Status{Kind: InvalidData}
	}
	remoteH, err := chain.ParseDecorated(remote)
	if err != nil {
		return Status{Kind: InvalidData}
	}

	return Classify(localH, remoteH)
}
