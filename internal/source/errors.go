package source

import (
	"errors"
	"fmt"
)

// Stages at which a fetch can fail, attached to FetchError so a report can
// tell a transport failure from a malformed payload.
const (
	StageRequest = "request"
	StageDecode  = "decode"
	StageRPC     = "rpc"
)

// FetchError reports a failed fetch from one upstream, with enough context
// to tell which source and which stage broke.
type FetchError struct {
	Upstream string
	Stage    string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s fetch failed at %s: %v", e.Upstream, e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrResolutionExhausted is returned when the backward proven-height search
// runs past height 0 without finding a proven block.
var ErrResolutionExhausted = errors.New("proven height search exhausted below height 0")

// ErrEmptyPage is returned when the tip-discovery page carries no entries.
var ErrEmptyPage = errors.New("explorer returned an empty page")
