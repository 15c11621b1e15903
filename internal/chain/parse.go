package chain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a value that was expected to carry a block number but
// contained no parseable digits.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no numeric height in %q", e.Raw)
}

// ParseDecorated parses a block number from a possibly-decorated string.
// Upstream values occasionally arrive grouped ("1,234,567") or quoted, so
// everything except digits is stripped before conversion. An input with no
// digits at all is a *ParseError; the caller decides whether that is fatal
// for the cycle.
func ParseDecorated(raw string) (Height, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return Unknown(), &ParseError{Raw: raw}
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return Unknown(), &ParseError{Raw: raw}
	}

	return NewHeight(n), nil
}
