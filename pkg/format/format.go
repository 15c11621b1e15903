// Package format provides display formatting helpers for block heights
// and sync percentages.
package format

import (
	"fmt"
	"strings"
)

// Unknown is the placeholder rendered for values that could not be resolved.
const Unknown = "N/A"

// GroupThousands renders n with comma separators, e.g. 1234567 -> "1,234,567".
func GroupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}

	digits := fmt.Sprintf("%d", n)

	groups := make([]string, 0, len(digits)/3+1)
	if lead := len(digits) % 3; lead > 0 {
		groups = append(groups, digits[:lead])
		digits = digits[lead:]
	}
	for len(digits) > 0 {
		groups = append(groups, digits[:3])
		digits = digits[3:]
	}

	out := strings.Join(groups, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// PercentOf renders local/remote as a percentage truncated (not rounded) to
// two decimal places. Returns Unknown when remote is zero.
func PercentOf(local, remote int64) string {
	scaled, ok := percentScaled(local, remote)
	if !ok {
		return Unknown
	}
	return fmt.Sprintf("%d.%02d", scaled/100, scaled%100)
}

// PercentValue returns the truncated two-decimal percentage as a float64,
// suitable for metrics gauges. The second return is false when remote is zero.
func PercentValue(local, remote int64) (float64, bool) {
	scaled, ok := percentScaled(local, remote)
	if !ok {
		return 0, false
	}
	return float64(scaled) / 100, true
}

// percentScaled computes local*100/remote scaled by 100 with integer
// truncation, so 450/500 yields 9000 ("90.00").
func percentScaled(local, remote int64) (int64, bool) {
	if remote == 0 || local < 0 || remote < 0 {
		return 0, false
	}
	return local * 10000 / remote, true
}
