package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want string
	}{
		{"zero", 0, "0"},
		{"small", 42, "42"},
		{"three digits", 999, "999"},
		{"four digits", 1000, "1,000"},
		{"typical height", 1234567, "1,234,567"},
		{"exact groups", 123456, "123,456"},
		{"large", 9876543210, "9,876,543,210"},
		{"negative", -1234567, "-1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupThousands(tt.in))
		})
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name   string
		local  int64
		remote int64
		want   string
	}{
		{"ninety exact", 450, 500, "90.00"},
		{"truncates not rounds", 451, 500, "90.20"},
		{"repeating decimal truncated", 1, 3, "33.33"},
		{"two thirds truncated", 2, 3, "66.66"},
		{"complete", 500, 500, "100.00"},
		{"zero local", 0, 500, "0.00"},
		{"zero remote is unknown", 450, 0, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentOf(tt.local, tt.remote))
		})
	}
}

func TestPercentValue(t *testing.T) {
	v, ok := PercentValue(451, 500)
	assert.True(t, ok)
	assert.InDelta(t, 90.20, v, 0.001)

	_, ok = PercentValue(1, 0)
	assert.False(t, ok)
}

func TestPercentOfMonotonic(t *testing.T) {
	// Holding remote fixed, progress never decreases as local grows.
	const remote = 977
	prev := -1.0
	for local := int64(0); local <= remote; local++ {
		v, ok := PercentValue(local, remote)
		assert.True(t, ok)
		assert.GreaterOrEqual(t, v, prev, "local=%d", local)
		prev = v
	}
}
