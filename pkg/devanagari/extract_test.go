package devanagari

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumberForEveryLabel(t *testing.T) {
	// Characters 0..35 carry their ordinal, digits 36..45 carry their value.
	want := [Count]int{
		10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
		1, 20, 21, 22, 23, 24, 25, 26, 27, 28,
		29, 2, 30, 31, 32, 33, 34, 35, 36, 3,
		4, 5, 6, 7, 8, 9,
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	}

	for i := 0; i < Count; i++ {
		label := Label(i)
		t.Run(label, func(t *testing.T) {
			assert.Equal(t, want[i], ExtractNumber(label))
		})
	}
}

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"character_12_thaa", 12},
		{"digit_7", 7},
		{"character_1_ka", 1},
		{"unknown", -1},
		{UnknownLabel, -1},
		{"", -1},
		{"digit_", -1},
		{"abc123", -1},
		{"a_1_b_22", 22},
		{"digit_007", 7},
		{"x_99999999999999999999999", -1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.label), func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractNumber(tt.label))
		})
	}
}
