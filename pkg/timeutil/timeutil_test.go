package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"13:30", 810, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"-1:00", 0, true},
		{"0900", 0, true},
		{"9", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		assert.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "20:00", FormatClock(1200))
}

func TestOverlaps(t *testing.T) {
	// [600,630) vs [600,630): identical intervals overlap
	assert.True(t, Overlaps(600, 630, 600, 630))
	// partial overlap
	assert.True(t, Overlaps(600, 660, 630, 690))
	// containment
	assert.True(t, Overlaps(600, 720, 630, 660))
	// touching endpoints do not overlap under half-open semantics
	assert.False(t, Overlaps(600, 630, 630, 660))
	assert.False(t, Overlaps(630, 660, 600, 630))
	// disjoint
	assert.False(t, Overlaps(600, 630, 700, 730))
}
