package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetToPosition(t *testing.T) {
	text := "abc\ndef\nghi"
	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{0, 0}},
		{3, Position{0, 3}},
		{4, Position{1, 0}},
		{7, Position{1, 3}},
		{8, Position{2, 0}},
		{11, Position{2, 3}},
	}
	for _, tt := range tests {
		got := OffsetToPosition(text, tt.offset)
		assert.Equal(t, tt.want, got, "offset %d", tt.offset)
	}
}

func TestOffsetToPositionCRLF(t *testing.T) {
	text := "abc\r\ndef"
	// the \r is counted as an ordinary byte on line 0; the newline boundary
	// is the \n, matching the "\r\n counts as one boundary" rule.
	require.Equal(t, Position{0, 4}, OffsetToPosition(text, 4))
	require.Equal(t, Position{1, 0}, OffsetToPosition(text, 5))
}

func TestAddOffsetFirstLine(t *testing.T) {
	origin := Position{Line: 4, Character: 10}
	p := Position{Line: 0, Character: 5}
	got := AddOffset(origin, p)
	assert.Equal(t, Position{Line: 4, Character: 15}, got)
}

func TestAddOffsetLaterLine(t *testing.T) {
	origin := Position{Line: 4, Character: 10}
	p := Position{Line: 2, Character: 5}
	got := AddOffset(origin, p)
	assert.Equal(t, Position{Line: 6, Character: 5}, got)
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: Position{0, 2}, End: Position{0, 8}}
	assert.True(t, r.Contains(Position{0, 2}))
	assert.True(t, r.Contains(Position{0, 7}))
	assert.False(t, r.Contains(Position{0, 8}))
	assert.False(t, r.Contains(Position{0, 1}))
}
