package logslice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineBounds_AnyInteriorOffset(t *testing.T) {
	data := []byte("2024-01-01 alpha\n2024-01-01 beta\n2024-01-02 gamma\n")

	// Every offset inside a line must resolve to the same bounds,
	// regardless of which interior byte was probed.
	lines := [][2]int{{0, 16}, {17, 32}, {33, 49}}
	for _, want := range lines {
		for pos := want[0]; pos <= want[1]; pos++ {
			start, end := lineBounds(data, pos)
			assert.Equal(t, want[0], start, "pos %d", pos)
			assert.Equal(t, want[1], end, "pos %d", pos)
		}
	}
}

func TestLineBounds_TerminatorResolvesToPrecedingLine(t *testing.T) {
	data := []byte("2024-01-01 alpha\n2024-01-01 beta\n")

	// A probe landing exactly on a terminator belongs to the line that
	// terminator ends.
	start, end := lineBounds(data, 16)
	assert.Equal(t, 0, start)
	assert.Equal(t, 16, end)

	start, end = lineBounds(data, 32)
	assert.Equal(t, 17, start)
	assert.Equal(t, 32, end)
}

func TestLineBounds_Boundaries(t *testing.T) {
	data := []byte("2024-01-01 only")

	// Offset 0.
	start, end := lineBounds(data, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, len(data), end)

	// End of region still resolves the final, unterminated line.
	start, end = lineBounds(data, len(data))
	assert.Equal(t, 0, start)
	assert.Equal(t, len(data), end)
}

func TestLineBounds_EmptyRegion(t *testing.T) {
	start, end := lineBounds(nil, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestLineBounds_TrailingNewline(t *testing.T) {
	data := []byte("2024-01-01 alpha\n")

	// Probing past the final terminator yields the empty trailing line.
	start, end := lineBounds(data, len(data))
	assert.Equal(t, len(data), start)
	assert.Equal(t, len(data), end)
}

func TestLineAt(t *testing.T) {
	data := []byte("2024-01-01 alpha\n2024-01-01 beta\n")

	line, err := LineAt(data, 20)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 beta", string(line))
}

func TestLineAt_DecodeFailure(t *testing.T) {
	data := []byte("2024-01-01 ok\n2024-01-01 \xff\xfe\xfd\n")

	_, err := LineAt(data, 20)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 14, derr.Offset)
}
