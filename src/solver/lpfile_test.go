package solver

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLPFile(t *testing.T) {
	m := NewModel("tiny")
	x := m.AddVar(0, math.Inf(1), 1, false, "x")
	y := m.AddVar(0.5, 2, 2, false, "y")
	n := m.AddVar(0, 10, 0, true, "n")
	m.AddBinary(-1.5, "b")
	m.AddRow(1, math.Inf(1), "cover", Entry{x, 1}, Entry{y, 1})
	m.AddRow(0, 2, "range", Entry{x, 1}, Entry{y, -1})
	m.AddRow(3, 3, "fix", Entry{x, 1}, Entry{n, 1})

	var buf strings.Builder
	require.NoError(t, WriteLPFile(&buf, m))

	want := `\ Problem: tiny
Minimize
 obj: + 1 x + 2 y - 1.5 b
Subject To
 cover: + 1 x + 1 y >= 1
 range_lo: + 1 x - 1 y >= 0
 range_up: + 1 x - 1 y <= 2
 fix: + 1 x + 1 n = 3
Bounds
 0.5 <= y <= 2
 0 <= n <= 10
General
 n
Binary
 b
End
`
	assert.Equal(t, want, buf.String())
}

func TestWriteLPFileMaximizeAndFallbackNames(t *testing.T) {
	m := NewModel("")
	m.Maximize = true
	m.Offset = 4
	m.AddBinary(1, "")
	m.AddRow(math.Inf(-1), 1, "", Entry{0, 1})

	var buf strings.Builder
	require.NoError(t, WriteLPFile(&buf, m))
	out := buf.String()

	assert.Contains(t, out, "Maximize")
	assert.Contains(t, out, " obj: + 1 x0 + 4\n")
	assert.Contains(t, out, " c0: + 1 x0 <= 1\n")
	assert.Contains(t, out, "Binary\n x0\n")
	assert.NotContains(t, out, "\\ Problem")
}

func TestWriteLPFileFixedAndFreeBounds(t *testing.T) {
	m := NewModel("bounds")
	m.AddVar(2, 2, 1, false, "pinned")
	m.AddVar(math.Inf(-1), math.Inf(1), 1, false, "loose")
	m.AddVar(3, math.Inf(1), 0, false, "floor")
	m.AddRow(0, math.Inf(1), "", Entry{0, 1})

	var buf strings.Builder
	require.NoError(t, WriteLPFile(&buf, m))
	out := buf.String()

	assert.Contains(t, out, " pinned = 2\n")
	assert.Contains(t, out, " loose free\n")
	assert.Contains(t, out, " floor >= 3\n")
}
