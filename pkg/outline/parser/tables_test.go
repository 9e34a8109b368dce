package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid([][]string{
		{"", "Fleet", "1"},
		{""},
		{"", "Bus"},
	}, 1)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.Width)
	assert.Equal(t, []string{"Fleet", "1"}, g.Cells[0])
	assert.Equal(t, []string{"", ""}, g.Cells[1])
	assert.Equal(t, "Bus", g.Cell(2, 0))
	assert.Equal(t, "", g.Cell(2, 7))
	assert.Equal(t, "", g.Cell(-1, 0))

	g.SetCell(1, 0, "Car")
	g.SetCell(9, 0, "ignored")
	assert.Equal(t, "Car", g.Cell(1, 0))
}

func TestDetectDataBounds(t *testing.T) {
	g := NewGrid([][]string{
		{"", "", ""},
		{"", "x", ""},
		{"", "", "y"},
		{" ", "", ""},
	}, 0)

	b := DetectDataBounds(g)
	assert.Equal(t, DataBounds{MinRow: 1, MaxRow: 2, MinCol: 1, MaxCol: 2}, b)
	assert.False(t, b.Empty())

	assert.True(t, DetectDataBounds(NewGrid(nil, 0)).Empty())
}

func TestTrimTrailing(t *testing.T) {
	g := NewGrid([][]string{{"a"}, {"b"}, {""}, {"  "}}, 0)
	TrimTrailing(g)
	assert.Equal(t, 2, g.Len())
	assert.Len(t, g.Levels, 2)

	empty := NewGrid([][]string{{""}, {""}}, 0)
	TrimTrailing(empty)
	assert.Equal(t, 0, empty.Len())
}

func TestFindFirstDataRow(t *testing.T) {
	g := NewGrid([][]string{{"Title"}, {"Header"}, {""}, {"Fleet"}}, 0)

	assert.Equal(t, 3, FindFirstDataRow(g, 1, 0))
	assert.Equal(t, 0, FindFirstDataRow(g, -1, 0))
	assert.Equal(t, -1, FindFirstDataRow(g, 3, 0))
}
