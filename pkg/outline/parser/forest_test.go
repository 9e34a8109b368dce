package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForestLink(t *testing.T) {
	f := NewForest()
	f.AddNode(0, "Region")
	f.AddNode(1, "North")
	f.AddNode(2, "Bus")
	f.AddNode(5, "South")

	assert.True(t, f.Link(0, 1))
	assert.True(t, f.Link(1, 2))
	assert.False(t, f.Link(5, 2), "second parent is refused")
	assert.False(t, f.Link(2, 2), "self link is refused")
	assert.False(t, f.Link(5, 1), "backward link is refused")

	p, ok := f.Parent(2)
	assert.True(t, ok)
	assert.Equal(t, 1, p)
	assert.Equal(t, 4, f.Len())
}

func TestForestTraversal(t *testing.T) {
	f := NewForest()
	for row, label := range []string{"Region", "North", "Bus", "Car", "South"} {
		f.AddNode(row, label)
	}
	f.Link(0, 3)
	f.Link(0, 1)
	f.Link(1, 2)

	assert.Equal(t, []int{1, 3}, f.Children(0))
	assert.Equal(t, []int{0, 4}, f.Roots())
	assert.Equal(t, []string{"Region", "North"}, f.Ancestors(2))
	assert.Empty(t, f.Ancestors(0))

	label, ok := f.Label(4)
	assert.True(t, ok)
	assert.Equal(t, "South", label)
	assert.False(t, f.HasNode(9))
}
