package kuhn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPerfect(t *testing.T) {
	m := New(2, 2)
	m.AddEdge(0, 0)
	m.AddEdge(0, 1)
	m.AddEdge(1, 0)
	match := m.Match()
	assert.Len(t, match, 2)
	assert.NotEqual(t, Unmatched, match[0])
	assert.NotEqual(t, Unmatched, match[1])
	assert.NotEqual(t, match[0], match[1])
}

func TestMatchRequiresRewiring(t *testing.T) {
	// Left 0 prefers right 0, but left 1 can only use right 0,
	// so a full matching needs left 0 rerouted to right 1.
	m := New(2, 2)
	m.AddEdge(0, 0)
	m.AddEdge(0, 1)
	m.AddEdge(1, 0)
	match := m.Match()
	assert.Equal(t, 1, match[0])
	assert.Equal(t, 0, match[1])
}

func TestMatchPartial(t *testing.T) {
	// Both left vertices compete for the single right vertex.
	m := New(2, 1)
	m.AddEdge(0, 0)
	m.AddEdge(1, 0)
	match := m.Match()
	matched := 0
	for _, right := range match {
		if right != Unmatched {
			matched++
		}
	}
	assert.Equal(t, 1, matched)
}

func TestMatchNoEdges(t *testing.T) {
	m := New(3, 2)
	match := m.Match()
	assert.Equal(t, []int{Unmatched, Unmatched, Unmatched}, match)
}

func TestMatchEmpty(t *testing.T) {
	m := New(0, 0)
	assert.Empty(t, m.Match())
}
