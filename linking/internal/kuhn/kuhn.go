// Package kuhn implements the Kuhn algorithm for maximum cardinality matching in an unweighted bipartite graph.
package kuhn

// Unmatched marks an unmatched vertex index in match slices.
const Unmatched = -1

// Matcher computes maximum cardinality matching in an unweighted bipartite graph using DFS augmenting paths.
type Matcher struct {
	leftSize   int     // leftSize is the number of vertices on the left side.
	rightSize  int     // rightSize is the number of vertices on the right side.
	leftAdj    [][]int // leftAdj is the adjacency list from left to right.
	matchRight []int   // matchRight stores the current matching from right to left.
	visitMark  []int   // visitMark stores the last visitStamp when a left vertex was visited during DFS.
	visitStamp int     // visitStamp is incremented per DFS attempt to avoid clearing visitMark each time.
}

// New creates a Matcher for a bipartite graph with the given sizes.
func New(leftSize int, rightSize int) *Matcher {
	m := &Matcher{
		leftSize:   leftSize,
		rightSize:  rightSize,
		leftAdj:    make([][]int, leftSize),
		matchRight: make([]int, rightSize),
		visitMark:  make([]int, leftSize),
		visitStamp: 1,
	}
	for right := range m.matchRight {
		m.matchRight[right] = Unmatched
	}
	return m
}

// AddEdge adds an edge from a left vertex to a right vertex.
func (m *Matcher) AddEdge(left int, right int) {
	m.leftAdj[left] = append(m.leftAdj[left], right)
}

// Match computes a maximum matching and returns it from the left side:
// matchLeft[left] is the matched right vertex, or Unmatched.
func (m *Matcher) Match() []int {
	for left := 0; left < m.leftSize; left++ {
		m.visitStamp++
		m.findAugmentingPath(left)
	}
	matchLeft := make([]int, m.leftSize)
	for left := range matchLeft {
		matchLeft[left] = Unmatched
	}
	for right, left := range m.matchRight {
		if left != Unmatched {
			matchLeft[left] = right
		}
	}
	return matchLeft
}

// findAugmentingPath attempts to find an augmenting path starting from the given left vertex.
// It returns true if it can increase the matching (or rewire it) to match this left vertex.
func (m *Matcher) findAugmentingPath(left int) bool {
	if m.visitMark[left] == m.visitStamp {
		return false
	}
	m.visitMark[left] = m.visitStamp
	for _, right := range m.leftAdj[left] {
		previousLeft := m.matchRight[right]
		if previousLeft == Unmatched || m.findAugmentingPath(previousLeft) {
			m.matchRight[right] = left
			return true
		}
	}
	return false
}
