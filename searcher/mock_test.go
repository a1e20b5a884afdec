package searcher

import (
	"sync"

	"golang.org/x/exp/rand"
)

type mockNode struct {
	id       int
	score    float64
	terminal bool
	children []*mockNode
}

// mockTree records every scored node in the order the searcher asked for it.
type mockTree struct {
	sync.Mutex
	scored []int
}

func (m *mockTree) adapter() Adapter[*mockNode] {
	return Adapter[*mockNode]{
		Score: func(n *mockNode, done func(float64)) {
			m.record(n)
			done(n.score)
		},
		GenerateMoves: func(n *mockNode) []*mockNode {
			return n.children
		},
		CheckWinConditions: func(n *mockNode) bool {
			return n.terminal
		},
	}
}

// asyncAdapter reports every score from a new goroutine.
func (m *mockTree) asyncAdapter() Adapter[*mockNode] {
	a := m.adapter()
	a.Score = func(n *mockNode, done func(float64)) {
		m.record(n)
		go done(n.score)
	}
	return a
}

func (m *mockTree) record(n *mockNode) {
	m.Lock()
	defer m.Unlock()

	m.scored = append(m.scored, n.id)
}

func (m *mockTree) calls() []int {
	m.Lock()
	defer m.Unlock()

	return append([]int(nil), m.scored...)
}

func leaf(id int, score float64) *mockNode {
	return &mockNode{id: id, score: score}
}

func branch(id int, children ...*mockNode) *mockNode {
	return &mockNode{id: id, children: children}
}

// randomTree builds a tree with ties, terminal nodes and move-less nodes.
func randomTree(rng *rand.Rand, depth int, next *int) *mockNode {
	*next++
	n := &mockNode{id: *next, score: float64(rng.Intn(21) - 10)}
	if depth == 0 {
		return n
	}
	if rng.Float64() < 0.15 {
		n.terminal = true
		return n
	}
	for i := rng.Intn(5); i > 0; i-- {
		n.children = append(n.children, randomTree(rng, depth-1, next))
	}
	return n
}

// negamax is the plain minimax value of n without pruning.
func negamax(n *mockNode, depth, ply int) float64 {
	if n.terminal {
		return n.score - TerminalScore + float64(ply)
	}
	if depth == 0 || len(n.children) == 0 {
		return n.score
	}
	best := -infinity
	for _, child := range n.children {
		best = max(best, -negamax(child, depth-1, ply+1))
	}
	return best
}

// firstBest is the first root child reaching the negamax value of the root.
func firstBest(root *mockNode, depth int) *mockNode {
	var move *mockNode
	best := -infinity
	for _, child := range root.children {
		if value := -negamax(child, depth-1, 1); move == nil || value > best {
			best, move = value, child
		}
	}
	return move
}
