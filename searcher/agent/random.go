package agent

import (
	"context"
	"sync"

	"alphabeta/experiments/metrics"

	"golang.org/x/exp/rand"
)

type randomAgent[S any] struct {
	generate func(S) []S

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent choosing uniformly among the moves
// listed by generate.
func NewRandomAgent[S any](generate func(S) []S, seed uint64) Agent[S] {
	return &randomAgent[S]{
		generate: generate,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (a *randomAgent[S]) FindMove(_ context.Context, state S) (S, metrics.SearchMetric, error) {
	moves := a.generate(state)
	if len(moves) == 0 {
		var none S
		return none, metrics.SearchMetric{}, ErrNoMove
	}

	a.mu.Lock()
	i := a.rng.Intn(len(moves))
	a.mu.Unlock()
	return moves[i], metrics.SearchMetric{}, nil
}
