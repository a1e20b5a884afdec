package searcher

import (
	"fmt"
	"sync/atomic"
	"time"
)

// evaluate returns the negamax value of state from its side to move's
// perspective, together with the best line below it.
//
// Children are searched one at a time in generation order with the window
// (-beta, -alpha). The first child reaching the best value is kept, and the
// remaining children are skipped once the best value reaches beta.
func (r *run[S]) evaluate(state S, depth int, alpha, beta float64) (float64, []S, error) {
	r.metrics.AddNode()

	if r.adapter.CheckWinConditions(state) {
		score, err := r.score(state)
		if r.terminalScore > 0 {
			// The side to move lost, the sooner the worse
			score += float64(r.limit-depth) - r.terminalScore
		}
		return score, nil, err
	}
	if depth == 0 {
		r.horizon = true
		score, err := r.score(state)
		return score, nil, err
	}

	children := r.adapter.GenerateMoves(state)
	if len(children) == 0 {
		score, err := r.score(state)
		return score, nil, err
	}

	best := -infinity
	var line []S
	for _, child := range children {
		value, childLine, err := r.evaluate(child, depth-1, -beta, -alpha)
		if err != nil {
			return 0, nil, err
		}
		value = -value

		if line == nil || value > best {
			best = value
			line = append([]S{child}, childLine...)
		}
		alpha = max(alpha, best)
		if best >= beta {
			r.metrics.AddCutoff()
			break
		}
	}
	return best, line, nil
}

// score suspends the search until the adapter reports the score of a leaf.
func (r *run[S]) score(state S) (float64, error) {
	r.metrics.AddLeaf()

	scored := make(chan float64, 1)
	var calls atomic.Int32
	r.adapter.Score(state, func(score float64) {
		if calls.Add(1) > 1 {
			r.fail(ErrAdapterContract)
			return
		}
		scored <- score
	})

	var timeout <-chan time.Time
	if r.scoreTimeout > 0 {
		timer := time.NewTimer(r.scoreTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case score := <-scored:
		return score, r.failure()
	case <-timeout:
		return 0, fmt.Errorf("%w: waited %s", ErrScoreTimeout, r.scoreTimeout)
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	}
}
