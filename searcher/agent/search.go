package agent

import (
	"context"
	"fmt"
	"time"

	"alphabeta/experiments/metrics"
	"alphabeta/searcher"

	"github.com/rs/zerolog/log"
)

type searchAgent[S any] struct {
	ab     *searcher.AlphaBeta[S]
	depth  int
	budget time.Duration
}

// NewSearchAgent returns an agent playing the first move of the principal
// variation found by ab. The search deepens up to depth (0 uses the engine
// default) and stops deepening once budget has passed (0 means no budget).
func NewSearchAgent[S any](ab *searcher.AlphaBeta[S], depth int, budget time.Duration) Agent[S] {
	return &searchAgent[S]{ab: ab, depth: depth, budget: budget}
}

func (a *searchAgent[S]) FindMove(ctx context.Context, state S) (S, metrics.SearchMetric, error) {
	var move S
	if err := a.ab.Setup(state, a.depth); err != nil {
		return move, metrics.SearchMetric{}, err
	}

	var deadline time.Time
	if a.budget > 0 {
		deadline = time.Now().Add(a.budget)
	}
	result, err := a.ab.Search(ctx, deadline)
	if err != nil && !result.Found {
		return move, result.Metric, fmt.Errorf("search failed: %w", err)
	}
	if !result.Found {
		return move, result.Metric, ErrNoMove
	}
	if err != nil {
		// A failed deeper iteration still leaves a completed depth to play from
		log.Warn().Err(err).Int("depth", result.Depth).Msg("playing the last completed depth")
	}
	return result.Move, result.Metric, nil
}
