package agent

import (
	"context"
	"errors"

	"alphabeta/experiments/metrics"
)

// ErrNoMove is returned when the state has no move to choose from.
var ErrNoMove = errors.New("no legal move")

type Agent[S any] interface {
	// FindMove returns the chosen successor of state and performance metrics (if collected) from the search
	FindMove(ctx context.Context, state S) (S, metrics.SearchMetric, error)
}
