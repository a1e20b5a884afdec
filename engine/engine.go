package engine

import (
	"context"

	"alphabeta/experiments/metrics"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays a game till there's a winner, no move is left or a max number of moves is reached
	Run(ctx context.Context) (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
