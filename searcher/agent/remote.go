package agent

import (
	"context"
	"time"

	"alphabeta/communication"
	"alphabeta/communication/client"
	"alphabeta/experiments/metrics"
	"alphabeta/game"
)

type remoteAgent struct {
	client     *client.Client
	depth      int
	budget     time.Duration
	evaluation string
}

// NewRemoteAgent returns a chomp agent delegating its search to an agent
// server.
func NewRemoteAgent(c *client.Client, depth int, budget time.Duration, evaluation string) Agent[game.Chomp] {
	return &remoteAgent{client: c, depth: depth, budget: budget, evaluation: evaluation}
}

func (a *remoteAgent) FindMove(ctx context.Context, state game.Chomp) (game.Chomp, metrics.SearchMetric, error) {
	response, err := a.client.FindMove(ctx, communication.FindMoveRequest{
		State:      state,
		Depth:      a.depth,
		BudgetMs:   int(a.budget / time.Millisecond),
		Evaluation: a.evaluation,
	})
	if err != nil {
		return game.Chomp{}, metrics.SearchMetric{}, err
	}
	if !response.Found {
		return game.Chomp{}, response.Metric, ErrNoMove
	}
	return response.Move, response.Metric, nil
}
