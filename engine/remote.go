package engine

import (
	"time"

	"alphabeta/communication/client"
	"alphabeta/game"
	"alphabeta/searcher/agent"
)

// NewRemoteEngine returns an engine playing a chomp game between agent servers, one per URL.
func NewRemoteEngine(state game.Chomp, urls []string, depth int, budget time.Duration) (*LocalEngine[game.Chomp], error) {
	agents := make([]agent.Agent[game.Chomp], len(urls))
	for i, url := range urls {
		agents[i] = agent.NewRemoteAgent(client.NewClient(url, nil), depth, budget, "")
	}
	return NewLocalEngine(state, game.NewAdapter(game.Scorer(game.EvaluateNeutral)), agents...)
}
