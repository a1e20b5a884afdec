package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alphabeta/experiments/metrics"
	"alphabeta/searcher"
	"alphabeta/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// ErrTooFewAgents is returned when fewer than two agents are given.
var ErrTooFewAgents = errors.New("need at least two agents")

// LocalEngine plays agents against each other in turn, starting with
// Agents[0]. The rules are the same functions the searcher explores.
type LocalEngine[S comparable] struct {
	State    S
	Agents   []agent.Agent[S]
	MaxMoves int

	rules   searcher.Adapter[S]
	history []S
}

func NewLocalEngine[S comparable](state S, rules searcher.Adapter[S], agents ...agent.Agent[S]) (*LocalEngine[S], error) {
	if len(agents) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewAgents, len(agents))
	}
	if rules.GenerateMoves == nil || rules.CheckWinConditions == nil {
		return nil, fmt.Errorf("%w: rules need a move generator and a win condition check", searcher.ErrMissingAdapter)
	}
	return &LocalEngine[S]{
		State:    state,
		Agents:   agents,
		MaxMoves: MaxMoves,
		rules:    rules,
		history:  []S{state},
	}, nil
}

// Run executes the entire game loop. The winner is the index of the agent
// that completed a win, or -1 if the game ended without one.
func (e *LocalEngine[S]) Run(ctx context.Context) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: 0,
		Winner:         -1,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	finish := func() metrics.GameMetric {
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = len(moveMetrics)
		return gameMetric
	}

	player := 0
	for step := 1; step <= e.MaxMoves; step++ {
		if e.rules.CheckWinConditions(e.State) {
			// The previous player moved into the winning state, if anyone moved
			if len(moveMetrics) > 0 {
				gameMetric.Winner = (player + len(e.Agents) - 1) % len(e.Agents)
			}
			break
		}
		legal := e.rules.GenerateMoves(e.State)
		if len(legal) == 0 {
			break
		}

		move, searchMetric, err := e.Agents[player].FindMove(ctx, e.State)
		if err != nil {
			return -1, finish(), moveMetrics, fmt.Errorf("agent %d failed at move %d: %w", player, step, err)
		}
		if !slices.Contains(legal, move) {
			log.Warn().Int("player", player).Int("step", step).Msgf("illegal move %v, playing %v instead", move, legal[0])
			move = legal[0]
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			SearchMetric: searchMetric,
		})
		log.Debug().Int("player", player).Int("step", step).Msgf("played %v", move)

		e.State = move
		e.history = append(e.history, move)
		player = (player + 1) % len(e.Agents)
	}
	if gameMetric.Winner < 0 && len(moveMetrics) > 0 && e.rules.CheckWinConditions(e.State) {
		gameMetric.Winner = (player + len(e.Agents) - 1) % len(e.Agents)
	}

	if gameMetric.Winner >= 0 {
		log.Info().Int("winner", gameMetric.Winner).Int("moves", len(moveMetrics)).Msg("game ended with a winner")
	} else {
		log.Info().Int("moves", len(moveMetrics)).Msg("game ended without a winner")
	}
	return gameMetric.Winner, finish(), moveMetrics, nil
}

// History returns every state of the game so far, starting with the initial one.
func (e *LocalEngine[S]) History() []S {
	return slices.Clone(e.history)
}
