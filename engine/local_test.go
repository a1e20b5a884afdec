package engine

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"alphabeta/communication/server"
	"alphabeta/experiments/metrics"
	"alphabeta/game"
	"alphabeta/searcher"
	"alphabeta/searcher/agent"

	"github.com/stretchr/testify/require"
)

type fixedAgent struct {
	move game.Chomp
	err  error
}

func (a fixedAgent) FindMove(context.Context, game.Chomp) (game.Chomp, metrics.SearchMetric, error) {
	return a.move, metrics.SearchMetric{}, a.err
}

func searchAgent(evaluate game.Evaluate) agent.Agent[game.Chomp] {
	ab := searcher.NewAlphaBeta(game.NewAdapter(game.Scorer(evaluate)), searcher.WithMetrics())
	return agent.NewSearchAgent(ab, 10, 0)
}

func TestLocalEngine(t *testing.T) {
	rules := game.NewAdapter(game.Scorer(game.EvaluateNeutral))
	ctx := context.Background()

	t.Run("first player wins self-play", func(t *testing.T) {
		e, err := NewLocalEngine(game.NewChomp(10), rules, searchAgent(game.EvaluateNeutral), searchAgent(game.EvaluateNeutral))
		require.NoError(t, err)

		winner, gameMetric, moveMetrics, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, 0, winner)
		require.Equal(t, 0, gameMetric.Winner)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
		require.Equal(t, 8, e.History()[1].LineLength)
		require.True(t, e.State.IsOver())
		require.Equal(t, game.First, e.State.Winner())
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.Equal(t, i%2, mm.Player)
			require.Positive(t, mm.Nodes)
		}
	})

	t.Run("search beats random as first player", func(t *testing.T) {
		for seed := uint64(0); seed < 10; seed++ {
			e, err := NewLocalEngine(game.NewChomp(13), rules,
				searchAgent(game.EvaluateParity),
				agent.NewRandomAgent(game.Chomp.LegalMoves, seed),
			)
			require.NoError(t, err)

			winner, _, _, err := e.Run(ctx)

			require.NoError(t, err)
			require.Equal(t, 0, winner, "Seed %d", seed)
		}
	})

	t.Run("history is a copy", func(t *testing.T) {
		e, err := NewLocalEngine(game.NewChomp(4), rules, searchAgent(game.EvaluateNeutral), searchAgent(game.EvaluateNeutral))
		require.NoError(t, err)
		_, _, _, err = e.Run(ctx)
		require.NoError(t, err)

		history := e.History()
		history[0] = game.Chomp{}
		require.Equal(t, game.NewChomp(4), e.History()[0])
	})

	t.Run("max moves ends without a winner", func(t *testing.T) {
		e, err := NewLocalEngine(game.NewChomp(10), rules,
			agent.NewRandomAgent(game.Chomp.LegalMoves, 1),
			agent.NewRandomAgent(game.Chomp.LegalMoves, 2),
		)
		require.NoError(t, err)
		e.MaxMoves = 2

		winner, gameMetric, moveMetrics, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, -1, winner)
		require.Equal(t, -1, gameMetric.Winner)
		require.Len(t, moveMetrics, 2)
	})

	t.Run("illegal move falls back to the first legal move", func(t *testing.T) {
		cheat := fixedAgent{move: game.Chomp{ChompedLength: 10, LineLength: 0, Player: game.Second}}
		e, err := NewLocalEngine(game.NewChomp(10), rules, cheat, searchAgent(game.EvaluateNeutral))
		require.NoError(t, err)
		e.MaxMoves = 1

		_, _, _, err = e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.NewChomp(10).Play(1), e.State)
	})

	t.Run("agent error stops the game", func(t *testing.T) {
		broken := fixedAgent{err: errors.New("lost connection")}
		e, err := NewLocalEngine(game.NewChomp(10), rules, broken, searchAgent(game.EvaluateNeutral))
		require.NoError(t, err)

		_, _, _, err = e.Run(ctx)

		require.ErrorContains(t, err, "lost connection")
	})

	t.Run("finished start has no winner", func(t *testing.T) {
		e, err := NewLocalEngine(game.NewChomp(0), rules, searchAgent(game.EvaluateNeutral), searchAgent(game.EvaluateNeutral))
		require.NoError(t, err)

		winner, gameMetric, moveMetrics, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, -1, winner)
		require.Equal(t, -1, gameMetric.Winner)
		require.Zero(t, gameMetric.TotalMoves)
		require.Empty(t, moveMetrics)
	})

	t.Run("too few agents", func(t *testing.T) {
		_, err := NewLocalEngine(game.NewChomp(10), rules, searchAgent(game.EvaluateNeutral))

		require.ErrorIs(t, err, ErrTooFewAgents)
	})

	t.Run("missing rules", func(t *testing.T) {
		_, err := NewLocalEngine(game.NewChomp(10), searcher.Adapter[game.Chomp]{},
			searchAgent(game.EvaluateNeutral), searchAgent(game.EvaluateNeutral))

		require.ErrorIs(t, err, searcher.ErrMissingAdapter)
	})
}

func TestRemoteEngine(t *testing.T) {
	first := httptest.NewServer(server.NewServer(10, 0).Routes())
	defer first.Close()
	second := httptest.NewServer(server.NewServer(10, 0).Routes())
	defer second.Close()

	e, err := NewRemoteEngine(game.NewChomp(10), []string{first.URL, second.URL}, 10, time.Minute)
	require.NoError(t, err)

	winner, gameMetric, _, err := e.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 0, winner)
	require.Equal(t, 5, gameMetric.TotalMoves)
}
