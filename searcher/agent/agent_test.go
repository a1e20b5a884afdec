package agent_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"alphabeta/communication/client"
	"alphabeta/communication/server"
	"alphabeta/game"
	"alphabeta/searcher"
	"alphabeta/searcher/agent"

	"github.com/stretchr/testify/require"
)

var winningMove = game.Chomp{ChompedLength: 2, LineLength: 8, Player: game.Second}

func TestSearchAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("plays the winning chomp", func(t *testing.T) {
		ab := searcher.NewAlphaBeta(game.NewAdapter(game.Scorer(game.EvaluateNeutral)), searcher.WithMetrics())
		a := agent.NewSearchAgent(ab, 10, 0)

		move, metric, err := a.FindMove(ctx, game.NewChomp(10))

		require.NoError(t, err)
		require.Equal(t, winningMove, move)
		require.Positive(t, metric.Nodes)
		require.Positive(t, metric.Depth)
	})

	t.Run("reuses its engine across moves", func(t *testing.T) {
		ab := searcher.NewAlphaBeta(game.NewAdapter(game.Scorer(game.EvaluateParity)))
		a := agent.NewSearchAgent(ab, 2, time.Second)

		for _, length := range []int{10, 7, 6, 5} {
			move, _, err := a.FindMove(ctx, game.NewChomp(length))
			require.NoError(t, err)
			require.Zero(t, move.LineLength%4, "Should leave a multiple of 4 from %d", length)
		}
	})

	t.Run("no move in a finished game", func(t *testing.T) {
		ab := searcher.NewAlphaBeta(game.NewAdapter(game.Scorer(game.EvaluateNeutral)))
		a := agent.NewSearchAgent(ab, 3, 0)

		_, _, err := a.FindMove(ctx, game.NewChomp(0))

		require.ErrorIs(t, err, agent.ErrNoMove)
	})

	t.Run("invalid depth", func(t *testing.T) {
		ab := searcher.NewAlphaBeta(game.NewAdapter(game.Scorer(game.EvaluateNeutral)))
		a := agent.NewSearchAgent(ab, -1, 0)

		_, _, err := a.FindMove(ctx, game.NewChomp(4))

		require.ErrorIs(t, err, searcher.ErrInvalidDepth)
	})
}

func TestRandomAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("plays legal moves", func(t *testing.T) {
		a := agent.NewRandomAgent(game.Chomp.LegalMoves, 42)
		state := game.NewChomp(10)

		seen := map[int]bool{}
		for i := 0; i < 100; i++ {
			move, _, err := a.FindMove(ctx, state)
			require.NoError(t, err)
			require.Contains(t, state.LegalMoves(), move)
			seen[move.ChompedLength] = true
		}
		require.Len(t, seen, 3, "Every chomp should eventually be played")
	})

	t.Run("same seed same moves", func(t *testing.T) {
		a := agent.NewRandomAgent(game.Chomp.LegalMoves, 7)
		b := agent.NewRandomAgent(game.Chomp.LegalMoves, 7)

		for i := 0; i < 20; i++ {
			moveA, _, _ := a.FindMove(ctx, game.NewChomp(10))
			moveB, _, _ := b.FindMove(ctx, game.NewChomp(10))
			require.Equal(t, moveA, moveB)
		}
	})

	t.Run("no move in a finished game", func(t *testing.T) {
		a := agent.NewRandomAgent(game.Chomp.LegalMoves, 1)

		_, _, err := a.FindMove(ctx, game.NewChomp(0))

		require.ErrorIs(t, err, agent.ErrNoMove)
	})
}

func TestRemoteAgent(t *testing.T) {
	srv := httptest.NewServer(server.NewServer(10, 0).Routes())
	defer srv.Close()
	ctx := context.Background()

	t.Run("plays the winning chomp", func(t *testing.T) {
		a := agent.NewRemoteAgent(client.NewClient(srv.URL, srv.Client()), 10, time.Minute, "neutral")

		move, metric, err := a.FindMove(ctx, game.NewChomp(10))

		require.NoError(t, err)
		require.Equal(t, winningMove, move)
		require.Positive(t, metric.Nodes)
	})

	t.Run("no move in a finished game", func(t *testing.T) {
		a := agent.NewRemoteAgent(client.NewClient(srv.URL, srv.Client()), 10, 0, "")

		_, _, err := a.FindMove(ctx, game.NewChomp(0))

		require.ErrorIs(t, err, agent.ErrNoMove)
	})
}
