package experiments

import (
	"context"
	"fmt"

	"alphabeta/communication/client"
	"alphabeta/engine"
	"alphabeta/experiments/metrics"
	"alphabeta/game"
	"alphabeta/searcher"
	"alphabeta/searcher/agent"

	"github.com/rs/zerolog/log"
)

type Summary struct {
	Dir         string // Where the records were written
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

// Wins counts the games won by each agent config id.
func (s Summary) Wins() map[int]int {
	wins := map[int]int{}
	for _, record := range s.GameRecords {
		switch record.Winner {
		case 0:
			wins[record.Agent1]++
		case 1:
			wins[record.Agent2]++
		}
	}
	return wins
}

// Run plays config.Games games for each match up, alternating the starting
// agent, and writes the records as CSV under config.OutputDir.
func Run(ctx context.Context, config metrics.ExperimentConfig) (Summary, error) {
	var summary Summary
	if err := config.Validate(); err != nil {
		return summary, fmt.Errorf("invalid experiment config: %w", err)
	}

	log.Info().Str("experiment", config.Name).Int("matchUps", len(config.MatchUps)).Msg("starting experiment")

	count := 0
	for mi, matchUp := range config.MatchUps {
		config1, _ := config.Agent(matchUp.Agent1)
		config2, _ := config.Agent(matchUp.Agent2)
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v", mi+1, len(config.MatchUps), config1, config2)

		for i := 0; i < config.Games; i++ {
			first, second := config1, config2
			if i%2 == 1 {
				first, second = second, first
			}
			count++

			winner, gameMetric, moveMetrics, err := runGame(ctx, config.Length, count, first, second)
			if err != nil {
				return summary, fmt.Errorf("game %d of matchup %d: %w", i+1, mi+1, err)
			}
			summary.GameRecords = append(summary.GameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				summary.MoveRecords = append(summary.MoveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(config.MatchUps), i+1, winner)
		}
	}

	log.Info().Str("experiment", config.Name).Int("games", count).Msg("completed experiment")

	writer, err := metrics.NewWriter(config.OutputDir, config.Name)
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.Dir = writer.Dir()

	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(summary.GameRecords); err != nil {
		return summary, fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(summary.MoveRecords); err != nil {
		return summary, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", summary.Dir).Msg("stored experiment records")

	return summary, nil
}

// runGame executes a single chomp game between two agents and returns the
// index of the winner
func runGame(ctx context.Context, length, id int, config1, config2 metrics.AgentConfig) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := createAgent(config1, id)
	if err != nil {
		return -1, metrics.GameMetric{}, nil, err
	}
	agent2, err := createAgent(config2, id)
	if err != nil {
		return -1, metrics.GameMetric{}, nil, err
	}

	rules := game.NewAdapter(game.Scorer(game.EvaluateNeutral))
	e, err := engine.NewLocalEngine(game.NewChomp(length), rules, agent1, agent2)
	if err != nil {
		return -1, metrics.GameMetric{}, nil, err
	}
	return e.Run(ctx)
}

func createAgent(config metrics.AgentConfig, gameID int) (agent.Agent[game.Chomp], error) {
	switch config.Kind {
	case metrics.KindRandom:
		// Every game gets its own sequence
		return agent.NewRandomAgent(game.Chomp.LegalMoves, config.Seed+uint64(gameID)), nil
	case metrics.KindRemote:
		return agent.NewRemoteAgent(client.NewClient(config.URL, nil), config.Depth, config.Duration, config.Evaluation), nil
	case metrics.KindSearch:
		evaluate, err := evaluation(config.Evaluation)
		if err != nil {
			return nil, err
		}
		ab := searcher.NewAlphaBeta(
			game.NewAdapter(game.Scorer(evaluate)),
			searcher.WithMetrics(),
		)
		return agent.NewSearchAgent(ab, config.Depth, config.Duration), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
}

func evaluation(name string) (game.Evaluate, error) {
	if name == "" {
		return game.EvaluateNeutral, nil
	}
	evaluate, ok := game.Evaluations[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluation %q", name)
	}
	return evaluate, nil
}
