package experiments

import (
	"time"

	"alphabeta/experiments/metrics"
)

const (
	NumGames   = 30 // Per match up
	LineLength = 21
	TimeBudget = 10 * time.Millisecond
)

// Presets are the experiments run when no config file is given.
func Presets(outputDir string) []metrics.ExperimentConfig {
	baseline := metrics.AgentConfig{ID: 0, Kind: metrics.KindRandom}

	// Each matchup pairs a search agent of growing depth against the random baseline
	depthConfigs := []metrics.AgentConfig{baseline}
	depthMatchUps := []metrics.MatchUp{}
	for depth := 1; depth <= 6; depth++ {
		depthConfigs = append(depthConfigs, metrics.AgentConfig{ID: depth, Kind: metrics.KindSearch, Depth: depth})
		depthMatchUps = append(depthMatchUps, metrics.MatchUp{Agent1: baseline.ID, Agent2: depth})
	}

	// A cheap informed scorer against a deep uninformed one, both time boxed
	evaluationConfigs := []metrics.AgentConfig{
		{ID: 1, Kind: metrics.KindSearch, Depth: 2, Duration: TimeBudget, Evaluation: "parity"},
		{ID: 2, Kind: metrics.KindSearch, Depth: 20, Duration: TimeBudget, Evaluation: "neutral"},
	}

	return []metrics.ExperimentConfig{
		{
			Name:      "depth",
			Games:     NumGames,
			Length:    LineLength,
			OutputDir: outputDir,
			Agents:    depthConfigs,
			MatchUps:  depthMatchUps,
		},
		{
			Name:      "evaluation",
			Games:     NumGames,
			Length:    LineLength,
			OutputDir: outputDir,
			Agents:    evaluationConfigs,
			MatchUps:  []metrics.MatchUp{{Agent1: 1, Agent2: 2}},
		},
	}
}
