package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"alphabeta/communication/server"
	"alphabeta/engine"
	"alphabeta/experiments"
	"alphabeta/experiments/metrics"
	"alphabeta/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "experiment", "experiment, serve or play")
	config := flag.String("config", "", "Experiment config file, presets are run if empty")
	output := flag.String("output", "experiments", "Directory for experiment records")
	addr := flag.String("addr", ":8080", "Agent server address")
	depth := flag.Int("depth", 0, "Max search depth, 0 uses the engine default")
	budget := flag.Duration("budget", 0, "Search time per move, 0 searches until exhausted")
	length := flag.Int("length", 21, "Units on the line for a played game")
	agents := flag.String("agents", "", "Comma separated agent server URLs for a played game")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "experiment":
		runExperiments(ctx, *config, *output)
	case "serve":
		if err := server.NewServer(*depth, *budget).ListenAndServe(ctx, *addr); err != nil {
			log.Fatal().Err(err).Msg("agent server stopped")
		}
	case "play":
		playGame(ctx, *length, *agents, *depth, *budget)
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

func runExperiments(ctx context.Context, path, output string) {
	configs := experiments.Presets(output)
	if path != "" {
		config, err := metrics.LoadConfig(path)
		if err != nil {
			log.Fatal().Err(err).Str("config", path).Msg("failed to load experiment config")
		}
		configs = []metrics.ExperimentConfig{config}
	}

	for _, config := range configs {
		summary, err := experiments.Run(ctx, config)
		if err != nil {
			log.Fatal().Err(err).Str("experiment", config.Name).Msg("experiment failed")
		}
		log.Info().Str("experiment", config.Name).Interface("wins", summary.Wins()).Msg("experiment summary")
	}
}

func playGame(ctx context.Context, length int, agents string, depth int, budget time.Duration) {
	urls := strings.Split(agents, ",")
	if agents == "" || len(urls) < 2 {
		log.Fatal().Msg("play needs at least two agent server URLs")
	}

	e, err := engine.NewRemoteEngine(game.NewChomp(length), urls, depth, budget)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create engine")
	}
	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}
	for step, state := range e.History() {
		log.Info().Int("step", step).Stringer("state", state).Send()
	}
	log.Info().Int("winner", winner).Dur("duration", gameMetric.Duration).Msg("game over")
}
