// Package searcher implements iterative-deepening negamax search with
// alpha-beta pruning over states supplied by a pluggable Adapter.
package searcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"alphabeta/experiments/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(s *settings)

type settings struct {
	maxDepth      int
	terminalScore float64
	scoreTimeout  time.Duration
	metrics       metrics.Collector
	logger        zerolog.Logger
}

// AlphaBeta searches for the best move from a configured root state. At most
// one run is in flight at a time; the result of the last completed depth of
// the current run is always available through Prediction.
type AlphaBeta[S any] struct {
	adapter Adapter[S]
	settings

	mu         sync.Mutex
	root       S
	depth      int
	configured bool
	running    bool
	cancel     context.CancelFunc

	tracker tracker[S]
}

// WithMaxDepth sets the depth used when Setup is called with a max depth of 0.
func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithTerminalScore sets the reward for completing a win. 0 leaves terminal
// states to the adapter's score function alone.
func WithTerminalScore(score float64) Option {
	return func(s *settings) {
		if score >= 0 {
			s.terminalScore = score
		}
	}
}

// WithScoreTimeout fails a run whose score callback is not invoked within d.
func WithScoreTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.scoreTimeout = d
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(s *settings) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func NewAlphaBeta[S any](adapter Adapter[S], options ...Option) *AlphaBeta[S] {
	ab := &AlphaBeta[S]{ // Default values
		adapter: adapter,
		settings: settings{
			maxDepth:      DefaultMaxDepth,
			terminalScore: TerminalScore,
			metrics:       metrics.NewDummyCollector(),
			logger:        log.Logger,
		},
	}
	for _, option := range options {
		option(&ab.settings)
	}
	return ab
}

// Setup replaces the root state and max depth and clears the last prediction.
// A max depth of 0 selects the engine default (see WithMaxDepth) instead of
// being rejected; only negative depths are configuration errors.
func (ab *AlphaBeta[S]) Setup(root S, maxDepth int) error {
	if err := ab.adapter.validate(); err != nil {
		return err
	}
	if maxDepth < 0 {
		return configError(ErrInvalidDepth, fmt.Sprintf("got %d", maxDepth))
	}
	if maxDepth == 0 {
		maxDepth = ab.maxDepth
	}

	ab.mu.Lock()
	defer ab.mu.Unlock()

	if ab.running {
		return ErrRunInProgress
	}
	ab.root = root
	ab.depth = maxDepth
	ab.configured = true
	ab.tracker.reset()
	return nil
}

// Prediction returns the best line of the last fully completed depth.
func (ab *AlphaBeta[S]) Prediction() Prediction[S] {
	return ab.tracker.snapshot()
}

// Running reports whether a run is in flight.
func (ab *AlphaBeta[S]) Running() bool {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	return ab.running
}

// Stop cancels the run in flight at its next suspension point. The last
// completed depth stays available.
func (ab *AlphaBeta[S]) Stop() {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	if ab.cancel != nil {
		ab.cancel()
	}
}

func (ab *AlphaBeta[S]) begin(ctx context.Context) (*run[S], error) {
	if err := ab.adapter.validate(); err != nil {
		return nil, err
	}

	ab.mu.Lock()
	defer ab.mu.Unlock()

	if !ab.configured {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, ErrNotConfigured)
	}
	if ab.running {
		return nil, ErrRunInProgress
	}

	ctx, cancel := context.WithCancel(ctx)
	ab.running = true
	ab.cancel = cancel

	return newRun(ctx, ab.adapter, ab.root, ab.depth, &ab.settings, &ab.tracker), nil
}

func (ab *AlphaBeta[S]) finish() {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	ab.running = false
	if ab.cancel != nil {
		ab.cancel()
		ab.cancel = nil
	}
}
