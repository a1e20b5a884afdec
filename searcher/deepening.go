package searcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"alphabeta/experiments/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// run is one independent iterative deepening search over the configuration
// captured when it started.
type run[S any] struct {
	id       string
	ctx      context.Context
	adapter  Adapter[S]
	root     S
	maxDepth int

	terminalScore float64
	scoreTimeout  time.Duration
	metrics       metrics.Collector
	logger        zerolog.Logger
	tracker       *tracker[S]

	best    Prediction[S] // Last completed depth of this run
	limit   int           // Depth of the current iteration
	horizon bool          // Set when the current iteration cut a line at depth 0

	mu    sync.Mutex
	fault error
}

func newRun[S any](ctx context.Context, adapter Adapter[S], root S, maxDepth int, s *settings, t *tracker[S]) *run[S] {
	id := uuid.NewString()
	return &run[S]{
		id:            id,
		ctx:           ctx,
		adapter:       adapter,
		root:          root,
		maxDepth:      maxDepth,
		terminalScore: s.terminalScore,
		scoreTimeout:  s.scoreTimeout,
		metrics:       s.metrics,
		logger:        s.logger.With().Str("run", id).Logger(),
		tracker:       t,
	}
}

// execute deepens one depth at a time until the search is exhausted or the
// deadline has passed. The deadline is only checked between iterations: an
// iteration that has started always completes.
func (r *run[S]) execute(deadline time.Time) (result Result[S]) {
	r.metrics.Start(r.id, r.maxDepth)
	r.logger.Debug().Int("maxDepth", r.maxDepth).Time("deadline", deadline).Msg("search started")

	defer func() {
		if p := recover(); p != nil {
			result = r.result(fmt.Errorf("%w: %v", ErrAdapterPanic, p))
		}
		r.metrics.SetExhausted(result.Exhausted)
		metric := r.metrics.Complete()
		result.Metric = metric

		event := r.logger.Debug()
		if result.Err != nil {
			event = r.logger.Warn().Err(result.Err)
		}
		event.Int("depth", result.Depth).
			Float64("score", result.Score).
			Bool("found", result.Found).
			Bool("exhausted", result.Exhausted).
			Bool("timedOut", result.TimedOut).
			Int("nodes", metric.Nodes).
			Msg("search completed")
	}()

	for depth := 1; ; depth++ {
		if err := r.ctx.Err(); err != nil {
			return r.result(err)
		}

		exhausted, err := r.iterate(depth)
		if err != nil {
			return r.result(err)
		}
		if exhausted {
			result = r.result(nil)
			result.Exhausted = true
			return result
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			result = r.result(nil)
			result.TimedOut = true
			return result
		}
	}
}

// iterate searches the root to the given depth with a full window and commits
// the result. It reports whether deeper iterations are pointless.
func (r *run[S]) iterate(depth int) (bool, error) {
	r.limit = depth
	r.horizon = false

	score, line, err := r.evaluate(r.root, depth, -infinity, infinity)
	if err != nil {
		return false, err
	}
	if err := r.failure(); err != nil {
		return false, err
	}

	r.best = newPrediction(line, score, depth)
	r.tracker.commit(r.best)
	r.metrics.CompleteDepth(depth)
	r.logger.Debug().Int("depth", depth).Float64("score", score).Int("line", len(line)).Msg("depth completed")

	// A root without moves, a depth limit, or a tree that was searched to
	// the end on every line
	return len(line) == 0 || depth >= r.maxDepth || !r.horizon, nil
}

func (r *run[S]) result(err error) Result[S] {
	return Result[S]{
		Move:  r.best.Move,
		Found: r.best.Found,
		Line:  append([]S(nil), r.best.Line...),
		Score: r.best.Score,
		Depth: r.best.Depth,
		RunID: r.id,
		Err:   err,
	}
}

func (r *run[S]) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fault == nil {
		r.fault = err
		r.logger.Warn().Err(err).Msg("adapter contract violated")
	}
}

func (r *run[S]) failure() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.fault
}
