package searcher

import (
	"context"
	"time"

	"alphabeta/experiments/metrics"
)

// Result is the outcome of a run. Found is false when the root had no move to
// report, which is not an error.
type Result[S any] struct {
	Move      S
	Found     bool
	Line      []S
	Score     float64
	Depth     int  // Last completed depth
	Exhausted bool // Deeper search could not change the result
	TimedOut  bool // Stopped by the deadline before being exhausted
	RunID     string
	Metric    metrics.SearchMetric
	Err       error
}

// AllSteps deepens until the search is exhausted, then calls done exactly
// once. It returns immediately; the search runs on its own goroutine.
func (ab *AlphaBeta[S]) AllSteps(done func(Result[S])) error {
	return ab.start(context.Background(), time.Time{}, done)
}

// StepForMilliseconds deepens until the search is exhausted or ms
// milliseconds have passed since the call, then calls done exactly once. The
// depth being searched when the time runs out is completed first.
func (ab *AlphaBeta[S]) StepForMilliseconds(ms int, done func(Result[S])) error {
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	return ab.start(context.Background(), deadline, done)
}

// Search runs on the calling goroutine until the search is exhausted, the
// deadline has passed (zero means no deadline) or ctx is done.
func (ab *AlphaBeta[S]) Search(ctx context.Context, deadline time.Time) (Result[S], error) {
	r, err := ab.begin(ctx)
	if err != nil {
		return Result[S]{}, err
	}
	result := r.execute(deadline)
	ab.finish()
	return result, result.Err
}

func (ab *AlphaBeta[S]) start(ctx context.Context, deadline time.Time, done func(Result[S])) error {
	r, err := ab.begin(ctx)
	if err != nil {
		return err
	}

	go func() {
		result := r.execute(deadline)
		// Finish before calling back so that done may start the next run
		ab.finish()
		if done != nil {
			done(result)
		}
	}()
	return nil
}
