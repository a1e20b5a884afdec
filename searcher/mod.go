package searcher

import (
	"errors"
	"fmt"
	"math"
)

// Search parameters

const DefaultMaxDepth = 10

// Reward for completing a win, applied on top of the adapter score of a terminal state
const TerminalScore = 1e6

var infinity = math.Inf(1)

var (
	ErrConfiguration   = errors.New("configuration error")
	ErrMissingAdapter  = errors.New("adapter function missing")
	ErrInvalidDepth    = errors.New("max depth must not be negative")
	ErrNotConfigured   = errors.New("setup has not been called")
	ErrRunInProgress   = errors.New("a search run is already in progress")
	ErrAdapterContract = errors.New("score callback invoked more than once")
	ErrScoreTimeout    = errors.New("score callback not invoked in time")
	ErrAdapterPanic    = errors.New("adapter function panicked")
)

// ScoreFunc scores a state from the perspective of its side to move. It must
// call done exactly once, either before returning or later from any goroutine.
type ScoreFunc[S any] func(state S, done func(score float64))

// Adapter plugs a game into the searcher. States are opaque to the searcher:
// they are never inspected, compared or mutated. A generated state is both the
// successor position and the move reported to callers.
type Adapter[S any] struct {
	Score              ScoreFunc[S]
	GenerateMoves      func(state S) []S
	CheckWinConditions func(state S) bool
}

func (a Adapter[S]) validate() error {
	switch {
	case a.Score == nil:
		return configError(ErrMissingAdapter, "score function")
	case a.GenerateMoves == nil:
		return configError(ErrMissingAdapter, "move generator")
	case a.CheckWinConditions == nil:
		return configError(ErrMissingAdapter, "win condition check")
	}
	return nil
}

func configError(err error, what string) error {
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, what, err)
}
