package game

import (
	"time"

	"alphabeta/searcher"
)

// EvaluateNeutral ignores the state entirely, so only completed wins count.
func EvaluateNeutral(Chomp) float64 {
	return 0
}

// EvaluateParity knows the winning strategy: leaving a multiple of
// MaxChomp+1 units loses for the side to move.
func EvaluateParity(c Chomp) float64 {
	if c.LineLength%(MaxChomp+1) == 0 {
		return -1
	}
	return 1
}

// Scorer reports the evaluation synchronously.
func Scorer(evaluate Evaluate) searcher.ScoreFunc[Chomp] {
	return func(c Chomp, done func(float64)) {
		done(evaluate(c))
	}
}

// DelayedScorer reports the evaluation from another goroutine after delay,
// the way a remote or batched evaluator would.
func DelayedScorer(evaluate Evaluate, delay time.Duration) searcher.ScoreFunc[Chomp] {
	return func(c Chomp, done func(float64)) {
		score := evaluate(c)
		time.AfterFunc(delay, func() {
			done(score)
		})
	}
}

// Evaluations by name, for configuration files and requests.
var Evaluations = map[string]Evaluate{
	"neutral": EvaluateNeutral,
	"parity":  EvaluateParity,
}
