// Package communication holds the messages exchanged between agent servers
// and their clients.
package communication

import (
	"alphabeta/experiments/metrics"
	"alphabeta/game"
)

// FindMoveRequest asks for the best move from State.
type FindMoveRequest struct {
	State      game.Chomp `json:"state"`
	Depth      int        `json:"depth,omitempty"`      // 0 selects the server default
	BudgetMs   int        `json:"budgetMs,omitempty"`   // 0 searches until exhausted
	Evaluation string     `json:"evaluation,omitempty"` // Name in game.Evaluations, neutral by default
}

type FindMoveResponse struct {
	Found      bool                 `json:"found"`
	Move       game.Chomp           `json:"move"`
	Prediction game.Chomp           `json:"prediction"` // Deepest state of the principal variation
	Line       []game.Chomp         `json:"line"`
	Score      float64              `json:"score"`
	Depth      int                  `json:"depth"`
	Exhausted  bool                 `json:"exhausted"`
	TimedOut   bool                 `json:"timedOut"`
	RunID      string               `json:"runId"`
	RequestID  string               `json:"requestId"`
	Metric     metrics.SearchMetric `json:"metric"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
