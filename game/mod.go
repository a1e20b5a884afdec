package game

import "alphabeta/searcher"

const (
	First  = "first"
	Second = "second"
)

// Largest number of units a single chomp may remove
const MaxChomp = 3

// Evaluates a chomp state to a score between -1 and 1 indicating how favorable
// the position is for the side to move.
type Evaluate func(Chomp) float64

// NewAdapter plugs the chomp rules into the searcher with the given scorer.
func NewAdapter(score searcher.ScoreFunc[Chomp]) searcher.Adapter[Chomp] {
	return searcher.Adapter[Chomp]{
		Score:              score,
		GenerateMoves:      Chomp.LegalMoves,
		CheckWinConditions: Chomp.IsOver,
	}
}

func Opponent(player string) string {
	if player == First {
		return Second
	}
	return First
}
