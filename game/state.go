package game

import "fmt"

// Chomp is a line of units from which the players alternately remove 1 to
// MaxChomp units. The player removing the last unit wins.
//
// States are values: every move returns a new state.
type Chomp struct {
	ChompedLength int    `json:"chompedLength"` // Units removed by the move leading here
	LineLength    int    `json:"linelength"`    // Units left on the line
	Player        string `json:"player"`        // Side to move
}

func NewChomp(length int) Chomp {
	return Chomp{LineLength: length, Player: First}
}

// LegalMoves lists the states reachable in one move, shortest chomp first.
func (c Chomp) LegalMoves() []Chomp {
	moves := make([]Chomp, 0, MaxChomp)
	for chomp := 1; chomp <= MaxChomp && chomp <= c.LineLength; chomp++ {
		moves = append(moves, c.Play(chomp))
	}
	return moves
}

func (c Chomp) Play(chomp int) Chomp {
	return Chomp{
		ChompedLength: chomp,
		LineLength:    c.LineLength - chomp,
		Player:        Opponent(c.Player),
	}
}

// IsOver reports whether the last unit has been taken.
func (c Chomp) IsOver() bool {
	return c.LineLength == 0
}

// Winner returns the player who took the last unit, "" if the game is not over.
func (c Chomp) Winner() string {
	if !c.IsOver() {
		return ""
	}
	return Opponent(c.Player)
}

func (c Chomp) Validate() error {
	if c.LineLength < 0 {
		return fmt.Errorf("line length %d is negative", c.LineLength)
	}
	if c.ChompedLength < 0 || c.ChompedLength > MaxChomp {
		return fmt.Errorf("chomped length %d is not between 0 and %d", c.ChompedLength, MaxChomp)
	}
	if c.Player != First && c.Player != Second {
		return fmt.Errorf("unknown player %q", c.Player)
	}
	return nil
}

func (c Chomp) String() string {
	return fmt.Sprintf("chomp{line: %d, chomped: %d, toMove: %s}", c.LineLength, c.ChompedLength, c.Player)
}
