package searcher

import "sync"

// Prediction is the principal variation of a fully searched depth.
type Prediction[S any] struct {
	Move  S   // First state of the line, the move to play
	State S   // Deepest state of the line
	Line  []S // From the move after the root to the deepest explored continuation
	Score float64
	Depth int
	Found bool
}

func newPrediction[S any](line []S, score float64, depth int) Prediction[S] {
	p := Prediction[S]{Line: line, Score: score, Depth: depth}
	if len(line) > 0 {
		p.Move = line[0]
		p.State = line[len(line)-1]
		p.Found = true
	}
	return p
}

// tracker holds the last completed depth. It is written by the run between
// iterations and read by any goroutine calling Prediction.
type tracker[S any] struct {
	sync.RWMutex
	current Prediction[S]
}

func (t *tracker[S]) commit(p Prediction[S]) {
	t.Lock()
	defer t.Unlock()

	t.current = p
}

func (t *tracker[S]) reset() {
	t.Lock()
	defer t.Unlock()

	t.current = Prediction[S]{}
}

func (t *tracker[S]) snapshot() Prediction[S] {
	t.RLock()
	defer t.RUnlock()

	p := t.current
	if p.Line != nil {
		p.Line = append([]S(nil), p.Line...)
	}
	return p
}
