package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	RunID     string
	MaxDepth  int
	Depth     int // Deepest completed iteration
	Duration  time.Duration
	Nodes     int
	Leaves    int
	Cutoffs   int
	Exhausted bool
}

type MoveMetric struct {
	Step   int
	Player int // Index of the agent that moved
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // Index of the winning agent, -1 if none
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(runID string, maxDepth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	CompleteDepth(depth int)
	SetExhausted(value bool)
	Complete() SearchMetric
}

type collector struct {
	runID     string
	maxDepth  int
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
	depth     atomic.Int32
	exhausted atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(runID string, maxDepth int) {
	m.runID = runID
	m.maxDepth = maxDepth
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
	m.depth.Store(0)
	m.exhausted.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) SetExhausted(value bool) {
	m.exhausted.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		RunID:     m.runID,
		MaxDepth:  m.maxDepth,
		Depth:     int(m.depth.Load()),
		Duration:  time.Since(m.startTime),
		Nodes:     int(m.nodes.Load()),
		Leaves:    int(m.leaves.Load()),
		Cutoffs:   int(m.cutoffs.Load()),
		Exhausted: m.exhausted.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(runID string, maxDepth int) {}
func (m *dummyCollector) AddNode()                         {}
func (m *dummyCollector) AddLeaf()                         {}
func (m *dummyCollector) AddCutoff()                       {}
func (m *dummyCollector) CompleteDepth(depth int)          {}
func (m *dummyCollector) SetExhausted(value bool)          {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }
