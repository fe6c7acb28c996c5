package metrics

import (
	"time"
)

// RoundMetric describes one proposal of a negotiation.
type RoundMetric struct {
	Round      int
	Party      int // Proposing party
	Offer      int // Code the proposer keeps
	Accuracy   float64
	Confidence float64 // Of the receiving party
}

type GameMetric struct {
	Outcome   string
	Rounds    int
	Locations [2]int
	Scores    [2]int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type Collector interface {
	Start(locations [2]int)
	AddRound(metric RoundMetric)
	Complete(outcome string, rounds int, scores [2]int) (GameMetric, []RoundMetric)
}

type collector struct {
	locations [2]int
	startTime time.Time
	rounds    []RoundMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(locations [2]int) {
	c.startTime = time.Now()
	c.locations = locations
	c.rounds = nil
}

func (c *collector) AddRound(metric RoundMetric) {
	c.rounds = append(c.rounds, metric)
}

func (c *collector) Complete(outcome string, rounds int, scores [2]int) (GameMetric, []RoundMetric) {
	end := time.Now()
	return GameMetric{
		Outcome:   outcome,
		Rounds:    rounds,
		Locations: c.locations,
		Scores:    scores,
		StartTime: c.startTime,
		EndTime:   end,
		Duration:  end.Sub(c.startTime),
	}, c.rounds
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(locations [2]int)      {}
func (c *dummyCollector) AddRound(metric RoundMetric) {}
func (c *dummyCollector) Complete(outcome string, rounds int, scores [2]int) (GameMetric, []RoundMetric) {
	return GameMetric{}, nil
}
