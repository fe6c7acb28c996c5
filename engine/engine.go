package engine

import (
	"trails/experiments/metrics"
	"trails/game"
)

// Negotiator is a party the engine can drive. *agent.Agent implements it.
type Negotiator interface {
	Init(s *game.Scenario, party int)
	SetLocation(location int)
	// SelectOffer returns the code the negotiator proposes to keep.
	SelectOffer(s *game.Scenario, offerToMe game.Code) game.Code
	SendOffer(s *game.Scenario, offerToSelf game.Code)
	ReceiveOffer(s *game.Scenario, offerToMe game.Code)
	// InformLocation reveals both parties' goals.
	InformLocation(s *game.Scenario)
	LastAccuracy() float64
	Confidence() float64
}

type Outcome int

const (
	Accepted Outcome = iota
	Withdrawn
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Withdrawn:
		return "withdrawn"
	case TimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Result is the end state of one negotiation.
type Result struct {
	Outcome Outcome
	Rounds  int
	// Allocation is what the initiator ends up with.
	Allocation game.Code
	Scores     [2]int
	History    []metrics.RoundMetric
}

type Engine interface {
	// Run plays one negotiation until acceptance, withdrawal or the round cap
	Run() (Result, metrics.GameMetric)
}
