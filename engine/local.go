package engine

import (
	"trails/experiments/metrics"
	"trails/game"
	"trails/meta"

	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

func WithMaxRounds(rounds int) Option {
	return func(e *LocalEngine) {
		if rounds > 0 {
			e.maxRounds = rounds
		}
	}
}

// WithRevealGoals tells both negotiators each other's goal after every
// proposal.
func WithRevealGoals() Option {
	return func(e *LocalEngine) {
		e.revealGoals = true
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(e *LocalEngine) {
		if c != nil {
			e.collector = c
		}
	}
}

// LocalEngine alternates proposals between two in-process negotiators. The
// initiator (party 0) proposes first.
type LocalEngine struct {
	Scenario    *game.Scenario
	Players     [2]Negotiator
	maxRounds   int
	revealGoals bool
	collector   metrics.Collector
}

func New(s *game.Scenario, players [2]Negotiator, options ...Option) *LocalEngine {
	for _, p := range players {
		if p == nil {
			panic("need two negotiators")
		}
	}
	e := &LocalEngine{
		Scenario:  s,
		Players:   players,
		maxRounds: meta.MAX_ROUNDS,
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the negotiation until a proposal matches the standing offer,
// a party proposes to keep its own chips, or the round cap is reached.
func (e *LocalEngine) Run() (Result, metrics.GameMetric) {
	s := e.Scenario
	for party, p := range e.Players {
		p.Init(s, party)
		p.SetLocation(s.Location(party))
	}
	e.collector.Start([2]int{s.Location(0), s.Location(1)})

	var history []metrics.RoundMetric
	standing := game.NoOffer // From the mover's side
	for round := 0; ; round++ {
		mover := round % 2
		other := 1 - mover

		proposal := e.Players[mover].SelectOffer(s, standing)
		offerToOther := s.Complement(proposal)
		e.Players[mover].SendOffer(s, proposal)
		e.Players[other].ReceiveOffer(s, offerToOther)
		if e.revealGoals {
			for _, p := range e.Players {
				p.InformLocation(s)
			}
		}

		rm := metrics.RoundMetric{
			Round:      round,
			Party:      mover,
			Offer:      int(proposal),
			Accuracy:   e.Players[other].LastAccuracy(),
			Confidence: e.Players[other].Confidence(),
		}
		history = append(history, rm)
		e.collector.AddRound(rm)

		log.Debug().Msgf("round %d: party %d proposes to keep %v", round, mover, s.Codec().Decode(proposal))

		switch {
		case proposal == standing:
			return e.finish(Accepted, round+1, initiatorView(s, mover, proposal), history)
		case proposal == s.Holdings(mover):
			return e.finish(Withdrawn, round+1, s.Holdings(0), history)
		case round+1 >= e.maxRounds:
			return e.finish(TimedOut, round+1, s.Holdings(0), history)
		}
		standing = offerToOther
	}
}

func (e *LocalEngine) finish(outcome Outcome, rounds int, allocation game.Code, history []metrics.RoundMetric) (Result, metrics.GameMetric) {
	s := e.Scenario
	scores := [2]int{
		s.Utility(s.Location(0), allocation),
		s.Utility(s.Location(1), s.Complement(allocation)),
	}
	log.Info().Msgf("negotiation %s after %d rounds with scores %v", outcome, rounds, scores)

	gameMetric, _ := e.collector.Complete(outcome.String(), rounds, scores)
	return Result{
		Outcome:    outcome,
		Rounds:     rounds,
		Allocation: allocation,
		Scores:     scores,
		History:    history,
	}, gameMetric
}

// initiatorView converts a code held by party into what party 0 holds.
func initiatorView(s *game.Scenario, party int, code game.Code) game.Code {
	if party == 0 {
		return code
	}
	return s.Complement(code)
}
