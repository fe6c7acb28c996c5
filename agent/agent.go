package agent

import (
	"fmt"

	"github.com/rs/zerolog"

	"trails/game"
	"trails/utils"
)

// Agent is a theory-of-mind negotiator. An agent of order k > 0 owns a model
// of its partner (order k-1, the other party) and a model of itself (order
// k-1, same party), and blends the two by its confidence. An order-0 agent
// only owns a baseline acceptance model.
//
// An Agent is not safe for concurrent use.
type Agent struct {
	order            int
	party            int
	loc              int // goal index of the party this agent models
	mode             Mode
	learningSpeed    float64
	confidence       float64
	confidenceLocked bool
	locationBeliefs  []float64 // over the partner's goal
	lastAccuracy     float64
	saved            []snapshot

	opponent *Agent    // order > 0
	self     *Agent    // order > 0
	base     *baseline // order == 0

	rng    game.Rand
	logger zerolog.Logger
}

type snapshot struct {
	locationBeliefs []float64
	confidence      float64
	lastAccuracy    float64
}

// New builds an agent of the given order for party, together with its
// nested models.
func New(order, party int, options ...Option) *Agent {
	if order < 0 {
		panic(fmt.Sprintf("negative theory of mind order %d", order))
	}
	a := &Agent{ // Default values
		mode:          ModeAllLocations,
		learningSpeed: DefaultLearningSpeed,
		logger:        zerolog.Nop(),
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = defaultRand()
	}
	a.build(order, party)
	return a
}

func (a *Agent) build(order, party int) {
	a.order = order
	a.party = party
	a.confidence = 1
	if order == 0 {
		a.base = newBaseline(party, a.learningSpeed)
		return
	}
	a.opponent = a.child(order-1, 1-party)
	a.opponent.confidenceLocked = true
	a.self = a.child(order-1, party)
}

func (a *Agent) child(order, party int) *Agent {
	c := &Agent{
		mode:          a.mode,
		learningSpeed: a.learningSpeed,
		rng:           a.rng,
		logger:        a.logger.With().Int("order", order).Int("party", party).Logger(),
	}
	c.build(order, party)
	return c
}

// Init prepares the agent for a new game in s, resetting every belief to its
// prior.
func (a *Agent) Init(s *game.Scenario, party int) {
	a.party = party
	a.loc = s.Location(party)
	a.confidence = 1
	a.lastAccuracy = 0
	a.saved = nil
	if a.order == 0 {
		a.base.init(s, party)
		return
	}
	a.opponent.Init(s, 1-party)
	a.self.Init(s, party)
	a.locationBeliefs = utils.Uniform(s.NumGoals())
	// The partner's goal is hidden, so the opponent model starts at a guess.
	a.opponent.SetLocation(a.likeliestLocation())
}

func (a *Agent) Order() int {
	return a.order
}

func (a *Agent) Party() int {
	return a.party
}

func (a *Agent) Location() int {
	return a.loc
}

func (a *Agent) Confidence() float64 {
	return a.confidence
}

// LastAccuracy is the belief mass that survived the latest location update.
func (a *Agent) LastAccuracy() float64 {
	return a.lastAccuracy
}

// LocationBeliefs returns a copy of the belief over the partner's goal.
func (a *Agent) LocationBeliefs() []float64 {
	return append([]float64(nil), a.locationBeliefs...)
}

// LocationBelief is the believed likelihood of the partner's goal being
// location, blended with lower orders by confidence.
func (a *Agent) LocationBelief(location int) float64 {
	if a.order == 0 {
		return 1 / float64(len(game.Goals()))
	}
	if a.confidenceLocked {
		return a.locationBeliefs[location]
	}
	return a.confidence*a.locationBeliefs[location] + (1-a.confidence)*a.self.LocationBelief(location)
}

// SetID changes the party the agent plays for.
func (a *Agent) SetID(party int) {
	a.party = party
	if a.order == 0 {
		a.base.party = party
		return
	}
	a.opponent.SetID(1 - party)
	a.self.SetID(party)
}

// SetLocation sets the goal of the party this agent models.
func (a *Agent) SetLocation(location int) {
	a.loc = location
	if a.order == 0 {
		a.base.loc = location
		return
	}
	a.self.SetLocation(location)
}

// InformLocation reveals both goals of s to the agent.
func (a *Agent) InformLocation(s *game.Scenario) {
	a.SetLocation(s.Location(a.party))
	if a.order == 0 {
		return
	}
	for l := range a.locationBeliefs {
		a.locationBeliefs[l] = 0
	}
	a.locationBeliefs[s.Location(1-a.party)] = 1
	a.self.InformLocation(s)
	a.opponent.InformLocation(s)
}

// SaveBeliefs pushes the beliefs of the agent and all its nested models.
// Every call must be paired with one RestoreBeliefs, innermost first.
func (a *Agent) SaveBeliefs() {
	if a.order == 0 {
		a.base.saveBeliefs()
		return
	}
	a.saved = append(a.saved, snapshot{
		locationBeliefs: append([]float64(nil), a.locationBeliefs...),
		confidence:      a.confidence,
		lastAccuracy:    a.lastAccuracy,
	})
	a.opponent.SaveBeliefs()
	a.self.SaveBeliefs()
}

// RestoreBeliefs pops the beliefs pushed by the matching SaveBeliefs.
func (a *Agent) RestoreBeliefs() {
	if a.order == 0 {
		a.base.restoreBeliefs()
		return
	}
	if len(a.saved) == 0 {
		panic(fmt.Sprintf("restoring beliefs of order-%d agent for party %d without a matching save", a.order, a.party))
	}
	last := a.saved[len(a.saved)-1]
	a.saved = a.saved[:len(a.saved)-1]
	a.locationBeliefs = last.locationBeliefs
	a.confidence = last.confidence
	a.lastAccuracy = last.lastAccuracy
	a.opponent.RestoreBeliefs()
	a.self.RestoreBeliefs()
}

// speculate runs fn and rolls back every belief change fn made.
func (a *Agent) speculate(fn func()) {
	a.SaveBeliefs()
	defer a.RestoreBeliefs()
	fn()
}

// gain is how much holding offer improves on the starting chips at the
// agent's location.
func (a *Agent) gain(s *game.Scenario, offer game.Code) float64 {
	return float64(s.Utility(a.loc, offer) - s.Utility(a.loc, s.Holdings(a.party)))
}
