package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trails/agent"
	"trails/experiments/metrics"
	"trails/game"
	"trails/meta"
)

// scripted proposes a fixed sequence of codes, repeating the last one.
type scripted struct {
	offers   []game.Code
	next     int
	party    int
	location int
	sent     []game.Code
	received []game.Code
	informed int
}

func (p *scripted) Init(s *game.Scenario, party int) {
	p.party = party
}

func (p *scripted) SetLocation(location int) {
	p.location = location
}

func (p *scripted) SelectOffer(s *game.Scenario, offerToMe game.Code) game.Code {
	offer := p.offers[min(p.next, len(p.offers)-1)]
	p.next++
	return offer
}

func (p *scripted) SendOffer(s *game.Scenario, offerToSelf game.Code) {
	p.sent = append(p.sent, offerToSelf)
}

func (p *scripted) ReceiveOffer(s *game.Scenario, offerToMe game.Code) {
	p.received = append(p.received, offerToMe)
}

func (p *scripted) InformLocation(s *game.Scenario) {
	p.informed++
}

func (p *scripted) LastAccuracy() float64 { return 0.5 }
func (p *scripted) Confidence() float64 { return 1 }

// twoChipScenario gives each party one chip of its own color. Codes are
// c0 + 2*c1, so the initiator holds 1 and the responder 2.
func twoChipScenario(t *testing.T) *game.Scenario {
	t.Helper()
	var board game.Board
	for x := range board {
		for y := range board[x] {
			board[x][y] = game.Color((x + y) % 2)
		}
	}
	s, err := game.Build(board, [2][]int{{1, 0}, {0, 1}})
	require.NoError(t, err)
	s, err = s.WithLocations(1, 10)
	require.NoError(t, err)
	return s
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("accepting the standing offer", func(t *testing.T) {
		s := twoChipScenario(t)
		initiator := &scripted{offers: []game.Code{3}}
		responder := &scripted{offers: []game.Code{0}}
		collector := metrics.NewCollector()

		result, gameMetric := New(s, [2]Negotiator{initiator, responder}, WithCollector(collector)).Run()

		require.Equal(t, Accepted, result.Outcome)
		require.Equal(t, 2, result.Rounds)
		require.Equal(t, game.Code(3), result.Allocation, "initiator keeps both chips")
		require.Equal(t, [2]int{s.Utility(1, 3), s.Utility(10, 0)}, result.Scores)
		require.Equal(t, []game.Code{0}, responder.received[:1])
		require.Equal(t, []game.Code{3}, initiator.received)
		require.Equal(t, 0, initiator.party)
		require.Equal(t, 1, responder.party)
		require.Equal(t, 10, responder.location)

		require.Equal(t, "accepted", gameMetric.Outcome)
		require.Equal(t, 2, gameMetric.Rounds)
		require.Equal(t, [2]int{1, 10}, gameMetric.Locations)
		require.Equal(t, result.Scores, gameMetric.Scores)
		require.Len(t, result.History, 2)
		require.Equal(t, 1, result.History[1].Party)
		require.Equal(t, 0, result.History[1].Offer)
	})

	t.Run("withdrawing by proposing the starting chips", func(t *testing.T) {
		s := twoChipScenario(t)
		initiator := &scripted{offers: []game.Code{3, 1}}
		responder := &scripted{offers: []game.Code{3}}

		result, _ := New(s, [2]Negotiator{initiator, responder}).Run()

		require.Equal(t, Withdrawn, result.Outcome)
		require.Equal(t, 3, result.Rounds)
		require.Equal(t, s.Holdings(0), result.Allocation)
		require.Equal(t, [2]int{s.Utility(1, 1), s.Utility(10, 2)}, result.Scores)
		require.Equal(t, []game.Code{3, 1}, initiator.sent, "the final proposal is still relayed")
		require.Equal(t, []game.Code{0, 2}, responder.received)
	})

	t.Run("timing out after the round cap", func(t *testing.T) {
		s := twoChipScenario(t)
		initiator := &scripted{offers: []game.Code{3}}
		responder := &scripted{offers: []game.Code{3}}

		result, _ := New(s, [2]Negotiator{initiator, responder}, WithMaxRounds(6)).Run()

		require.Equal(t, TimedOut, result.Outcome)
		require.Equal(t, 6, result.Rounds)
		require.Equal(t, s.Holdings(0), result.Allocation)
		require.Len(t, result.History, 6)
		require.Len(t, initiator.sent, 3)
		require.Len(t, responder.sent, 3)
	})

	t.Run("default round cap", func(t *testing.T) {
		s := twoChipScenario(t)
		initiator := &scripted{offers: []game.Code{3}}
		responder := &scripted{offers: []game.Code{3}}

		result, _ := New(s, [2]Negotiator{initiator, responder}, WithMaxRounds(0)).Run()

		require.Equal(t, meta.MAX_ROUNDS, result.Rounds)
	})

	t.Run("goals stay hidden by default", func(t *testing.T) {
		s := twoChipScenario(t)
		initiator := &scripted{offers: []game.Code{3}}
		responder := &scripted{offers: []game.Code{3}}

		New(s, [2]Negotiator{initiator, responder}, WithMaxRounds(4)).Run()

		require.Zero(t, initiator.informed)
		require.Zero(t, responder.informed)
	})

	t.Run("revealing goals after every proposal", func(t *testing.T) {
		s := twoChipScenario(t)
		initiator := &scripted{offers: []game.Code{3}}
		responder := &scripted{offers: []game.Code{3}}

		result, _ := New(s, [2]Negotiator{initiator, responder}, WithMaxRounds(4), WithRevealGoals()).Run()

		require.Equal(t, 4, result.Rounds)
		require.Equal(t, 4, initiator.informed)
		require.Equal(t, 4, responder.informed)
	})

	t.Run("missing negotiator panics", func(t *testing.T) {
		s := twoChipScenario(t)
		require.Panics(t, func() { New(s, [2]Negotiator{&scripted{}, nil}) })
	})
}

func TestLocalEngineAgents(t *testing.T) {
	s := twoChipScenario(t)
	for _, orders := range [][2]int{{0, 0}, {1, 0}, {0, 1}} {
		players := [2]Negotiator{
			agent.New(orders[0], 0, agent.WithRand(fixedRand{})),
			agent.New(orders[1], 1, agent.WithRand(fixedRand{})),
		}

		result, _ := New(s, players).Run()

		require.LessOrEqual(t, result.Rounds, meta.MAX_ROUNDS, "orders %v", orders)
		require.Equal(t, s.Utility(s.Location(0), result.Allocation), result.Scores[0])
		require.Equal(t, s.Utility(s.Location(1), s.Complement(result.Allocation)), result.Scores[1])
		if result.Outcome != Accepted {
			require.Equal(t, s.Holdings(0), result.Allocation)
		}
		require.Len(t, result.History, result.Rounds)
	}
}

type fixedRand struct{}

func (fixedRand) Intn(n int) int { return 0 }

func TestLocalEngineRevealGoals(t *testing.T) {
	s := twoChipScenario(t)
	initiator := agent.New(1, 0, agent.WithRand(fixedRand{}))
	responder := agent.New(1, 1, agent.WithRand(fixedRand{}))

	result, _ := New(s, [2]Negotiator{initiator, responder}, WithRevealGoals()).Run()

	require.Positive(t, result.Rounds)
	require.Equal(t, 1.0, initiator.LocationBeliefs()[s.Location(1)], "the initiator knows the responder's goal")
	require.Equal(t, 1.0, responder.LocationBeliefs()[s.Location(0)], "the responder knows the initiator's goal")
}
