package game

import (
	"errors"
	"fmt"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is the immutable setup of one negotiation: the board, what each
// party starts with, where each party wants to go, and the solved score
// tables. It is safe to share between agents once built.
type Scenario struct {
	board     Board
	codec     Codec
	chips     [2][]int
	holdings  [2]Code
	locations [2]int
	goals     []Cell
	utility   [][]int // [goal][code]
	finalCell [][]int // [goal][code], cell index
}

// Build validates the setup and solves the utility tables for every goal.
// Both parties start at goal index 0; use WithLocations to place them.
func Build(board Board, holdings [2][]int) (*Scenario, error) {
	nColors := len(holdings[0])
	if nColors == 0 || len(holdings[1]) != nColors {
		return nil, fmt.Errorf("%w: holdings have %d and %d colors", ErrInvalidScenario, len(holdings[0]), len(holdings[1]))
	}
	capacities := make([]int, nColors)
	for p := range holdings {
		for i, n := range holdings[p] {
			if n < 0 {
				return nil, fmt.Errorf("%w: party %d holds %d chips of color %d", ErrInvalidScenario, p, n, i)
			}
			capacities[i] += n
		}
	}
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			color := board[x][y]
			if color == Neutral && (Cell{x, y}) != Center {
				return nil, fmt.Errorf("%w: neutral cell at (%d,%d) off center", ErrInvalidScenario, x, y)
			}
			if color < Neutral || int(color) >= nColors {
				return nil, fmt.Errorf("%w: cell (%d,%d) has color %d of %d", ErrInvalidScenario, x, y, color, nColors)
			}
		}
	}

	s := &Scenario{
		board: board,
		codec: NewCodec(capacities),
		goals: Goals(),
	}
	for p := range holdings {
		s.chips[p] = append([]int(nil), holdings[p]...)
		s.holdings[p] = MustEncode(s.chips[p], capacities)
	}
	s.utility = make([][]int, len(s.goals))
	s.finalCell = make([][]int, len(s.goals))
	for g, goal := range s.goals {
		s.utility[g], s.finalCell[g] = solve(&s.board, s.codec, goal)
	}
	return s, nil
}

// WithLocations returns a copy of the scenario with each party's goal index
// set. The solved tables are shared with the receiver.
func (s *Scenario) WithLocations(initiator, responder int) (*Scenario, error) {
	for _, l := range []int{initiator, responder} {
		if l < 0 || l >= len(s.goals) {
			return nil, fmt.Errorf("%w: goal index %d of %d", ErrInvalidScenario, l, len(s.goals))
		}
	}
	c := *s
	c.locations = [2]int{initiator, responder}
	return &c, nil
}

func (s *Scenario) Board() Board {
	return s.board
}

func (s *Scenario) Codec() Codec {
	return s.codec
}

func (s *Scenario) NumGoals() int {
	return len(s.goals)
}

func (s *Scenario) NumOffers() int {
	return s.codec.Size()
}

// Goal returns the board cell of a goal index.
func (s *Scenario) Goal(goal int) Cell {
	return s.goals[goal]
}

// Holdings returns the code of what party starts with.
func (s *Scenario) Holdings(party int) Code {
	return s.holdings[party]
}

// Chips returns a copy of the per-color counts party starts with.
func (s *Scenario) Chips(party int) []int {
	return append([]int(nil), s.chips[party]...)
}

// Location returns the goal index of party.
func (s *Scenario) Location(party int) int {
	return s.locations[party]
}

// Utility is the best score reachable from the center toward goal while
// holding code.
func (s *Scenario) Utility(goal int, code Code) int {
	return s.utility[goal][code]
}

// FinalCell is the cell where the path behind Utility ends.
func (s *Scenario) FinalCell(goal int, code Code) Cell {
	return CellAt(s.finalCell[goal][code])
}

// Complement is shorthand for s.Codec().Complement.
func (s *Scenario) Complement(code Code) Code {
	return s.codec.Complement(code)
}
