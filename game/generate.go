package game

import "fmt"

const (
	NumColors        = 5
	ChipsPerParty    = 4
	locationAttempts = 20
)

// Rand is the source of randomness used for setup and tie-breaking.
// *golang.org/x/exp/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Generate deals a random scenario: uniform board colors with the center
// colored 0, each party drawing ChipsPerParty chips without replacement from
// the colors on the rest of the board, and two distinct goals that the
// starting chips alone score badly on where possible.
func Generate(rng Rand) (*Scenario, error) {
	var board Board
	pool := make([]Color, 0, BoardSize*BoardSize-1)
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if (Cell{x, y}) == Center {
				board[x][y] = 0
				continue
			}
			board[x][y] = Color(rng.Intn(NumColors))
			pool = append(pool, board[x][y])
		}
	}

	holdings := [2][]int{make([]int, NumColors), make([]int, NumColors)}
	for i := 0; i < ChipsPerParty; i++ {
		for p := range holdings {
			j := rng.Intn(len(pool))
			holdings[p][pool[j]]++
			pool = append(pool[:j], pool[j+1:]...)
		}
	}

	s, err := Build(board, holdings)
	if err != nil {
		return nil, fmt.Errorf("failed to build generated scenario: %w", err)
	}

	var locations [2]int
	for locations[0] == locations[1] {
		for p := range locations {
			locations[p] = pickLocation(s, p, rng)
		}
	}
	return s.WithLocations(locations[0], locations[1])
}

// pickLocation draws goals until one where party's starting chips score at
// most zero, giving up after locationAttempts draws.
func pickLocation(s *Scenario, party int, rng Rand) int {
	var l int
	for i := 0; i < locationAttempts; i++ {
		l = rng.Intn(s.NumGoals())
		if s.Utility(l, s.Holdings(party)) <= 0 {
			break
		}
	}
	return l
}
