package game

// Scoring constants of the setup.
const (
	RewardPerChip  = 5
	PenaltyPerStep = 10
	ArrivalBonus   = 50
)

// baseScore is the score of stopping at cell while holding units chips.
func baseScore(cell, goal Cell, units int) int {
	score := RewardPerChip*units - PenaltyPerStep*cell.Distance(goal)
	if cell == goal {
		score += ArrivalBonus
	}
	return score
}

// solve computes, for every code, the best score a party starting at the
// center can reach toward goal and the cell it ends on. Stepping onto a cell
// costs one chip of that cell's color; every chip left over is worth
// RewardPerChip.
//
// score[cell][k] starts as the score of stopping at cell with k. Sweeps then
// relax to a fixed point: a neighbor holding k plus one chip of cell's color
// can step onto cell and continue from there with k.
func solve(board *Board, codec Codec, goal Cell) (utility []int, finalCell []int) {
	const numCells = BoardSize * BoardSize
	n := codec.Size()
	capacities := codec.capacities

	// next[k][color] is k with one more chip of color, or -1 at capacity.
	next := make([][]Code, n)
	for k := range next {
		counts := codec.Decode(Code(k))
		next[k] = make([]Code, len(capacities))
		for color := range capacities {
			if counts[color] == capacities[color] {
				next[k][color] = -1
				continue
			}
			counts[color]++
			next[k][color] = MustEncode(counts, capacities)
			counts[color]--
		}
	}

	score := make([][]int, numCells)
	final := make([][]int, numCells)
	for i := range score {
		cell := CellAt(i)
		score[i] = make([]int, n)
		final[i] = make([]int, n)
		for k := 0; k < n; k++ {
			score[i][k] = baseScore(cell, goal, codec.TotalUnits(Code(k)))
			final[i][k] = i
		}
	}

	for changed := true; changed; {
		changed = false
		for i := 0; i < numCells; i++ {
			if relax(board, next, score, final, CellAt(i)) {
				changed = true
			}
		}
	}

	center := Center.Index()
	return score[center], final[center]
}

// relax propagates the scores of cell to its neighbors and reports whether
// any neighbor improved.
func relax(board *Board, next [][]Code, score, final [][]int, cell Cell) bool {
	color := board.At(cell)
	if color == Neutral {
		return false
	}
	i := cell.Index()
	changed := false
	for k := range next {
		k2 := next[k][color]
		if k2 < 0 {
			continue
		}
		for _, nb := range cell.Neighbors() {
			j := nb.Index()
			if score[j][k2] < score[i][k] {
				score[j][k2] = score[i][k]
				final[j][k2] = final[i][k]
				changed = true
			}
		}
	}
	return changed
}
