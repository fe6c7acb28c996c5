package game

import "trails/utils"

const BoardSize = 5

// Color labels a board cell with the chip color needed to step onto it.
type Color int

// Neutral labels a cell that no chip can pay for.
const Neutral Color = -1

// Cell is a board position; X is the row and Y the column.
type Cell struct {
	X, Y int
}

// Center is where both parties start.
var Center = Cell{X: BoardSize / 2, Y: BoardSize / 2}

// Index flattens the cell row-major.
func (c Cell) Index() int {
	return c.X*BoardSize + c.Y
}

// CellAt is the inverse of Cell.Index.
func CellAt(index int) Cell {
	return Cell{X: index / BoardSize, Y: index % BoardSize}
}

func (c Cell) Distance(other Cell) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

func (c Cell) onBoard() bool {
	return c.X >= 0 && c.X < BoardSize && c.Y >= 0 && c.Y < BoardSize
}

// Neighbors returns the up to four orthogonally adjacent cells, in the order
// up, left, down, right.
func (c Cell) Neighbors() []Cell {
	neighbors := make([]Cell, 0, 4)
	for _, n := range []Cell{{c.X - 1, c.Y}, {c.X, c.Y - 1}, {c.X + 1, c.Y}, {c.X, c.Y + 1}} {
		if n.onBoard() {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Board is the static colored grid of a game.
type Board [BoardSize][BoardSize]Color

func (b *Board) At(c Cell) Color {
	return b[c.X][c.Y]
}

// Goals lists the cells a party may be asked to reach: every cell more than
// two steps from the center, row-major. A goal index refers to this order.
func Goals() []Cell {
	goals := []Cell{}
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if c := (Cell{x, y}); c.Distance(Center) > 2 {
				goals = append(goals, c)
			}
		}
	}
	return goals
}

// GoalIndex returns the goal index of cell, or -1 if it is not a goal.
func GoalIndex(cell Cell) int {
	return utils.FindIndex(Goals(), cell)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
