package tictactoe

import "github.com/rocketscienceinc/dooz/internal/entity"

// Evaluate - looks for a row, column or diagonal fully owned by one player.
// With no complete line a full board is a draw, anything else is still ongoing.
func Evaluate(board *entity.Board) entity.Result {
	for _, line := range Lines(board.Size) {
		if owner := lineOwner(board, line); owner != entity.NoOwner {
			return entity.Result{Outcome: entity.OutcomeWon, Winner: owner}
		}
	}

	if board.IsFull() {
		return entity.Result{Outcome: entity.OutcomeDraw}
	}

	return entity.Result{Outcome: entity.OutcomeOngoing}
}

// Position is a (row, col) pair on the board.
type Position struct {
	Row int
	Col int
}

// Lines returns the 2*size+2 winning lines of a square board: rows, columns, then both diagonals.
func Lines(size int) [][]Position {
	lines := make([][]Position, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make([]Position, size)
		for col := range line {
			line[col] = Position{Row: row, Col: col}
		}
		lines = append(lines, line)
	}

	for col := 0; col < size; col++ {
		line := make([]Position, size)
		for row := range line {
			line[row] = Position{Row: row, Col: col}
		}
		lines = append(lines, line)
	}

	diagonal := make([]Position, size)
	antiDiagonal := make([]Position, size)
	for i := 0; i < size; i++ {
		diagonal[i] = Position{Row: i, Col: i}
		antiDiagonal[i] = Position{Row: i, Col: size - 1 - i}
	}

	return append(lines, diagonal, antiDiagonal)
}

func lineOwner(board *entity.Board, line []Position) string {
	owner := board.CellAt(line[0].Row, line[0].Col).Owner
	if owner == entity.NoOwner {
		return entity.NoOwner
	}

	for _, pos := range line[1:] {
		if board.CellAt(pos.Row, pos.Col).Owner != owner {
			return entity.NoOwner
		}
	}

	return owner
}
