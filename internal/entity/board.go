package entity

import (
	"errors"
	"fmt"
)

const (
	MinBoardSize = 3
	MaxBoardSize = 7

	DefaultBoardSize = MinBoardSize

	// NoOwner marks a cell nobody has played yet.
	NoOwner = ""
)

var ErrInvalidBoardSize = errors.New("invalid board size")

type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Owner string `json:"owner,omitempty"`
}

func (that Cell) IsOwned() bool {
	return that.Owner != NoOwner
}

// Board is a square grid of cells, Cells[row][col].
type Board struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"`
}

// NewBoard - creates an empty board with size*size cells.
func NewBoard(size int) (*Board, error) {
	if !IsValidBoardSize(size) {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBoardSize, size, MinBoardSize, MaxBoardSize)
	}

	cells := make([][]Cell, size)
	for row := range cells {
		cells[row] = make([]Cell, size)
		for col := range cells[row] {
			cells[row][col] = Cell{Row: row, Col: col}
		}
	}

	return &Board{Size: size, Cells: cells}, nil
}

func IsValidBoardSize(size int) bool {
	return size >= MinBoardSize && size <= MaxBoardSize
}

// InBounds reports whether (row, col) addresses a cell of the board.
func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.Size && col >= 0 && col < that.Size
}

// CellAt returns the cell at (row, col). Coordinates must be in bounds.
func (that *Board) CellAt(row, col int) Cell {
	if !that.InBounds(row, col) {
		panic(fmt.Sprintf("cell (%d, %d) is outside of %dx%d board", row, col, that.Size, that.Size))
	}

	return that.Cells[row][col]
}

// SetOwner - gives an unowned cell to the player. Owned cells are left untouched and false is returned.
func (that *Board) SetOwner(row, col int, playerID string) bool {
	if that.CellAt(row, col).IsOwned() {
		return false
	}

	that.Cells[row][col].Owner = playerID

	return true
}

func (that *Board) IsFull() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if !cell.IsOwned() {
				return false
			}
		}
	}

	return true
}

// EmptyCells lists unowned cells in row-major order.
func (that *Board) EmptyCells() []Cell {
	empty := make([]Cell, 0, that.Size*that.Size)
	for _, row := range that.Cells {
		for _, cell := range row {
			if !cell.IsOwned() {
				empty = append(empty, cell)
			}
		}
	}

	return empty
}

func (that *Board) Clone() *Board {
	if that == nil {
		return nil
	}

	cells := make([][]Cell, len(that.Cells))
	for row := range that.Cells {
		cells[row] = append([]Cell(nil), that.Cells[row]...)
	}

	return &Board{Size: that.Size, Cells: cells}
}
