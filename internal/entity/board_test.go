package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("Creates an empty square board", func(t *testing.T) {
		// When: a board of every allowed size is created
		for size := MinBoardSize; size <= MaxBoardSize; size++ {
			board, err := NewBoard(size)
			require.NoError(t, err)

			// Then: it has size*size unowned cells at their own coordinates
			require.Equal(t, size, board.Size)
			require.Len(t, board.Cells, size)
			for row := 0; row < size; row++ {
				require.Len(t, board.Cells[row], size)
				for col := 0; col < size; col++ {
					cell := board.CellAt(row, col)
					assert.Equal(t, Cell{Row: row, Col: col}, cell)
					assert.False(t, cell.IsOwned())
				}
			}
		}
	})

	t.Run("Rejects sizes outside of the allowed range", func(t *testing.T) {
		for _, size := range []int{-1, 0, MinBoardSize - 1, MaxBoardSize + 1} {
			// When: creating a board with an invalid size
			board, err := NewBoard(size)

			// Then: ErrInvalidBoardSize is returned
			require.ErrorIs(t, err, ErrInvalidBoardSize)
			assert.Nil(t, board)
		}
	})
}

func TestBoard_SetOwner(t *testing.T) {
	t.Run("Owns an empty cell", func(t *testing.T) {
		// Given: an empty board
		board, err := NewBoard(3)
		require.NoError(t, err)

		// When: player a takes (1, 2)
		ok := board.SetOwner(1, 2, "a")

		// Then: the cell belongs to a
		require.True(t, ok)
		assert.Equal(t, "a", board.CellAt(1, 2).Owner)
	})

	t.Run("Owned cell is left untouched", func(t *testing.T) {
		// Given: a board where a owns (0, 0)
		board, err := NewBoard(3)
		require.NoError(t, err)
		require.True(t, board.SetOwner(0, 0, "a"))

		// When: b tries the same cell
		ok := board.SetOwner(0, 0, "b")

		// Then: nothing changes
		require.False(t, ok)
		assert.Equal(t, "a", board.CellAt(0, 0).Owner)
	})

	t.Run("Out of range coordinates panic", func(t *testing.T) {
		board, err := NewBoard(3)
		require.NoError(t, err)

		assert.Panics(t, func() { board.CellAt(3, 0) })
		assert.Panics(t, func() { board.SetOwner(0, -1, "a") })
	})
}

func TestBoard_IsFull(t *testing.T) {
	// Given: an empty board
	board, err := NewBoard(3)
	require.NoError(t, err)
	require.False(t, board.IsFull())
	require.Len(t, board.EmptyCells(), 9)

	// When: every cell but the last gets an owner
	for i := 0; i < 8; i++ {
		board.SetOwner(i/3, i%3, "a")
	}

	// Then: the board is not full until the last cell is taken
	assert.False(t, board.IsFull())
	assert.Equal(t, []Cell{{Row: 2, Col: 2}}, board.EmptyCells())

	board.SetOwner(2, 2, "b")
	assert.True(t, board.IsFull())
	assert.Empty(t, board.EmptyCells())
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board with one owned cell
	board, err := NewBoard(3)
	require.NoError(t, err)
	board.SetOwner(0, 0, "a")

	// When: the clone is modified
	clone := board.Clone()
	clone.SetOwner(1, 1, "b")

	// Then: the original is unaffected
	assert.Equal(t, "a", clone.CellAt(0, 0).Owner)
	assert.False(t, board.CellAt(1, 1).IsOwned())
}
