package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/dooz/internal/entity"
)

func TestBotService_SelectMove(t *testing.T) {
	t.Run("Picks a free cell", func(t *testing.T) {
		// Given: a 3x3 board with a single free cell
		board, err := entity.NewBoard(3)
		require.NoError(t, err)
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				if row != 1 || col != 2 {
					board.SetOwner(row, col, "someone")
				}
			}
		}

		bot := NewBotService(rand.New(rand.NewSource(1)))

		// When: the bot selects a move
		row, col, ok := bot.SelectMove(board, entity.AiDifficultyHard)

		// Then: it picks that cell
		require.True(t, ok)
		assert.Equal(t, 1, row)
		assert.Equal(t, 2, col)
	})

	t.Run("Never picks an owned cell", func(t *testing.T) {
		board, err := entity.NewBoard(5)
		require.NoError(t, err)
		board.SetOwner(0, 0, "someone")
		board.SetOwner(4, 4, "someone")

		bot := NewBotService(rand.New(rand.NewSource(3)))

		for i := 0; i < 100; i++ {
			row, col, ok := bot.SelectMove(board, entity.AiDifficultyEasy)
			require.True(t, ok)
			assert.False(t, board.CellAt(row, col).IsOwned())
		}
	})

	t.Run("No move on a full board", func(t *testing.T) {
		// Given: a full board
		board, err := entity.NewBoard(3)
		require.NoError(t, err)
		for _, cell := range board.EmptyCells() {
			board.SetOwner(cell.Row, cell.Col, "someone")
		}

		// When: the bot selects a move
		_, _, ok := NewBotService(rand.New(rand.NewSource(1))).SelectMove(board, entity.AiDifficultyMedium)

		// Then: there is none
		assert.False(t, ok)
	})
}
