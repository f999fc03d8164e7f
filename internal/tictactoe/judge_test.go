package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/dooz/internal/entity"
)

const (
	playerA = "a"
	playerB = "b"
)

// boardOf builds a board from rows of 'a', 'b' and '.' (empty).
func boardOf(t *testing.T, rows ...string) *entity.Board {
	t.Helper()

	board, err := entity.NewBoard(len(rows))
	require.NoError(t, err)

	for row, line := range rows {
		require.Len(t, line, len(rows))
		for col, mark := range line {
			if mark != '.' {
				board.SetOwner(row, col, string(mark))
			}
		}
	}

	return board
}

func TestEvaluate(t *testing.T) {
	t.Run("Winner a", func(t *testing.T) {
		// Given: a board where a owns the first column
		board := boardOf(t,
			"ab.",
			"ab.",
			"a..",
		)

		// When: evaluating the board
		result := Evaluate(board)

		// Then: a should be declared the winner
		require.Equal(t, entity.Result{Outcome: entity.OutcomeWon, Winner: playerA}, result)
	})

	t.Run("Ongoing Game", func(t *testing.T) {
		// Given: a board where there is no winner yet
		board := boardOf(t,
			"aba",
			".b.",
			"a..",
		)

		// When: evaluating the board
		result := Evaluate(board)

		// Then: the game should continue
		require.Equal(t, entity.Result{Outcome: entity.OutcomeOngoing}, result)
		assert.False(t, result.IsTerminal())
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: full boards without a complete line
		boards := []*entity.Board{
			boardOf(t,
				"bab",
				"baa",
				"aba",
			),
			boardOf(t,
				"aabb",
				"bbaa",
				"aabb",
				"bbaa",
			),
		}

		for _, board := range boards {
			// When: evaluating the board
			result := Evaluate(board)

			// Then: the game should be declared a draw without a winner
			assert.Equal(t, entity.Result{Outcome: entity.OutcomeDraw}, result)
			assert.True(t, result.IsTerminal())
		}
	})

	t.Run("Win on the last free cell is not a draw", func(t *testing.T) {
		// Given: a full board where b completed the anti-diagonal
		board := boardOf(t,
			"aab",
			"abb",
			"baa",
		)

		// When: evaluating the board
		result := Evaluate(board)

		// Then: b wins
		assert.Equal(t, entity.Result{Outcome: entity.OutcomeWon, Winner: playerB}, result)
	})

	t.Run("Every line wins on every board size", func(t *testing.T) {
		for size := entity.MinBoardSize; size <= entity.MaxBoardSize; size++ {
			lines := Lines(size)
			require.Len(t, lines, 2*size+2)

			for _, line := range lines {
				// Given: an empty board
				board, err := entity.NewBoard(size)
				require.NoError(t, err)

				// When: b fills the whole line
				for _, pos := range line {
					require.Equal(t, entity.OutcomeOngoing, Evaluate(board).Outcome)
					board.SetOwner(pos.Row, pos.Col, playerB)
				}

				// Then: b has won
				assert.Equal(t, entity.Result{Outcome: entity.OutcomeWon, Winner: playerB}, Evaluate(board), "size %d line %v", size, line)
			}
		}
	})
}
