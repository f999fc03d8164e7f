package service

import (
	"math/rand"

	"github.com/rocketscienceinc/dooz/internal/entity"
)

// BotService chooses the computer's move in player-vs-computer games.
type BotService interface {
	SelectMove(board *entity.Board, difficulty entity.AiDifficulty) (row, col int, ok bool)
}

// botService plays a uniformly random free cell at every difficulty.
type botService struct {
	rng *rand.Rand
}

func NewBotService(rng *rand.Rand) BotService {
	return &botService{rng: rng}
}

func (that *botService) SelectMove(board *entity.Board, _ entity.AiDifficulty) (int, int, bool) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, 0, false
	}

	chosenCell := availableCells[that.rng.Intn(len(availableCells))]

	return chosenCell.Row, chosenCell.Col, true
}
