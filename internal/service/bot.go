package service

import (
	"errors"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// BotService picks moves for a computer opponent.
type BotService interface {
	ChooseCell(game *entity.Game) (int, error)
}

type botService struct {
	intn func(n int) int
}

func NewBotService() BotService {
	return &botService{
		intn: rand.Intn,
	}
}

// ChooseCell - returns a random empty cell of the current board.
func (that *botService) ChooseCell(game *entity.Game) (int, error) {
	if game.IsFinished() {
		return entity.NoCell, ErrNoAvailableMoves
	}

	board := game.Current()

	availableCells := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			availableCells = append(availableCells, i)
		}
	}

	if len(availableCells) == 0 {
		return entity.NoCell, ErrNoAvailableMoves
	}

	return availableCells[that.intn(len(availableCells))], nil //nolint: gosec // it's ok
}
