package entity

import (
	"errors"
	"fmt"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	// NoCell marks the initial snapshot, which has no last filled cell.
	NoCell = -1

	BoardSize = 3
)

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidStep = errors.New("invalid history step")

	// WinCombos are checked in order: rows, columns, then both diagonals.
	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board is a row-major 3x3 grid.
type Board [BoardSize * BoardSize]string

// Move is a snapshot of the board together with the cell filled to reach it.
type Move struct {
	Board Board `json:"board"`
	Cell  int   `json:"cell"`
}

// Game tracks a match as an ordered history of board snapshots.
// Turn is kept in sync with the parity of Step by every transition.
type Game struct {
	ID        string `json:"id"`
	History   []Move `json:"history"`
	Step      int    `json:"step"`
	Turn      string `json:"turn"`
	Ascending bool   `json:"ascending"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:        id,
		History:   []Move{{Board: Board{}, Cell: NoCell}},
		Step:      0,
		Turn:      PlayerX,
		Ascending: true,
	}
}

// Current returns the board at the selected step.
func (that *Game) Current() Board {
	return that.History[that.Step].Board
}

// Outcome evaluates the board at the selected step.
func (that *Game) Outcome() Outcome {
	return EvaluateWinner(that.Current())
}

// ApplyMove places the current player's mark at cell. Moves on a decided board
// or an occupied cell are ignored and reported as not applied.
func (that *Game) ApplyMove(cell int) (bool, error) {
	if cell < 0 || cell >= len(Board{}) {
		return false, fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	board := that.Current()
	if EvaluateWinner(board).Winner != EmptyCell || board[cell] != EmptyCell {
		return false, nil
	}

	board[cell] = that.Turn

	// replaying from an earlier step discards the moves after it
	history := make([]Move, that.Step+1, that.Step+2)
	copy(history, that.History[:that.Step+1])

	that.History = append(history, Move{Board: board, Cell: cell})
	that.Step = len(that.History) - 1
	that.Turn = toggleMark(that.Turn)

	return true, nil
}

// JumpTo selects an earlier (or later) snapshot without touching the history.
func (that *Game) JumpTo(step int) error {
	if step < 0 || step >= len(that.History) {
		return fmt.Errorf("%w: step %d of %d", ErrInvalidStep, step, len(that.History))
	}

	that.Step = step
	that.Turn = markForStep(step)

	return nil
}

func (that *Game) ToggleMoveOrder() {
	that.Ascending = !that.Ascending
}

// IsFinished reports whether the selected board is won or drawn.
func (that *Game) IsFinished() bool {
	outcome := that.Outcome()
	return outcome.Winner != EmptyCell || outcome.Draw
}

// Status is the one-line summary shown above the move list.
func (that *Game) Status() string {
	outcome := that.Outcome()

	switch {
	case outcome.Winner != EmptyCell:
		return "Winner: " + outcome.Winner
	case outcome.Draw:
		return "Draw"
	default:
		return "Next player: " + that.Turn
	}
}

// Position converts a cell index into its (row, col) pair.
func Position(cell int) (int, int) {
	return cell / BoardSize, cell % BoardSize
}

func markForStep(step int) string {
	if step%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
