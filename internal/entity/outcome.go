package entity

// Outcome is the result of evaluating a board. Winner is empty and Line is nil
// while the game is still open or drawn.
type Outcome struct {
	Winner string `json:"winner,omitempty"`
	Line   []int  `json:"line,omitempty"`
	Draw   bool   `json:"draw"`
}

// EvaluateWinner returns the first winning triple in WinCombos order, or a draw
// when every cell is filled without one.
func EvaluateWinner(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{
				Winner: a,
				Line:   []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	// the game will continue until all the squares are full
	for _, cell := range board {
		if cell == EmptyCell {
			return Outcome{}
		}
	}

	return Outcome{Draw: true}
}
