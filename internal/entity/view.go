package entity

// GameView is the client-facing projection of a game and everything derived from it.
type GameView struct {
	ID            string      `json:"id"`
	Board         Board       `json:"board"`
	Step          int         `json:"step"`
	Turn          string      `json:"turn"`
	Ascending     bool        `json:"ascending"`
	Status        string      `json:"status"`
	Winner        string      `json:"winner,omitempty"`
	Line          []int       `json:"line,omitempty"`
	Draw          bool        `json:"draw"`
	Moves         []MoveEntry `json:"moves"`
	HistoryLength int         `json:"history_length"`
}

func (that *Game) View() GameView {
	outcome := that.Outcome()

	return GameView{
		ID:            that.ID,
		Board:         that.Current(),
		Step:          that.Step,
		Turn:          that.Turn,
		Ascending:     that.Ascending,
		Status:        that.Status(),
		Winner:        outcome.Winner,
		Line:          outcome.Line,
		Draw:          outcome.Draw,
		Moves:         that.MoveList(),
		HistoryLength: len(that.History),
	}
}
