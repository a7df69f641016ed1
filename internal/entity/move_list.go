package entity

import "fmt"

// MoveEntry is one line of the move list.
type MoveEntry struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

// MoveList describes every history step in the current display order.
func (that *Game) MoveList() []MoveEntry {
	entries := make([]MoveEntry, 0, len(that.History))

	for step, move := range that.History {
		entries = append(entries, MoveEntry{
			Step:        step,
			Description: describe(step, move),
			Selected:    step == that.Step,
		})
	}

	if !that.Ascending {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	return entries
}

func describe(step int, move Move) string {
	if step == 0 {
		return "Go to game start"
	}

	row, col := Position(move.Cell)

	// the mark that produced this snapshot belongs to the player who moved before it
	return fmt.Sprintf("Go to move #%d played (%d,%d) by %s", step, row, col, markForStep(step-1))
}
