package terminal

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type firstFreeBot struct{}

func (firstFreeBot) ChooseCell(game *entity.Game) (int, error) {
	for i, cell := range game.Current() {
		if cell == entity.EmptyCell {
			return i, nil
		}
	}
	return entity.NoCell, nil
}

func run(t *testing.T, input string, bot bot) (*Game, string) {
	t.Helper()

	var out bytes.Buffer
	game := New(slog.New(slog.NewTextHandler(io.Discard, nil)), strings.NewReader(input), &out, bot)

	require.NoError(t, game.Run())

	return game, out.String()
}

func TestGame_Run(t *testing.T) {
	t.Run("Plays to a win and highlights the line", func(t *testing.T) {
		// When: X plays 0,1,2 and O plays 4,3
		game, out := run(t, "0\n4\n1\n3\n2\nquit\n", nil)

		// Then: the winner and line are shown
		assert.Equal(t, "Winner: X", game.game.Status())
		assert.Contains(t, out, "[X][X][X]")
		assert.Contains(t, out, "* 5. Go to move #5 played (0,2) by X")
	})

	t.Run("Jump and order commands", func(t *testing.T) {
		// When: two moves, a jump to the start and an order toggle
		game, out := run(t, "4\n8\njump 0\norder\n", nil)

		// Then: the history is kept and the list is reversed
		assert.Equal(t, 0, game.game.Step)
		assert.Len(t, game.game.History, 3)
		assert.False(t, game.game.Ascending)
		assert.Contains(t, out, "  2. Go to move #2 played (2,2) by O\n  1. Go to move #1 played (1,1) by X\n* 0. Go to game start")
	})

	t.Run("Reports bad input and keeps going", func(t *testing.T) {
		_, out := run(t, "nine\njump\njump 7\n12\n0\n", nil)

		assert.Contains(t, out, `unknown command "nine"`)
		assert.Contains(t, out, "usage: jump <step>")
		assert.Contains(t, out, entity.ErrInvalidStep.Error())
		assert.Contains(t, out, entity.ErrInvalidCell.Error())
		assert.Contains(t, out, "Next player: O")
	})

	t.Run("Bot answers every X move", func(t *testing.T) {
		// When: X plays the center against a first-free-cell bot
		game, _ := run(t, "4\n", firstFreeBot{})

		// Then: O took cell 0 and it is X's turn again
		assert.Equal(t, entity.PlayerO, game.game.Current()[0])
		assert.Equal(t, entity.PlayerX, game.game.Turn)
		assert.Len(t, game.game.History, 3)
	})

	t.Run("Bot answers a jump that leaves O to move", func(t *testing.T) {
		// Given: X plays 4 then 1, and the bot answers 0 then 2
		// When: jumping back to step 1, where O is to move
		game, out := run(t, "4\n1\njump 1\n", firstFreeBot{})

		// Then: the bot replays O at cell 0 and the later history is dropped
		assert.Len(t, game.game.History, 3)
		assert.Equal(t, 2, game.game.Step)
		assert.Equal(t, entity.PlayerX, game.game.Turn)
		assert.Equal(t, entity.Board{entity.PlayerO, "", "", "", entity.PlayerX, "", "", "", ""}, game.game.Current())
		assert.NotContains(t, out, "bot failed")
	})

	t.Run("Bot stays idle after a jump to X's turn", func(t *testing.T) {
		// When: jumping back to the start after one exchange
		game, _ := run(t, "4\njump 0\n", firstFreeBot{})

		// Then: the history is kept and X is to move
		assert.Len(t, game.game.History, 3)
		assert.Equal(t, 0, game.game.Step)
		assert.Equal(t, entity.PlayerX, game.game.Turn)
	})
}
