package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playMoves applies cells in order and fails the test on any ignored move.
func playMoves(t *testing.T, game *Game, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		applied, err := game.ApplyMove(cell)
		require.NoError(t, err)
		require.True(t, applied, "move at cell %d was ignored", cell)
	}
}

func TestNewGame(t *testing.T) {
	// When: create a new game
	game := NewGame("123")

	// Then: the game should have a single empty snapshot with X to move
	expectedGame := &Game{
		ID:        "123",
		History:   []Move{{Board: Board{}, Cell: NoCell}},
		Step:      0,
		Turn:      PlayerX,
		Ascending: true,
	}

	require.Equal(t, expectedGame, game)
	assert.Equal(t, "Next player: X", game.Status())
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Successful move", func(t *testing.T) {
		// Given: a new game
		game := NewGame("123")

		// When: player X takes the center
		applied, err := game.ApplyMove(4)
		require.NoError(t, err)

		// Then: a snapshot is appended and the turn passes to O
		assert.True(t, applied)
		require.Len(t, game.History, 2)
		assert.Equal(t, 1, game.Step)
		assert.Equal(t, PlayerO, game.Turn)
		assert.Equal(t, Board{"", "", "", "", PlayerX, "", "", "", ""}, game.Current())
		assert.Equal(t, 4, game.History[1].Cell)
	})

	t.Run("Earlier snapshots are not modified", func(t *testing.T) {
		// Given: a game with one move
		game := NewGame("123")
		playMoves(t, game, 0)

		// When: another move is made
		playMoves(t, game, 8)

		// Then: previous snapshots keep their boards
		assert.Equal(t, Board{}, game.History[0].Board)
		assert.Equal(t, Board{PlayerX, "", "", "", "", "", "", "", ""}, game.History[1].Board)
	})

	t.Run("Occupied cell is ignored", func(t *testing.T) {
		// Given: a game where cell 0 is taken by X
		game := NewGame("123")
		playMoves(t, game, 0)
		before := *game
		before.History = append([]Move(nil), game.History...)

		// When: O tries the same cell
		applied, err := game.ApplyMove(0)

		// Then: nothing changes and no error is returned
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, &before, game)
	})

	t.Run("Decided game is ignored", func(t *testing.T) {
		// Given: X has won on the top row
		game := NewGame("123")
		playMoves(t, game, 0, 4, 1, 3, 2)
		before := *game
		before.History = append([]Move(nil), game.History...)

		// When: O tries to play on a free cell
		applied, err := game.ApplyMove(8)

		// Then: the state is unchanged
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, &before, game)
	})

	t.Run("Invalid cell index", func(t *testing.T) {
		game := NewGame("123")

		for _, cell := range []int{-1, 9, 20} {
			// When: a cell outside the board is passed
			applied, err := game.ApplyMove(cell)

			// Then: ErrInvalidCell is returned
			require.ErrorIs(t, err, ErrInvalidCell)
			assert.False(t, applied)
		}

		assert.Len(t, game.History, 1)
	})

	t.Run("Move after jump truncates history", func(t *testing.T) {
		// Given: a game with four moves
		game := NewGame("123")
		playMoves(t, game, 0, 4, 1, 3)
		require.Len(t, game.History, 5)

		// When: jumping back to step 1 and playing again
		require.NoError(t, game.JumpTo(1))
		playMoves(t, game, 8)

		// Then: the history is k+2 long and the newest entry is the replayed move
		require.Len(t, game.History, 3)
		assert.Equal(t, 2, game.Step)
		assert.Equal(t, 8, game.History[2].Cell)
		assert.Equal(t, Board{PlayerX, "", "", "", "", "", "", "", PlayerO}, game.Current())
		assert.Equal(t, PlayerX, game.Turn)
	})
}

func TestGame_JumpTo(t *testing.T) {
	t.Run("Jump keeps history and recomputes turn", func(t *testing.T) {
		// Given: a game with three moves
		game := NewGame("123")
		playMoves(t, game, 0, 4, 1)

		// When: jumping to each step
		for step, turn := range []string{PlayerX, PlayerO, PlayerX, PlayerO} {
			require.NoError(t, game.JumpTo(step))

			// Then: turn follows step parity and history is untouched
			assert.Equal(t, step, game.Step)
			assert.Equal(t, turn, game.Turn)
			assert.Len(t, game.History, 4)
		}
	})

	t.Run("Out of range step", func(t *testing.T) {
		// Given: a game with one move
		game := NewGame("123")
		playMoves(t, game, 0)

		for _, step := range []int{-1, 2} {
			// When: jumping outside the history
			err := game.JumpTo(step)

			// Then: ErrInvalidStep is returned and the step is kept
			require.ErrorIs(t, err, ErrInvalidStep)
			assert.Equal(t, 1, game.Step)
			assert.Equal(t, PlayerO, game.Turn)
		}
	})

	t.Run("Jump back out of a won game allows moves again", func(t *testing.T) {
		// Given: X has won
		game := NewGame("123")
		playMoves(t, game, 0, 4, 1, 3, 2)
		require.True(t, game.IsFinished())

		// When: jumping to before the winning move
		require.NoError(t, game.JumpTo(4))

		// Then: the game is open and X may play elsewhere
		assert.False(t, game.IsFinished())
		playMoves(t, game, 8)
		assert.Len(t, game.History, 6)
		assert.Equal(t, PlayerX, game.Current()[8])
		assert.Equal(t, EmptyCell, game.Current()[2])
	})
}

func TestGame_JumpToLatestThenMove(t *testing.T) {
	// Given: a game rewound to the start and brought back to the latest step
	game := NewGame("123")
	playMoves(t, game, 0, 4)
	require.NoError(t, game.JumpTo(0))
	require.NoError(t, game.JumpTo(2))
	before := append([]Move(nil), game.History...)

	// When: X plays on
	playMoves(t, game, 8)

	// Then: nothing is truncated and earlier snapshots keep their boards
	require.Len(t, game.History, 4)
	assert.Equal(t, before, game.History[:3])
	assert.Equal(t, PlayerO, game.Turn)
}

func TestGame_JSON(t *testing.T) {
	// Given: a game viewed at an earlier step in descending order
	game := NewGame("123")
	playMoves(t, game, 0, 4, 1)
	require.NoError(t, game.JumpTo(1))
	game.ToggleMoveOrder()

	// When: encoding and decoding it
	data, err := json.Marshal(game)
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Then: every field survives, including the initial snapshot's cell
	assert.Equal(t, game, &decoded)
	assert.Equal(t, NoCell, decoded.History[0].Cell)
}

func TestGame_ToggleMoveOrder(t *testing.T) {
	// Given: a game with a move
	game := NewGame("123")
	playMoves(t, game, 0)

	// When: toggling the move order twice
	game.ToggleMoveOrder()
	assert.False(t, game.Ascending)
	game.ToggleMoveOrder()

	// Then: the flag is restored and game state is untouched
	assert.True(t, game.Ascending)
	assert.Len(t, game.History, 2)
	assert.Equal(t, 1, game.Step)
	assert.Equal(t, PlayerO, game.Turn)
}

func TestGame_Status(t *testing.T) {
	t.Run("Winner", func(t *testing.T) {
		// Given: X plays 0,1,2 and O plays 4,3
		game := NewGame("123")
		playMoves(t, game, 0, 4, 1, 3, 2)

		// Then: X wins on the top row
		assert.Equal(t, Board{PlayerX, PlayerX, PlayerX, PlayerO, PlayerO, "", "", "", ""}, game.Current())
		assert.Equal(t, Outcome{Winner: PlayerX, Line: []int{0, 1, 2}}, game.Outcome())
		assert.Equal(t, "Winner: X", game.Status())
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a full board without a line
		game := NewGame("123")
		playMoves(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: the status reports a draw
		assert.True(t, game.Outcome().Draw)
		assert.Equal(t, "Draw", game.Status())
	})

	t.Run("Viewing an earlier step of a drawn game", func(t *testing.T) {
		// Given: a drawn game
		game := NewGame("123")
		playMoves(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: jumping back
		require.NoError(t, game.JumpTo(3))

		// Then: the next player is shown instead of a draw
		assert.Equal(t, "Next player: O", game.Status())
	})
}

func TestPosition(t *testing.T) {
	row, col := Position(7)
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)
}
