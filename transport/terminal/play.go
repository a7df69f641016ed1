package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

var errQuit = errors.New("quit")

type bot interface {
	ChooseCell(game *entity.Game) (int, error)
}

// Game runs a local match over a line-oriented reader and writer.
type Game struct {
	logger *slog.Logger
	in     *bufio.Scanner
	out    io.Writer

	game *entity.Game
	bot  bot
}

// New - bot may be nil; when set it plays every O move, including after a jump to O's turn.
func New(logger *slog.Logger, in io.Reader, out io.Writer, bot bot) *Game {
	return &Game{
		logger: logger.With("component", "terminal"),
		in:     bufio.NewScanner(in),
		out:    out,
		game:   entity.NewGame("local"),
		bot:    bot,
	}
}

// Run - reads commands until quit or end of input.
func (that *Game) Run() error {
	that.render()

	for {
		fmt.Fprint(that.out, "> ")

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}
			return nil
		}

		err := that.execute(strings.TrimSpace(that.in.Text()))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(that.out, err)
			continue
		}

		that.render()
	}
}

func (that *Game) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "quit", "exit":
		return errQuit
	case "order":
		that.game.ToggleMoveOrder()
		return nil
	case "jump":
		if len(fields) != 2 {
			return errors.New("usage: jump <step>")
		}

		step, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid step %q", fields[1])
		}

		if err = that.game.JumpTo(step); err != nil {
			return err
		}

		return that.botTurn()
	default:
		cell, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("unknown command %q", line)
		}

		return that.move(cell)
	}
}

func (that *Game) move(cell int) error {
	applied, err := that.game.ApplyMove(cell)
	if err != nil {
		return err
	}

	if !applied {
		that.logger.Debug("move ignored", "cell", cell)
		return nil
	}

	return that.botTurn()
}

// botTurn plays O whenever the bot is on and the selected step leaves O to move,
// after a human move or after a jump. Playing from an earlier step drops the later history.
func (that *Game) botTurn() error {
	if that.bot == nil || that.game.Turn != entity.PlayerO || that.game.IsFinished() {
		return nil
	}

	botCell, err := that.bot.ChooseCell(that.game)
	if err != nil {
		return fmt.Errorf("bot failed to choose a cell: %w", err)
	}

	if _, err = that.game.ApplyMove(botCell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *Game) render() {
	board := that.game.Current()
	outcome := that.game.Outcome()

	highlight := make(map[int]bool, len(outcome.Line))
	for _, cell := range outcome.Line {
		highlight[cell] = true
	}

	var sb strings.Builder
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			cell := row*entity.BoardSize + col

			mark := board[cell]
			if mark == entity.EmptyCell {
				mark = strconv.Itoa(cell)
			}

			if highlight[cell] {
				fmt.Fprintf(&sb, "[%s]", mark)
			} else {
				fmt.Fprintf(&sb, " %s ", mark)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(that.game.Status())
	sb.WriteString("\n")

	for _, move := range that.game.MoveList() {
		marker := " "
		if move.Selected {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %d. %s\n", marker, move.Step, move.Description)
	}

	fmt.Fprint(that.out, sb.String())
}
