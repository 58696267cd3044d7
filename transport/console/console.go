package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	commandUndo = "undo"
	commandQuit = "quit"

	promptMove    = "enter your move:"
	formatHint    = "expecting move format 'x,y'"
	nothingToUndo = "nothing to undo"
	gameOverHint  = "game over, type 'undo' or 'quit'"
)

type uGame interface {
	GetOrCreateGame(ctx context.Context, id string) (string, *tictactoe.TicTacToe, error)
	MakeTurn(ctx context.Context, id string, column, row int) (*tictactoe.TicTacToe, error)
	Undo(ctx context.Context, id string) (*tictactoe.TicTacToe, bool, error)
	Finish(ctx context.Context, id string) error
}

// Console - the interactive front end: reads "x,y" moves and prints the board.
type Console struct {
	logger *slog.Logger
	uGame  uGame

	in  io.Reader
	out io.Writer
}

func New(logger *slog.Logger, uGame uGame, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		uGame:  uGame,

		in:  in,
		out: out,
	}
}

// Start - runs the input loop until quit, end of input or ctx is canceled.
// Bad input and illegal moves are reported and the loop goes on.
func (that *Console) Start(ctx context.Context, sessionID string) error {
	// stops the input reader once the loop returns
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	id, game, err := that.uGame.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.printf("session %s\n", id)

	lines := that.readLines(ctx)

	for {
		that.printf("%s\n", game)
		if game.Over() {
			that.printf("%s\n", gameOverHint)
		}
		that.printf("%s", promptMove)

		var line string
		var ok bool

		select {
		case <-ctx.Done():
			that.logger.Info("console stopped", "reason", ctx.Err())
			return nil
		case line, ok = <-lines:
		}

		if !ok {
			that.printf("\n")
			return nil
		}

		switch command := strings.TrimSpace(line); command {
		case commandQuit:
			return that.quit(ctx, id, game)
		case commandUndo:
			updated, undone, err := that.uGame.Undo(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to undo: %w", err)
			}

			if !undone {
				that.printf("%s\n", nothingToUndo)
			}

			game = updated
		default:
			column, row, err := parseMove(command)
			if err != nil {
				that.printf("%s\n", formatHint)
				continue
			}

			updated, err := that.uGame.MakeTurn(ctx, id, column, row)
			if err != nil {
				message, recoverable := moveErrorMessage(err)
				if !recoverable {
					return fmt.Errorf("failed to make turn: %w", err)
				}

				that.printf("%s\n", message)
				continue
			}

			game = updated
		}
	}
}

func (that *Console) quit(ctx context.Context, id string, game *tictactoe.TicTacToe) error {
	if !game.Over() {
		that.printf("game saved as session %s\n", id)
		return nil
	}

	if err := that.uGame.Finish(ctx, id); err != nil {
		return fmt.Errorf("failed to finish game: %w", err)
	}

	return nil
}

// readLines - feeds input lines to a channel so the loop can also watch ctx.
func (that *Console) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			that.logger.Error("failed to read input", "error", err)
		}
	}()

	return lines
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

// parseMove - parses "x,y" into column and row.
func parseMove(input string) (int, int, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected 2 values, got %d", len(parts))
	}

	column, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column: %w", err)
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row: %w", err)
	}

	return column, row, nil
}

func moveErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, apperror.ErrOutOfBounds):
		return "location coordinates out of bounds", true
	case errors.Is(err, apperror.ErrGameFinished):
		return "game is already finished", true
	case errors.Is(err, apperror.ErrCellOccupied):
		return "space is not free", true
	default:
		return "", false
	}
}
