package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/samber/lo"
)

const maxHistory = entity.BoardSize * entity.BoardSize

// WinPaths - rows, then columns, then the two diagonals, as (column, row) pairs.
var WinPaths = [][3]entity.Move{
	{{Column: 0, Row: 0}, {Column: 1, Row: 0}, {Column: 2, Row: 0}},
	{{Column: 0, Row: 1}, {Column: 1, Row: 1}, {Column: 2, Row: 1}},
	{{Column: 0, Row: 2}, {Column: 1, Row: 2}, {Column: 2, Row: 2}},
	{{Column: 0, Row: 0}, {Column: 0, Row: 1}, {Column: 0, Row: 2}},
	{{Column: 1, Row: 0}, {Column: 1, Row: 1}, {Column: 1, Row: 2}},
	{{Column: 2, Row: 0}, {Column: 2, Row: 1}, {Column: 2, Row: 2}},
	{{Column: 0, Row: 0}, {Column: 1, Row: 1}, {Column: 2, Row: 2}},
	{{Column: 2, Row: 0}, {Column: 1, Row: 1}, {Column: 0, Row: 2}},
}

// TicTacToe - the game state engine. It is not safe for concurrent use.
type TicTacToe struct {
	board   entity.Board
	history []entity.Move
	whomst  entity.Player

	over      bool
	tie       bool
	winner    entity.Player
	hasWinner bool
}

// New - creates a fresh game with X to move.
func New() *TicTacToe {
	game := &TicTacToe{
		history: make([]entity.Move, 0, maxHistory),
		whomst:  entity.PlayerX,
	}
	game.Evaluate()

	return game
}

// FromSnapshot - restores a game from its board, history and active player.
// The terminal flags are always recomputed, board and history are not cross-checked.
func FromSnapshot(board [][]entity.Cell, history []entity.Move, whomst entity.Player) (*TicTacToe, error) {
	if err := validateSnapshot(board, history, whomst); err != nil {
		return nil, err
	}

	game := &TicTacToe{
		history: make([]entity.Move, 0, maxHistory),
		whomst:  whomst,
	}

	for row := range board {
		copy(game.board[row][:], board[row])
	}
	game.history = append(game.history, history...)

	game.Evaluate()

	return game, nil
}

func validateSnapshot(board [][]entity.Cell, history []entity.Move, whomst entity.Player) error {
	if len(board) != entity.BoardSize {
		return fmt.Errorf("%w: board must have %d rows, got %d", apperror.ErrValidation, entity.BoardSize, len(board))
	}

	for i, row := range board {
		if len(row) != entity.BoardSize {
			return fmt.Errorf("%w: board row %d must have %d cells, got %d", apperror.ErrValidation, i, entity.BoardSize, len(row))
		}

		for _, cell := range row {
			if cell > entity.CellO {
				return fmt.Errorf("%w: board row %d has unknown cell %d", apperror.ErrValidation, i, cell)
			}
		}
	}

	if len(history) > maxHistory {
		return fmt.Errorf("%w: history has %d moves, at most %d allowed", apperror.ErrValidation, len(history), maxHistory)
	}

	for i, move := range history {
		if !move.InBounds() {
			return fmt.Errorf("%w: history move %d (%d,%d) out of range", apperror.ErrValidation, i, move.Column, move.Row)
		}
	}

	if whomst != entity.PlayerX && whomst != entity.PlayerO {
		return fmt.Errorf("%w: unknown active player %d", apperror.ErrValidation, whomst)
	}

	return nil
}

// Evaluate - checks the board for a win or a tie and updates the terminal flags.
// Once the game is over it returns true without looking at the board again.
func (that *TicTacToe) Evaluate() bool {
	if that.over {
		return true
	}

	for _, path := range WinPaths {
		cells := lo.Map(path[:], func(move entity.Move, _ int) entity.Cell {
			return that.board[move.Row][move.Column]
		})

		distinct := lo.Uniq(cells)
		if len(distinct) != 1 {
			continue
		}

		// the mark on the path is the player who just moved, whomst has already passed on
		if winner, ok := distinct[0].Player(); ok {
			that.over = true
			that.winner = winner
			that.hasWinner = true

			return true
		}
	}

	if that.board.EmptyCells() == 0 {
		that.over = true
		that.tie = true

		return true
	}

	return false
}

// Move - places the active player's mark at (column, row).
// Returns true when the move ended the game.
func (that *TicTacToe) Move(column, row int) (bool, error) {
	if err := that.validateMove(column, row); err != nil {
		return false, err
	}

	that.board[row][column] = that.whomst.Cell()
	that.history = append(that.history, entity.Move{Column: column, Row: row})
	that.whomst = that.whomst.Opponent()

	return that.Evaluate(), nil
}

// validateMove - checks if the move is valid.
func (that *TicTacToe) validateMove(column, row int) error {
	move := entity.Move{Column: column, Row: row}
	if !move.InBounds() {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrOutOfBounds, column, row)
	}

	if that.over {
		return apperror.ErrGameFinished
	}

	if that.board[row][column] != entity.EmptyCell {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrCellOccupied, column, row)
	}

	return nil
}

// Undo - takes back the most recent move. Returns false if there is nothing to undo.
func (that *TicTacToe) Undo() bool {
	if len(that.history) == 0 {
		return false
	}

	last := that.history[len(that.history)-1]
	that.history = that.history[:len(that.history)-1]

	that.board[last.Row][last.Column] = entity.EmptyCell
	that.whomst = that.whomst.Opponent()

	that.over = false
	that.tie = false
	that.winner = entity.PlayerX
	that.hasWinner = false

	return true
}

func (that *TicTacToe) Board() entity.Board {
	return that.board
}

func (that *TicTacToe) History() []entity.Move {
	return append([]entity.Move(nil), that.history...)
}

func (that *TicTacToe) Whomst() entity.Player {
	return that.whomst
}

func (that *TicTacToe) Over() bool {
	return that.over
}

func (that *TicTacToe) Tie() bool {
	return that.tie
}

func (that *TicTacToe) Winner() (entity.Player, bool) {
	return that.winner, that.hasWinner
}

// String - renders the board followed by a status line.
func (that *TicTacToe) String() string {
	rows := make([]string, 0, entity.BoardSize)
	for _, markers := range that.board.Markers() {
		rows = append(rows, strings.Join(markers, "|")+"\n")
	}

	return strings.Join(rows, "-----\n") + that.status()
}

func (that *TicTacToe) status() string {
	switch {
	case that.hasWinner:
		return that.winner.String() + " won!"
	case that.tie:
		return "tie game!"
	default:
		return that.whomst.String() + "'s turn"
	}
}
