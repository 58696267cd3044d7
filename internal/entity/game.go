package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/samber/lo"
)

const BoardSize = 3

type Cell uint8

const (
	EmptyCell Cell = iota
	CellX
	CellO
)

const (
	EmptyMarker = " "
	MarkerX     = "X"
	MarkerO     = "O"
)

// Marker - returns the single character shown on the board.
func (that Cell) Marker() string {
	switch that {
	case CellX:
		return MarkerX
	case CellO:
		return MarkerO
	default:
		return EmptyMarker
	}
}

func (that Cell) String() string {
	return that.Marker()
}

// Player - returns the player owning the mark, false for an empty cell.
func (that Cell) Player() (Player, bool) {
	switch that {
	case CellX:
		return PlayerX, true
	case CellO:
		return PlayerO, true
	default:
		return PlayerX, false
	}
}

func ParseCell(marker string) (Cell, error) {
	switch marker {
	case EmptyMarker:
		return EmptyCell, nil
	case MarkerX:
		return CellX, nil
	case MarkerO:
		return CellO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: invalid cell marker %q", apperror.ErrValidation, marker)
	}
}

func (that Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Marker())
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	var marker string
	if err := json.Unmarshal(data, &marker); err != nil {
		return fmt.Errorf("%w: cell must be a string: %w", apperror.ErrValidation, err)
	}

	cell, err := ParseCell(marker)
	if err != nil {
		return err
	}

	*that = cell

	return nil
}

type Player uint8

const (
	PlayerX Player = iota
	PlayerO
)

// Opponent - returns the logical inverse of the player.
func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Cell - returns the mark the player places on the board.
func (that Player) Cell() Cell {
	if that == PlayerX {
		return CellX
	}
	return CellO
}

func (that Player) String() string {
	return that.Cell().Marker()
}

func ParsePlayer(marker string) (Player, error) {
	switch marker {
	case MarkerX:
		return PlayerX, nil
	case MarkerO:
		return PlayerO, nil
	default:
		return PlayerX, fmt.Errorf("%w: invalid player marker %q", apperror.ErrValidation, marker)
	}
}

func (that Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.String())
}

func (that *Player) UnmarshalJSON(data []byte) error {
	var marker string
	if err := json.Unmarshal(data, &marker); err != nil {
		return fmt.Errorf("%w: player must be a string: %w", apperror.ErrValidation, err)
	}

	player, err := ParsePlayer(marker)
	if err != nil {
		return err
	}

	*that = player

	return nil
}

// Move - a cell placed by the player who was active at the time, addressed (column, row).
type Move struct {
	Column int
	Row    int
}

func (that Move) InBounds() bool {
	return that.Column >= 0 && that.Column < BoardSize && that.Row >= 0 && that.Row < BoardSize
}

func (that Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{that.Column, that.Row})
}

func (that *Move) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: move must be a pair of integers: %w", apperror.ErrValidation, err)
	}

	if len(pair) != 2 {
		return fmt.Errorf("%w: move must have exactly 2 coordinates, got %d", apperror.ErrValidation, len(pair))
	}

	that.Column, that.Row = pair[0], pair[1]

	return nil
}

// Board - the grid addressed board[row][column].
type Board [BoardSize][BoardSize]Cell

func (that *Board) EmptyCells() int {
	return lo.SumBy(that[:], func(row [BoardSize]Cell) int {
		return lo.Count(row[:], EmptyCell)
	})
}

// Markers - returns the board as rows of cell markers.
func (that *Board) Markers() [][]string {
	rows := make([][]string, 0, BoardSize)
	for _, row := range that {
		markers := make([]string, 0, BoardSize)
		for _, cell := range row {
			markers = append(markers, cell.Marker())
		}
		rows = append(rows, markers)
	}

	return rows
}
