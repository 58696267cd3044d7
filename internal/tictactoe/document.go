package tictactoe

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Document - the interchange form of a game. Field order is part of the format.
type Document struct {
	Board    [][]entity.Cell `json:"board"`
	History  []entity.Move   `json:"history"`
	Whomst   *entity.Player  `json:"whomst"`
	GameOver bool            `json:"game_over"`
	TieGame  bool            `json:"tie_game"`
	Winner   *entity.Player  `json:"winner"`
}

func (that *TicTacToe) ToDocument() Document {
	board := make([][]entity.Cell, 0, entity.BoardSize)
	for _, row := range that.board {
		board = append(board, append([]entity.Cell(nil), row[:]...))
	}

	whomst := that.whomst

	doc := Document{
		Board:    board,
		History:  append(make([]entity.Move, 0, len(that.history)), that.history...),
		Whomst:   &whomst,
		GameOver: that.over,
		TieGame:  that.tie,
	}

	if winner, ok := that.Winner(); ok {
		doc.Winner = &winner
	}

	return doc
}

// FromDocument - restores a game from a document. The game_over, tie_game and
// winner fields are ignored and recomputed from the board.
func FromDocument(doc Document) (*TicTacToe, error) {
	if doc.Whomst == nil {
		return nil, fmt.Errorf("invalid document: %w: whomst is missing", apperror.ErrValidation)
	}

	game, err := FromSnapshot(doc.Board, doc.History, *doc.Whomst)
	if err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	return game, nil
}

func (that *TicTacToe) ToJSON() ([]byte, error) {
	data, err := json.Marshal(that.ToDocument())
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return data, nil
}

func FromJSON(data []byte) (*TicTacToe, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal game: %w", apperror.ErrValidation, err)
	}

	return FromDocument(doc)
}
