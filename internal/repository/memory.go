package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type memoryGame struct {
	mu    sync.Mutex
	games map[string][]byte
}

// NewMemoryRepository - keeps snapshot documents in process, used when redis is disabled.
func NewMemoryRepository() GameRepository {
	return &memoryGame{
		games: make(map[string][]byte),
	}
}

func (that *memoryGame) Save(_ context.Context, id string, game *tictactoe.TicTacToe) error {
	gameJSON, err := game.ToJSON()
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[id] = gameJSON

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*tictactoe.TicTacToe, error) {
	that.mu.Lock()
	gameJSON, ok := that.games[id]
	that.mu.Unlock()

	if !ok {
		return nil, ErrGameNotFound
	}

	game, err := tictactoe.FromJSON(gameJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return game, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}
