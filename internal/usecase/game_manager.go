package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type gameRepo interface {
	Save(ctx context.Context, id string, game *tictactoe.TicTacToe) error
	GetByID(ctx context.Context, id string) (*tictactoe.TicTacToe, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager - runs game sessions, persisting the snapshot after every change.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	// one load-modify-save cycle at a time
	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
	}
}

// GetOrCreateGame - resumes the session with the given id, or starts a new one.
// An empty id always starts a new session with a generated id.
func (that *GameManager) GetOrCreateGame(ctx context.Context, id string) (string, *tictactoe.TicTacToe, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "GetOrCreateGame")

	if id != "" {
		game, err := that.gameRepo.GetByID(ctx, id)
		if err == nil {
			log.Info("game resumed", "session_id", id)
			return id, game, nil
		}

		if !errors.Is(err, repository.ErrGameNotFound) {
			return "", nil, fmt.Errorf("failed get game by id: %w", err)
		}
	} else {
		id = uuid.NewString()
	}

	game := tictactoe.New()
	if err := that.gameRepo.Save(ctx, id, game); err != nil {
		return "", nil, fmt.Errorf("failed create game: %w", err)
	}

	log.Info("game created", "session_id", id)

	return id, game, nil
}

// MakeTurn - plays (column, row) for the active player. Rejected moves are not saved.
func (that *GameManager) MakeTurn(ctx context.Context, id string, column, row int) (*tictactoe.TicTacToe, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "MakeTurn", "session_id", id)

	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	player := game.Whomst()

	over, err := game.Move(column, row)
	if err != nil {
		log.Debug("move rejected", "player", player.String(), "column", column, "row", row, "error", err)
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.gameRepo.Save(ctx, id, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	log.Debug("move played", "player", player.String(), "column", column, "row", row)

	if over {
		if winner, ok := game.Winner(); ok {
			log.Info("game finished", "winner", winner.String())
		} else {
			log.Info("game finished", "tie", game.Tie())
		}
	}

	return game, nil
}

// Undo - takes back the most recent move of the session.
func (that *GameManager) Undo(ctx context.Context, id string) (*tictactoe.TicTacToe, bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed get game by id: %w", err)
	}

	if !game.Undo() {
		return game, false, nil
	}

	if err = that.gameRepo.Save(ctx, id, game); err != nil {
		return nil, false, fmt.Errorf("failed update game: %w", err)
	}

	that.logger.Debug("move undone", "method", "Undo", "session_id", id, "history", len(game.History()))

	return game, true, nil
}

// Finish - drops the session snapshot.
func (that *GameManager) Finish(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "method", "Finish", "session_id", id)

	return nil
}
