package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeStorage, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	gameManager := usecase.NewGameManager(logger, gameRepo)

	log.Info("Starting console", "storage", conf.Storage.Driver)
	if err = console.New(logger, gameManager, os.Stdin, os.Stdout).Start(ctx, conf.SessionID); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	return nil
}

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func(), error) {
	if conf.Storage.Driver != config.DriverRedis {
		return repository.NewMemoryRepository(), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.Storage.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			slog.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisStorage), closeStorage, nil
}
