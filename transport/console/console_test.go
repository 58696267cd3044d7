package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionID = "test-session"

func newTestConsole(input io.Reader) (*Console, repository.GameRepository, *bytes.Buffer) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repo := repository.NewMemoryRepository()
	out := &bytes.Buffer{}

	return New(logger, usecase.NewGameManager(logger, repo), input, out), repo, out
}

func TestConsole_Start(t *testing.T) {
	t.Run("Game is played to a win", func(t *testing.T) {
		// Given: input that lets X win and then quits
		console, repo, out := newTestConsole(strings.NewReader("1,1\n0,0\n0,2\n1,0\n2,0\nquit\n"))

		// When: the console runs
		err := console.Start(context.Background(), sessionID)

		// Then: the final board is printed and the finished session is dropped
		require.NoError(t, err)
		assert.Contains(t, out.String(), "session "+sessionID+"\n")
		assert.Contains(t, out.String(), "O|O|X\n-----\n |X| \n-----\nX| | \nX won!\n")
		assert.Contains(t, out.String(), gameOverHint)

		_, err = repo.GetByID(context.Background(), sessionID)
		require.ErrorIs(t, err, repository.ErrGameNotFound)
	})

	t.Run("Bad input does not stop the loop", func(t *testing.T) {
		// Given: malformed input, illegal moves and undos
		console, repo, out := newTestConsole(strings.NewReader("abc\n1\n5,5\n1,1\n1,1\nundo\nundo\n"))

		// When: the console runs until the input ends
		err := console.Start(context.Background(), sessionID)

		// Then: every problem is reported and the session is kept
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out.String(), formatHint))
		assert.Contains(t, out.String(), "location coordinates out of bounds")
		assert.Contains(t, out.String(), "space is not free")
		assert.Contains(t, out.String(), nothingToUndo)

		game, err := repo.GetByID(context.Background(), sessionID)
		require.NoError(t, err)
		assert.Empty(t, game.History())
		assert.Equal(t, entity.PlayerX, game.Whomst())
	})

	t.Run("Quit keeps an unfinished game", func(t *testing.T) {
		console, repo, out := newTestConsole(strings.NewReader("0,0\nquit\n"))

		err := console.Start(context.Background(), sessionID)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "game saved as session "+sessionID)

		game, err := repo.GetByID(context.Background(), sessionID)
		require.NoError(t, err)
		assert.Len(t, game.History(), 1)
	})

	t.Run("Moves after the game is over are reported", func(t *testing.T) {
		console, _, out := newTestConsole(strings.NewReader("0,0\n0,1\n1,0\n1,1\n2,0\n2,2\n"))

		err := console.Start(context.Background(), sessionID)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "game is already finished")
	})

	t.Run("Stops when the context is canceled", func(t *testing.T) {
		// Given: input that never arrives
		reader, writer := io.Pipe()
		t.Cleanup(func() {
			_ = writer.Close()
		})

		console, _, _ := newTestConsole(reader)
		ctx, cancel := context.WithCancel(context.Background())

		// When: the context is canceled
		done := make(chan error, 1)
		go func() {
			done <- console.Start(ctx, sessionID)
		}()
		cancel()

		// Then: the console returns
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("console did not stop")
		}
	})
}

func TestConsole_Start_StopsReader(t *testing.T) {
	// Given: input that continues after quit
	before := runtime.NumGoroutine()
	console, _, _ := newTestConsole(strings.NewReader("quit\n0,0\n1,1\n"))

	// When: the console returns on quit
	err := console.Start(context.Background(), sessionID)
	require.NoError(t, err)

	// Then: the reader goroutine does not stay blocked on the remaining lines
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond)
}

func TestParseMove(t *testing.T) {
	column, row, err := parseMove(" 2 , 0")
	require.NoError(t, err)
	assert.Equal(t, 2, column)
	assert.Equal(t, 0, row)

	for _, input := range []string{"", "1", "1,2,3", "a,1", "1,b"} {
		_, _, err = parseMove(input)
		assert.Error(t, err, input)
	}
}
