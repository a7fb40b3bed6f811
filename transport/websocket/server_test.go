package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/strategy"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	registry := strategy.NewDefaultRegistry(1, 0)
	controller := tictactoe.NewGameController(registry, entity.PlayerO, strategy.MinimaxStrongID)
	manager := usecase.NewGameManager(logger,
		repository.NewMemoryGameRepository(logger, time.Hour),
		repository.NewLoggingGameLogRepository(logger),
		controller,
	)

	server := httptest.NewServer(New(logger, manager, nil).Handler())
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, action string, payload any) (string, ResponsePayload) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(map[string]any{"action": action, "payload": payload}))

	var msg Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))

	var resp ResponsePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &resp))

	return msg.Action, resp
}

func TestServer_GameFlow(t *testing.T) {
	conn := dial(t)

	// Given: a new game over the socket
	action, created := roundTrip(t, conn, actionGameNew, map[string]any{})
	require.Equal(t, actionGameNew, action)
	require.Empty(t, created.Error)
	require.NotNil(t, created.Game)
	gameID := created.Game.GameID
	assert.NotEmpty(t, gameID)

	// When: X takes the center
	action, turn := roundTrip(t, conn, actionGameTurn, map[string]any{"gameId": gameID, "row": 1, "col": 1, "player": "X"})

	// Then: the AI answered in a corner
	require.Equal(t, actionGameTurn, action)
	require.Empty(t, turn.Error)
	assert.Equal(t, entity.CellX, turn.Game.Board[1][1])
	assert.Equal(t, entity.CellO, turn.Game.Board[0][0])

	// Then: the state is the same when asked again
	_, state := roundTrip(t, conn, actionGameState, map[string]any{"gameId": gameID})
	assert.Equal(t, turn.Game.Board, state.Game.Board)
}

func TestServer_Errors(t *testing.T) {
	conn := dial(t)

	t.Run("Unknown action", func(t *testing.T) {
		action, resp := roundTrip(t, conn, "game:leave", nil)

		assert.Equal(t, "game:leave", action)
		assert.Equal(t, "unknown action", resp.Error)
	})

	t.Run("Occupied cell", func(t *testing.T) {
		_, created := roundTrip(t, conn, actionGameNew, map[string]any{"firstPlayer": "O", "strategyId": "center_first"})
		require.NotNil(t, created.Game)

		_, resp := roundTrip(t, conn, actionGameTurn, map[string]any{
			"gameId": created.Game.GameID, "row": 1, "col": 1, "player": "X",
		})

		assert.Contains(t, resp.Error, "occupied")
		assert.Nil(t, resp.Game)
	})

	t.Run("Missing game", func(t *testing.T) {
		_, resp := roundTrip(t, conn, actionGameState, map[string]any{"gameId": "missing"})

		assert.Contains(t, resp.Error, "not found")
	})

	t.Run("Missing cell", func(t *testing.T) {
		_, resp := roundTrip(t, conn, actionGameTurn, map[string]any{"gameId": "123", "player": "X"})

		assert.Equal(t, "gameId, row and col are required", resp.Error)
	})

	t.Run("Invalid player", func(t *testing.T) {
		_, resp := roundTrip(t, conn, actionGameNew, map[string]any{"aiPlayer": "Z"})

		assert.Contains(t, resp.Error, "invalid player")
	})
}
