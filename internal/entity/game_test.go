package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()

	game, err := NewGame("123", DefaultBoardSize, PlayerX)
	require.NoError(t, err)

	return game
}

func TestNewGame(t *testing.T) {
	t.Run("Starts ongoing with an empty board", func(t *testing.T) {
		// When: a new game is created
		game := newTestGame(t)

		// Then: X is to move on an empty board
		assert.Equal(t, "123", game.ID)
		assert.Equal(t, PlayerX, game.Turn)
		assert.Equal(t, StatusOngoing, game.Status)
		assert.Len(t, game.Board.EmptyCells(), 9)
		assert.Empty(t, game.Moves)
	})

	t.Run("O can be configured to start", func(t *testing.T) {
		game, err := NewGame("123", DefaultBoardSize, PlayerO)
		require.NoError(t, err)

		assert.Equal(t, PlayerO, game.Turn)
	})

	t.Run("Rejects an unknown first player", func(t *testing.T) {
		_, err := NewGame("123", DefaultBoardSize, "Z")
		assert.ErrorIs(t, err, apperror.ErrInvalidPlayer)
	})
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Successful move flips the turn", func(t *testing.T) {
		// Given: a new game
		game := newTestGame(t)

		// When: X plays the center
		err := game.ApplyMove(1, 1, PlayerX)
		require.NoError(t, err)

		// Then: the mark is placed and O is to move
		cell, _ := game.Board.Get(1, 1)
		assert.Equal(t, CellX, cell)
		assert.Equal(t, PlayerO, game.Turn)
		assert.Equal(t, StatusOngoing, game.Status)
		assert.Equal(t, []Move{{Row: 1, Col: 1, Player: PlayerX}}, game.Moves)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X holds (0, 0)
		game := newTestGame(t)
		require.NoError(t, game.ApplyMove(0, 0, PlayerX))
		before := game.View()

		// When: O plays the same cell
		err := game.ApplyMove(0, 0, PlayerO)

		// Then: ErrCellOccupied is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, game.View())
		assert.Len(t, game.Moves, 1)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: X has just moved
		game := newTestGame(t)
		require.NoError(t, game.ApplyMove(0, 0, PlayerX))

		// When: X tries to move again
		err := game.ApplyMove(0, 1, PlayerX)

		// Then: ErrNotYourTurn is returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, PlayerO, game.Turn)
		assert.Len(t, game.Board.EmptyCells(), 8)
	})

	t.Run("Error on out of range cell", func(t *testing.T) {
		game := newTestGame(t)

		assert.ErrorIs(t, game.ApplyMove(3, 0, PlayerX), apperror.ErrOutOfRange)
		assert.ErrorIs(t, game.ApplyMove(0, -1, PlayerX), apperror.ErrOutOfRange)
		assert.Equal(t, PlayerX, game.Turn)
	})

	t.Run("Error on unknown player", func(t *testing.T) {
		game := newTestGame(t)

		assert.ErrorIs(t, game.ApplyMove(0, 0, "Z"), apperror.ErrInvalidPlayer)
	})

	t.Run("Winning move ends the game", func(t *testing.T) {
		// Given: the board [[X,O,X],[O,X,O],[O,X,_]] with X to move
		board := mustBoard(t, [][]Cell{{x, o, x}, {o, x, o}, {o, x, e}})
		game, err := GameFromBoard("123", board, PlayerX)
		require.NoError(t, err)

		// When: X plays (2, 2)
		require.NoError(t, game.ApplyMove(2, 2, PlayerX))

		// Then: X wins through the main diagonal
		view := game.View()
		require.NotNil(t, view.Winner)
		assert.Equal(t, PlayerX, *view.Winner)
		assert.Equal(t, []Position{{0, 0}, {1, 1}, {2, 2}}, view.WinningCells)
		assert.True(t, view.GameEnded)
		assert.Equal(t, StatusWon, game.Status)
		assert.Equal(t, PlayerX, game.Turn)
		assert.Equal(t, "X", game.Result())
	})

	t.Run("Filling the board without a line is a draw", func(t *testing.T) {
		// Given: one free cell that completes no line
		board := mustBoard(t, [][]Cell{{x, o, x}, {x, o, o}, {o, x, e}})
		game, err := GameFromBoard("123", board, PlayerX)
		require.NoError(t, err)

		// When: X fills it
		require.NoError(t, game.ApplyMove(2, 2, PlayerX))

		// Then: the game is drawn without a winner
		view := game.View()
		assert.Equal(t, StatusDraw, game.Status)
		assert.Nil(t, view.Winner)
		assert.Empty(t, view.WinningCells)
		assert.True(t, view.GameEnded)
		assert.Equal(t, ResultDraw, game.Result())
	})

	t.Run("Finished games reject further moves", func(t *testing.T) {
		// Given: a game X has won
		board := mustBoard(t, [][]Cell{{x, x, x}, {o, o, e}, {e, e, e}})
		game, err := GameFromBoard("123", board, PlayerO)
		require.NoError(t, err)
		require.Equal(t, StatusWon, game.Status)

		// When: O tries to move
		err = game.ApplyMove(1, 2, PlayerO)

		// Then: ErrGameFinished is returned
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGame_AlternatingTurns(t *testing.T) {
	// Given: a scripted game with legal moves only
	game := newTestGame(t)
	script := []Position{{0, 0}, {1, 1}, {0, 1}, {0, 2}, {2, 0}, {1, 0}, {1, 2}, {2, 1}, {2, 2}}

	// When: every move is played by whoever is to move
	for _, pos := range script {
		mover := game.Turn
		require.NoError(t, game.ApplyMove(pos.Row, pos.Col, mover))

		// Then: the same player can never move twice in a row
		if game.IsOngoing() {
			assert.ErrorIs(t, game.ApplyMove(pos.Row, pos.Col, mover), apperror.ErrNotYourTurn)
		}
	}

	for i := 1; i < len(game.Moves); i++ {
		assert.NotEqual(t, game.Moves[i-1].Player, game.Moves[i].Player)
	}
}

func TestGame_StatusIsStable(t *testing.T) {
	game := newTestGame(t)
	require.NoError(t, game.ApplyMove(1, 1, PlayerX))

	first := game.View()
	second := game.View()

	assert.Equal(t, first, second)
	assert.Equal(t, game.Status, game.Status)
}

func TestGameFromBoard(t *testing.T) {
	t.Run("Rejects impossible mark counts", func(t *testing.T) {
		board := mustBoard(t, [][]Cell{{x, x, x}, {e, e, e}, {e, e, e}})

		_, err := GameFromBoard("", board, PlayerO)

		assert.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Rejects the side that already has the extra mark", func(t *testing.T) {
		// Given: X has one mark more than O
		board := mustBoard(t, [][]Cell{{x, e, e}, {e, e, e}, {e, e, e}})

		// When: X is named as the mover again
		_, err := GameFromBoard("", board, PlayerX)

		// Then: ErrNotYourTurn is returned
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)

		// And: the mirrored case is rejected for O
		board = mustBoard(t, [][]Cell{{o, e, e}, {e, e, e}, {e, e, e}})
		_, err = GameFromBoard("", board, PlayerO)
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Equal counts let either side move", func(t *testing.T) {
		board := mustBoard(t, [][]Cell{{x, o, e}, {e, e, e}, {e, e, e}})

		for _, turn := range []Player{PlayerX, PlayerO} {
			game, err := GameFromBoard("", board.Clone(), turn)
			require.NoError(t, err)
			assert.Equal(t, turn, game.Turn)
		}
	})

	t.Run("A full board without a line is already drawn", func(t *testing.T) {
		board := mustBoard(t, [][]Cell{{x, o, x}, {x, o, o}, {o, x, x}})

		game, err := GameFromBoard("", board, PlayerO)
		require.NoError(t, err)

		assert.Equal(t, StatusDraw, game.Status)
		assert.ErrorIs(t, game.ApplyMove(0, 0, PlayerO), apperror.ErrGameFinished)
	})
}

func TestGame_IsAITurn(t *testing.T) {
	game := newTestGame(t)
	game.AIPlayer = PlayerO

	assert.False(t, game.IsAITurn())

	require.NoError(t, game.ApplyMove(0, 0, PlayerX))

	assert.True(t, game.IsAITurn())
}

func TestGame_JSON(t *testing.T) {
	// Given: a game in progress
	game := newTestGame(t)
	game.StrategyID = "minimax_strong"
	game.AIPlayer = PlayerO
	require.NoError(t, game.ApplyMove(0, 0, PlayerX))

	// When: it is stored and restored
	data, err := json.Marshal(game)
	require.NoError(t, err)

	var restored Game
	require.NoError(t, json.Unmarshal(data, &restored))

	// Then: the restored game keeps playing the same way
	assert.Equal(t, game.View(), restored.View())
	require.NoError(t, restored.ApplyMove(1, 1, PlayerO))
}

func TestGameStateView_JSON(t *testing.T) {
	game := newTestGame(t)
	require.NoError(t, game.ApplyMove(0, 0, PlayerX))

	data, err := json.Marshal(game.View())
	require.NoError(t, err)

	expected := `{
		"gameId": "123",
		"board": [["X", null, null], [null, null, null], [null, null, null]],
		"currentPlayer": "O",
		"winner": null,
		"winningCells": [],
		"gameEnded": false,
		"status": "ongoing"
	}`
	assert.JSONEq(t, expected, string(data))
}
