package tictactoe

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/strategy"
)

type strategyResolver interface {
	Resolve(id string) strategy.Strategy
}

// GameController drives one game at a time: it applies the human move and answers with the AI side.
type GameController struct {
	strategies      strategyResolver
	boardSize       int
	defaultAI       entity.Player
	defaultStrategy string
	now             func() time.Time
}

func NewGameController(strategies strategyResolver, defaultAI entity.Player, defaultStrategy string) *GameController {
	return &GameController{
		strategies:      strategies,
		boardSize:       entity.DefaultBoardSize,
		defaultAI:       defaultAI,
		defaultStrategy: defaultStrategy,
		now:             time.Now,
	}
}

// StartGame - creates a game and, when the AI side opens, plays its first move.
// Empty aiPlayer and strategyID fall back to the controller defaults.
func (that *GameController) StartGame(id string, first, aiPlayer entity.Player, strategyID string) (*entity.Game, error) {
	if aiPlayer == "" {
		aiPlayer = that.defaultAI
	}

	if !aiPlayer.IsValid() {
		return nil, fmt.Errorf("%w: ai side %q", apperror.ErrInvalidPlayer, aiPlayer)
	}

	if strategyID == "" {
		strategyID = that.defaultStrategy
	}

	game, err := entity.NewGame(id, that.boardSize, first)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game.AIPlayer = aiPlayer
	game.StrategyID = strategyID
	game.CreatedAt = that.now()
	game.UpdatedAt = game.CreatedAt

	if err = that.playAI(game); err != nil {
		return nil, err
	}

	return game, nil
}

// SubmitHumanMove - applies the human move, then exactly one AI reply if the game goes on.
func (that *GameController) SubmitHumanMove(game *entity.Game, row, col int, player entity.Player) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if game.AIPlayer != "" && player == game.AIPlayer {
		return fmt.Errorf("%w: %s is played by the server", apperror.ErrNotYourTurn, player)
	}

	if err := game.ApplyMove(row, col, player); err != nil {
		return err
	}

	game.UpdatedAt = that.now()

	return that.playAI(game)
}

// Move - stateless variant: the client holds the board.
// With a strategy the opponent of player answers with one move.
// Boards of another size are rejected.
func (that *GameController) Move(board *entity.Board, row, col int, player entity.Player, strategyID string) (*entity.Game, error) {
	if board.Size() != that.boardSize {
		return nil, fmt.Errorf("%w: board size %d, want %d", apperror.ErrInvalidBoard, board.Size(), that.boardSize)
	}

	game, err := entity.GameFromBoard("", board, player)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	if err = game.ApplyMove(row, col, player); err != nil {
		return nil, err
	}

	if strategyID == "" {
		return game, nil
	}

	game.AIPlayer = player.Opponent()
	game.StrategyID = strategyID

	if err = that.playAI(game); err != nil {
		return nil, err
	}

	return game, nil
}

// playAI - one move for the AI side, a no-op when it is not its turn.
func (that *GameController) playAI(game *entity.Game) error {
	if !game.IsAITurn() {
		return nil
	}

	pos, ok := that.strategies.Resolve(game.StrategyID).ChooseMove(game.Board, game.AIPlayer)
	if !ok {
		return nil
	}

	if err := game.ApplyMove(pos.Row, pos.Col, game.AIPlayer); err != nil {
		return fmt.Errorf("failed to apply %s move: %w", game.StrategyID, err)
	}

	game.UpdatedAt = that.now()

	return nil
}
