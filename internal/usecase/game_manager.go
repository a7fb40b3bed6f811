package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const lockStripes = 64

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameLogRepo interface {
	Save(ctx context.Context, log *entity.GameLog) error
}

type gameController interface {
	StartGame(id string, first, aiPlayer entity.Player, strategyID string) (*entity.Game, error)
	SubmitHumanMove(game *entity.Game, row, col int, player entity.Player) error
	Move(board *entity.Board, row, col int, player entity.Player, strategyID string) (*entity.Game, error)
	BuildGameLog(game *entity.Game) *entity.GameLog
}

// GameManager keeps game sessions in the repository and hands finished games to the log store.
type GameManager struct {
	logger *slog.Logger

	gameRepo    gameRepo
	gameLogRepo gameLogRepo
	controller  gameController

	locks [lockStripes]sync.Mutex
	newID func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, gameLogRepo gameLogRepo, controller gameController) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:    gameRepo,
		gameLogRepo: gameLogRepo,
		controller:  controller,

		newID: uuid.NewString,
	}
}

// NewGame - starts a session; empty aiPlayer and strategyID take the configured defaults.
func (that *GameManager) NewGame(ctx context.Context, first, aiPlayer entity.Player, strategyID string) (*entity.Game, error) {
	if first == "" {
		first = entity.PlayerX
	}

	game, err := that.controller.StartGame(that.newID(), first, aiPlayer, strategyID)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.With("method", "NewGame").Info("game created",
		"gameID", game.ID, "strategy", game.StrategyID, "aiPlayer", game.AIPlayer)

	return game, nil
}

// MakeMove - applies the human move and the AI reply to a stored session.
func (that *GameManager) MakeMove(ctx context.Context, gameID string, row, col int, player entity.Player) (*entity.Game, error) {
	lock := that.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if err = that.controller.SubmitHumanMove(game, row, col, player); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.logGame(ctx, game)
	}

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	lock := that.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := that.gameRepo.GetByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.With("method", "DeleteGame").Info("game deleted", "gameID", gameID)

	return nil
}

// MoveStateless - one move on a board held by the client, nothing is stored but the log of a finished game.
func (that *GameManager) MoveStateless(ctx context.Context, board *entity.Board, row, col int, player entity.Player, strategyID string) (*entity.Game, error) {
	game, err := that.controller.Move(board, row, col, player, strategyID)
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if game.IsFinished() {
		that.logGame(ctx, game)
	}

	return game, nil
}

// LogGame - stores a log reported by a client.
func (that *GameManager) LogGame(ctx context.Context, moves []entity.Move, insights []string) (*entity.GameLog, error) {
	if moves == nil {
		moves = []entity.Move{}
	}

	if insights == nil {
		insights = []string{}
	}

	gameLog := &entity.GameLog{
		ID:        that.newID(),
		Moves:     moves,
		Insights:  insights,
		CreatedAt: time.Now().UTC(),
	}

	if err := that.gameLogRepo.Save(ctx, gameLog); err != nil {
		return nil, fmt.Errorf("failed to save game log: %w", err)
	}

	return gameLog, nil
}

// logGame - failures are logged, the finished game is still returned to the player.
func (that *GameManager) logGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "logGame", "gameID", game.ID)

	gameLog := that.controller.BuildGameLog(game)
	if gameLog == nil {
		return
	}

	gameLog.ID = that.newID()

	if err := that.gameLogRepo.Save(ctx, gameLog); err != nil {
		log.Error("failed to save game log", "error", err)
		return
	}

	log.Info("game finished", "result", gameLog.Winner, "moves", len(gameLog.Moves))
}

func (that *GameManager) lockFor(gameID string) *sync.Mutex {
	return &that.locks[xxhash.Sum64String(gameID)%lockStripes]
}
