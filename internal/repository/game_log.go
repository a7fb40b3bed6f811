package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type GameLogRepository interface {
	Save(ctx context.Context, log *entity.GameLog) error
}

// PostgresGameLog keeps finished games in postgres, move history and insights as JSON text.
type PostgresGameLog struct {
	db *sql.DB
}

func NewGameLogRepository(db *sql.DB) *PostgresGameLog {
	return &PostgresGameLog{db: db}
}

func (that *PostgresGameLog) Save(ctx context.Context, log *entity.GameLog) error {
	movesJSON, err := json.Marshal(log.Moves)
	if err != nil {
		return fmt.Errorf("could not marshal move history: %w", err)
	}

	insightsJSON, err := json.Marshal(log.Insights)
	if err != nil {
		return fmt.Errorf("could not marshal insights: %w", err)
	}

	const query = `
		INSERT INTO game_logs (id, game_id, move_history_json, insights, winner, strategy_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = that.db.ExecContext(ctx, query,
		log.ID, log.GameID, string(movesJSON), string(insightsJSON), log.Winner, log.StrategyID, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game log: %w", err)
	}

	return nil
}

type loggingGameLog struct {
	logger *slog.Logger
}

// NewLoggingGameLogRepository - used when no database is configured, logs are written to the application log.
func NewLoggingGameLogRepository(logger *slog.Logger) GameLogRepository {
	return &loggingGameLog{logger: logger.With("component", "game_log")}
}

func (that *loggingGameLog) Save(_ context.Context, log *entity.GameLog) error {
	that.logger.Info("game log",
		"id", log.ID,
		"gameID", log.GameID,
		"winner", log.Winner,
		"strategy", log.StrategyID,
		"moves", log.Moves,
		"insights", log.Insights,
	)

	return nil
}
