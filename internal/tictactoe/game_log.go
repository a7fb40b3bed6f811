package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// BuildGameLog - history and annotations of a finished game, nil while it is still running.
func (that *GameController) BuildGameLog(game *entity.Game) *entity.GameLog {
	if !game.IsFinished() {
		return nil
	}

	return &entity.GameLog{
		GameID:     game.ID,
		Moves:      append([]entity.Move(nil), game.Moves...),
		Insights:   Insights(game),
		Winner:     game.Result(),
		StrategyID: game.StrategyID,
		CreatedAt:  that.now(),
	}
}

// Insights - replays the moves and notes blocks, wins and the result.
func Insights(game *entity.Game) []string {
	insights := make([]string, 0, len(game.Moves)+2)
	if game.StrategyID != "" {
		insights = append(insights, fmt.Sprintf("%s played by %s", game.AIPlayer, game.StrategyID))
	}

	board, err := entity.NewBoard(game.Board.Size())
	if err != nil {
		return insights
	}

	for i, move := range game.Moves {
		blocked := completes(board, move.Row, move.Col, move.Player.Opponent())

		if err = board.Set(move.Row, move.Col, move.Player); err != nil {
			break
		}

		switch {
		case entity.Evaluate(board).Winner == move.Player:
			insights = append(insights, fmt.Sprintf("move %d: %s won at (%d,%d)", i+1, move.Player, move.Row, move.Col))
		case blocked:
			insights = append(insights, fmt.Sprintf("move %d: %s blocked at (%d,%d)", i+1, move.Player, move.Row, move.Col))
		}
	}

	if result := game.Result(); result != "" {
		insights = append(insights, "result: "+result)
	}

	return insights
}

// completes - true if player would finish a line by marking the empty cell.
func completes(board *entity.Board, row, col int, player entity.Player) bool {
	if err := board.Set(row, col, player); err != nil {
		return false
	}
	defer func() { _ = board.Clear(row, col) }()

	return entity.Evaluate(board).Winner == player
}
