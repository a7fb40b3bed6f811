package entity

import "time"

// GameLog is the record of a finished game handed to the log store.
type GameLog struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id,omitempty"`
	Moves      []Move    `json:"move_history"`
	Insights   []string  `json:"insights"`
	Winner     string    `json:"winner,omitempty"`
	StrategyID string    `json:"strategy_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
