package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameState = "game:state"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID      string `json:"gameId,omitempty"`
	FirstPlayer string `json:"firstPlayer,omitempty"`
	AIPlayer    string `json:"aiPlayer,omitempty"`
	StrategyID  string `json:"strategyId,omitempty"`
	Row         *int   `json:"row,omitempty"`
	Col         *int   `json:"col,omitempty"`
	Player      string `json:"player,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.GameStateView `json:"game,omitempty"`
	Error string                `json:"error,omitempty"`
}
