package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Status is the lifecycle state of a game. Won and Draw are terminal.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusDraw    Status = "draw"
)

// ResultDraw is how a drawn game is recorded in logs.
const ResultDraw = "Draw"

type Move struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player Player `json:"player"`
}

// Game owns one board and is mutated only through ApplyMove.
type Game struct {
	ID          string     `json:"id"`
	Board       *Board     `json:"board"`
	Turn        Player     `json:"player_turn"`
	Status      Status     `json:"status"`
	Winner      Player     `json:"winner,omitempty"`
	WinningLine []Position `json:"winning_line,omitempty"`
	StrategyID  string     `json:"strategy_id,omitempty"`
	AIPlayer    Player     `json:"ai_player,omitempty"`
	Moves       []Move     `json:"moves,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewGame(id string, size int, first Player) (*Game, error) {
	if !first.IsValid() {
		return nil, fmt.Errorf("%w: first player %q", apperror.ErrInvalidPlayer, first)
	}

	board, err := NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Game{
		ID:     id,
		Board:  board,
		Turn:   first,
		Status: StatusOngoing,
	}, nil
}

// GameFromBoard - rebuilds a game from a board held by a client.
// A board that already holds a line or is full comes back in its terminal state.
func GameFromBoard(id string, board *Board, turn Player) (*Game, error) {
	if !turn.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, turn)
	}

	diff := board.Count(PlayerX) - board.Count(PlayerO)
	if diff < -1 || diff > 1 {
		return nil, fmt.Errorf("%w: mark counts differ by %d", apperror.ErrInvalidBoard, diff)
	}

	// The side holding the extra mark moved last; equal counts let either side move.
	if (diff == 1 && turn == PlayerX) || (diff == -1 && turn == PlayerO) {
		return nil, fmt.Errorf("%w: %s already has the extra mark", apperror.ErrNotYourTurn, turn)
	}

	game := &Game{
		ID:     id,
		Board:  board,
		Turn:   turn,
		Status: StatusOngoing,
	}
	game.updateStatus()

	return game, nil
}

// ApplyMove - places the player's mark and advances the game.
// A rejected move leaves the game untouched.
func (that *Game) ApplyMove(row, col int, player Player) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !player.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, player)
	}

	if that.Turn != player {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, that.Turn)
	}

	if err := that.Board.Set(row, col, player); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	that.Moves = append(that.Moves, Move{Row: row, Col: col, Player: player})

	if that.updateStatus() == StatusOngoing {
		that.Turn = player.Opponent()
	}

	return nil
}

// updateStatus - runs the win detector and freezes the game once it is decided.
func (that *Game) updateStatus() Status {
	outcome := Evaluate(that.Board)

	switch {
	case outcome.HasWinner():
		that.Status = StatusWon
		that.Winner = outcome.Winner
		that.WinningLine = outcome.Line
	case that.Board.IsFull():
		that.Status = StatusDraw
	default:
		that.Status = StatusOngoing
	}

	return that.Status
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsAITurn - true while the game runs and the AI side is to move.
func (that *Game) IsAITurn() bool {
	return that.IsOngoing() && that.AIPlayer != "" && that.Turn == that.AIPlayer
}

// Result - "X", "O", "Draw", or empty while the game is ongoing.
func (that *Game) Result() string {
	switch that.Status {
	case StatusWon:
		return string(that.Winner)
	case StatusDraw:
		return ResultDraw
	default:
		return ""
	}
}
