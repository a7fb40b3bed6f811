package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Player is one of the two sides of a game.
type Player string

const (
	PlayerX Player = "X"
	PlayerO Player = "O"
)

// Cell holds the content of one board position.
type Cell string

const (
	EmptyCell Cell = ""
	CellX     Cell = "X"
	CellO     Cell = "O"
)

// ParsePlayer - converts "X" or "O" to a Player.
func ParsePlayer(value string) (Player, error) {
	switch Player(value) {
	case PlayerX, PlayerO:
		return Player(value), nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, value)
	}
}

func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Player) Cell() Cell {
	return Cell(that)
}

// Player - returns the mark stored in the cell, false for an empty cell.
func (that Cell) Player() (Player, bool) {
	switch that {
	case CellX:
		return PlayerX, true
	case CellO:
		return PlayerO, true
	default:
		return "", false
	}
}

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

// MarshalJSON - encodes an empty cell as null.
func (that Cell) MarshalJSON() ([]byte, error) {
	if that == EmptyCell {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = EmptyCell
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to unmarshal cell: %w", err)
	}

	switch Cell(value) {
	case EmptyCell, CellX, CellO:
		*that = Cell(value)
		return nil
	default:
		return fmt.Errorf("%w: unknown cell %q", apperror.ErrInvalidBoard, value)
	}
}
