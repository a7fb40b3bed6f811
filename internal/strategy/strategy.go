// Package strategy holds the move-selection policies the AI side can play with.
package strategy

import "github.com/rocketscienceinc/tictactoe-ai/internal/entity"

// Identifiers the registry knows out of the box.
const (
	RandomID           = "random"
	MinimaxStrongID    = "minimax_strong"
	CenterFirstID      = "center_first"
	MinimaxSoftID      = "minimax_soft"
	CornerFirstID      = "corner_first"
	MirrorUserID       = "mirror_user"
	TrapSetterID       = "trap_setter"
	BlockFocusID       = "block_focus"
	LastMoveRepeaterID = "last_move_repeater"
	EarlyGameRandomID  = "early_game_random"
)

// Strategy picks a move for player on board.
// It returns false only when the board has no empty cell and never mutates the board.
type Strategy interface {
	ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool)
}

// Func adapts a plain function to Strategy.
type Func func(board *entity.Board, player entity.Player) (entity.Position, bool)

func (that Func) ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool) {
	return that(board, player)
}

// completingCells - empty cells where player would complete a line, row-major.
func completingCells(board *entity.Board, player entity.Player) []entity.Position {
	scratch := board.Clone()

	var cells []entity.Position
	for _, pos := range scratch.EmptyCells() {
		_ = scratch.Set(pos.Row, pos.Col, player)
		if entity.Evaluate(scratch).Winner == player {
			cells = append(cells, pos)
		}
		_ = scratch.Clear(pos.Row, pos.Col)
	}

	return cells
}

// corners - the four corner cells in row-major order.
func corners(size int) []entity.Position {
	last := size - 1
	if last == 0 {
		return []entity.Position{{Row: 0, Col: 0}}
	}

	return []entity.Position{
		{Row: 0, Col: 0},
		{Row: 0, Col: last},
		{Row: last, Col: 0},
		{Row: last, Col: last},
	}
}

func isEmpty(board *entity.Board, pos entity.Position) bool {
	cell, err := board.Get(pos.Row, pos.Col)
	return err == nil && cell.IsEmpty()
}
