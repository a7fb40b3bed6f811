package strategy

import "github.com/rocketscienceinc/tictactoe-ai/internal/entity"

// CenterFirst takes the center of an odd-sized board while it is free.
type CenterFirst struct {
	fallback Strategy
}

func NewCenterFirst(fallback Strategy) *CenterFirst {
	return &CenterFirst{fallback: fallback}
}

func (that *CenterFirst) ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool) {
	size := board.Size()
	center := entity.Position{Row: size / 2, Col: size / 2}

	if size%2 == 1 && isEmpty(board, center) {
		return center, true
	}

	return that.fallback.ChooseMove(board, player)
}

// CornerFirst opens in the first free corner and searches afterwards.
type CornerFirst struct {
	search Strategy
}

func NewCornerFirst(search Strategy) *CornerFirst {
	return &CornerFirst{search: search}
}

func (that *CornerFirst) ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool) {
	if board.Count(player) == 0 {
		for _, pos := range corners(board.Size()) {
			if isEmpty(board, pos) {
				return pos, true
			}
		}
	}

	return that.search.ChooseMove(board, player)
}

// MinimaxSoft plays searched moves but slips into a random one now and then.
type MinimaxSoft struct {
	search      Strategy
	random      *Random
	mistakeRate float64
}

func NewMinimaxSoft(search Strategy, random *Random, mistakeRate float64) *MinimaxSoft {
	return &MinimaxSoft{
		search:      search,
		random:      random,
		mistakeRate: mistakeRate,
	}
}

func (that *MinimaxSoft) ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool) {
	if that.random.Float64() < that.mistakeRate {
		return that.random.ChooseMove(board, player)
	}

	return that.search.ChooseMove(board, player)
}

// EarlyGameRandom plays its first few marks at random, then searches.
type EarlyGameRandom struct {
	random      Strategy
	search      Strategy
	randomMoves int
}

func NewEarlyGameRandom(random, search Strategy, randomMoves int) *EarlyGameRandom {
	return &EarlyGameRandom{
		random:      random,
		search:      search,
		randomMoves: randomMoves,
	}
}

func (that *EarlyGameRandom) ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool) {
	if board.Count(player) < that.randomMoves {
		return that.random.ChooseMove(board, player)
	}

	return that.search.ChooseMove(board, player)
}

// BlockFocus only reacts: it blocks the opponent's next winning cell and never plays for a line.
type BlockFocus struct {
	fallback Strategy
}

func NewBlockFocus(fallback Strategy) *BlockFocus {
	return &BlockFocus{fallback: fallback}
}

func (that *BlockFocus) ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool) {
	if threats := completingCells(board, player.Opponent()); len(threats) > 0 {
		return threats[0], true
	}

	return that.fallback.ChooseMove(board, player)
}

// TrapSetter wins when it can, otherwise looks for a fork: a cell that opens two threats at once.
type TrapSetter struct {
	fallback Strategy
}

func NewTrapSetter(fallback Strategy) *TrapSetter {
	return &TrapSetter{fallback: fallback}
}

func (that *TrapSetter) ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool) {
	if wins := completingCells(board, player); len(wins) > 0 {
		return wins[0], true
	}

	scratch := board.Clone()
	for _, pos := range scratch.EmptyCells() {
		_ = scratch.Set(pos.Row, pos.Col, player)
		threats := completingCells(scratch, player)
		_ = scratch.Clear(pos.Row, pos.Col)

		if len(threats) >= 2 {
			return pos, true
		}
	}

	return that.fallback.ChooseMove(board, player)
}

// MirrorUser answers an opponent mark with its reflection through the center.
type MirrorUser struct {
	fallback Strategy
}

func NewMirrorUser(fallback Strategy) *MirrorUser {
	return &MirrorUser{fallback: fallback}
}

func (that *MirrorUser) ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool) {
	last := board.Size() - 1
	opponent := player.Opponent().Cell()

	for row, cells := range board.Rows() {
		for col, cell := range cells {
			if cell != opponent {
				continue
			}

			mirrored := entity.Position{Row: last - row, Col: last - col}
			if isEmpty(board, mirrored) {
				return mirrored, true
			}
		}
	}

	return that.fallback.ChooseMove(board, player)
}

// LastMoveRepeater keeps its own identifier but deliberately plays exactly like its fallback.
type LastMoveRepeater struct {
	fallback Strategy
}

func NewLastMoveRepeater(fallback Strategy) *LastMoveRepeater {
	return &LastMoveRepeater{fallback: fallback}
}

func (that *LastMoveRepeater) ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool) {
	return that.fallback.ChooseMove(board, player)
}
