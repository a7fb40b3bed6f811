package strategy

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	scoreOWins = 1
	scoreXWins = -1
	scoreDraw  = 0
)

// Minimax searches the whole game tree with alpha-beta pruning.
// There is no depth limit, so it is only meant for 3x3 boards.
type Minimax struct{}

func NewMinimax() *Minimax {
	return &Minimax{}
}

// ChooseMove - returns the first cell, in row-major order, with the best value for player.
func (that *Minimax) ChooseMove(board *entity.Board, player entity.Player) (entity.Position, bool) {
	scratch := board.Clone()

	var (
		best      entity.Position
		found     bool
		bestScore = math.MinInt
		alpha     = math.MinInt
		beta      = math.MaxInt
	)

	for _, pos := range scratch.EmptyCells() {
		_ = scratch.Set(pos.Row, pos.Col, player)
		score := search(scratch, player.Opponent(), player, alpha, beta)
		_ = scratch.Clear(pos.Row, pos.Col)

		if !found || score > bestScore {
			best, bestScore, found = pos, score, true
		}

		alpha = max(alpha, bestScore)
	}

	return best, found
}

// search - value of the position for self with toMove to play.
func search(board *entity.Board, toMove, self entity.Player, alpha, beta int) int {
	if score, terminal := terminalScore(board, self); terminal {
		return score
	}

	maximizing := toMove == self

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for _, pos := range board.EmptyCells() {
		_ = board.Set(pos.Row, pos.Col, toMove)
		score := search(board, toMove.Opponent(), self, alpha, beta)
		_ = board.Clear(pos.Row, pos.Col)

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}

		if beta <= alpha {
			break
		}
	}

	return best
}

// terminalScore - +1 when O has a line, -1 when X has one, 0 for a full board,
// flipped so that self is always the maximizing side.
func terminalScore(board *entity.Board, self entity.Player) (int, bool) {
	outcome := entity.Evaluate(board)

	switch {
	case outcome.Winner == entity.PlayerO:
		return polarity(self) * scoreOWins, true
	case outcome.Winner == entity.PlayerX:
		return polarity(self) * scoreXWins, true
	case board.IsFull():
		return scoreDraw, true
	default:
		return 0, false
	}
}

func polarity(player entity.Player) int {
	if player == entity.PlayerX {
		return -1
	}
	return 1
}
