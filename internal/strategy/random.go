package strategy

import (
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// Random picks uniformly among the empty cells.
// The source is guarded so one instance can serve concurrent games.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom - seed makes the sequence of choices reproducible.
func NewRandom(seed int64) *Random {
	return &Random{
		rnd: rand.New(rand.NewSource(seed)), //nolint: gosec // game moves, not secrets
	}
}

func (that *Random) ChooseMove(board *entity.Board, _ entity.Player) (entity.Position, bool) {
	return that.pick(board.EmptyCells())
}

// Float64 - exposes the source to strategies that mix random and searched moves.
func (that *Random) Float64() float64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Float64()
}

func (that *Random) pick(cells []entity.Position) (entity.Position, bool) {
	if len(cells) == 0 {
		return entity.Position{}, false
	}

	that.mu.Lock()
	idx := that.rnd.Intn(len(cells))
	that.mu.Unlock()

	return cells[idx], true
}
