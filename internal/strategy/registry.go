package strategy

import "sort"

// earlyRandomMoves is how many marks EarlyGameRandom places before searching.
const earlyRandomMoves = 2

// Registry maps identifiers to strategies.
// It is filled at startup and only read afterwards, so it is shared without locking.
type Registry struct {
	strategies map[string]Strategy
	fallback   Strategy
}

func NewRegistry(fallback Strategy) *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
		fallback:   fallback,
	}
}

// NewDefaultRegistry - registers every built-in strategy, all falling back to one seeded Random.
func NewDefaultRegistry(seed int64, softMistakeRate float64) *Registry {
	random := NewRandom(seed)
	minimax := NewMinimax()

	registry := NewRegistry(random)
	registry.Register(RandomID, random)
	registry.Register(MinimaxStrongID, minimax)
	registry.Register(CenterFirstID, NewCenterFirst(random))
	registry.Register(MinimaxSoftID, NewMinimaxSoft(minimax, random, softMistakeRate))
	registry.Register(CornerFirstID, NewCornerFirst(minimax))
	registry.Register(MirrorUserID, NewMirrorUser(random))
	registry.Register(TrapSetterID, NewTrapSetter(random))
	registry.Register(BlockFocusID, NewBlockFocus(random))
	registry.Register(LastMoveRepeaterID, NewLastMoveRepeater(random))
	registry.Register(EarlyGameRandomID, NewEarlyGameRandom(random, minimax, earlyRandomMoves))

	return registry
}

// Register - not safe for use once the registry is shared.
func (that *Registry) Register(id string, strategy Strategy) {
	that.strategies[id] = strategy
}

// Resolve - unknown identifiers get the fallback strategy instead of an error.
func (that *Registry) Resolve(id string) Strategy {
	if strategy, ok := that.strategies[id]; ok {
		return strategy
	}

	return that.fallback
}

func (that *Registry) Has(id string) bool {
	_, ok := that.strategies[id]
	return ok
}

// IDs - registered identifiers, sorted.
func (that *Registry) IDs() []string {
	ids := make([]string, 0, len(that.strategies))
	for id := range that.strategies {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
