package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryGameRepository keeps games in process memory.
// Entries are stored as JSON so callers never share a *entity.Game with the store.
type MemoryGameRepository struct {
	logger *slog.Logger

	mu    sync.RWMutex
	games map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryGameRepository(logger *slog.Logger, ttl time.Duration) *MemoryGameRepository {
	return &MemoryGameRepository{
		logger: logger.With("component", "memory_game_repository"),
		games:  make(map[string]memoryEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (that *MemoryGameRepository) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	entry := memoryEntry{data: gameJSON}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	that.games[game.ID] = entry
	that.mu.Unlock()

	return nil
}

func (that *MemoryGameRepository) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	entry, ok := that.games[id]
	that.mu.RUnlock()

	if !ok || that.expired(entry) {
		return nil, ErrGameNotFound
	}

	var existingGame entity.Game
	if err := json.Unmarshal(entry.data, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *MemoryGameRepository) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.games[id]
	if !ok || that.expired(entry) {
		return ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

// Run - removes expired games every interval until ctx is done.
func (that *MemoryGameRepository) Run(ctx context.Context, interval time.Duration) {
	log := that.logger.With("method", "Run")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("janitor stopped")
			return
		case <-ticker.C:
			if removed := that.removeExpired(); removed > 0 {
				log.Debug("expired games removed", "count", removed)
			}
		}
	}
}

func (that *MemoryGameRepository) removeExpired() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for id, entry := range that.games {
		if that.expired(entry) {
			delete(that.games, id)
			removed++
		}
	}

	return removed
}

func (that *MemoryGameRepository) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt)
}
