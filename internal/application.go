package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ai/internal/strategy"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ai/transport/rest"
	"github.com/rocketscienceinc/tictactoe-ai/transport/websocket"
)

const janitorInterval = time.Minute

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeGames, err := newGameRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeGames()

	gameLogRepo, closeLogs, err := newGameLogRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeLogs()

	seed := conf.Game.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	registry := strategy.NewDefaultRegistry(seed, conf.Game.SoftMistakeRate)
	if !registry.Has(conf.Game.DefaultStrategy) {
		log.Warn("default strategy is unknown, random moves will be played", "strategy", conf.Game.DefaultStrategy)
	}

	gameController := tictactoe.NewGameController(registry, entity.Player(conf.Game.AIPlayer), conf.Game.DefaultStrategy)
	gameManager := usecase.NewGameManager(logger, gameRepo, gameLogRepo, gameController)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		router := rest.NewRouter(logger, gameManager, registry, conf.CORS.AllowedOrigins)
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager, conf.CORS.AllowedOrigins)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newGameRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	log := logger.With("component", "app")

	if conf.Storage == config.StorageMemory {
		memoryRepo := repository.NewMemoryGameRepository(logger, conf.Game.SessionTTL)
		go memoryRepo.Run(ctx, janitorInterval)

		return memoryRepo, func() {}, nil
	}

	redisClient, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisClient.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisClient, conf.Game.SessionTTL), closeFn, nil
}

func newGameLogRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.GameLogRepository, func(), error) {
	log := logger.With("component", "app")

	if conf.Postgres.DSN == "" {
		log.Info("postgres is not configured, game logs go to the application log")
		return repository.NewLoggingGameLogRepository(logger), func() {}, nil
	}

	db, err := storage.NewPostgres(ctx, conf.Postgres.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Error("could not close postgres", "error", err)
		}
	}

	return repository.NewGameLogRepository(db), closeFn, nil
}
