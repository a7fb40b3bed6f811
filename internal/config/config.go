package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

var (
	ErrInvalidStorage  = errors.New("storage must be memory or redis")
	ErrInvalidAIPlayer = errors.New("ai-player must be X or O")
	ErrInvalidRate     = errors.New("soft-mistake-rate must be within [0, 1]")
	ErrInvalidLogLevel = errors.New("log-level must be debug, info, warn or error")
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

type Config struct {
	LogLevel   string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage    string   `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis      Redis    `yaml:"redis"`
	Postgres   Postgres `yaml:"postgres"`
	Game       Game     `yaml:"game"`
	CORS       CORS     `yaml:"cors"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Postgres - an empty DSN keeps game logs in the application log only.
type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

type Game struct {
	AIPlayer        string        `yaml:"ai-player" env:"GAME_AI_PLAYER" env-default:"O"`
	DefaultStrategy string        `yaml:"default-strategy" env:"GAME_DEFAULT_STRATEGY" env-default:"minimax_strong"`
	SessionTTL      time.Duration `yaml:"session-ttl" env:"GAME_SESSION_TTL" env-default:"1h"`
	RandomSeed      int64         `yaml:"random-seed" env:"GAME_RANDOM_SEED"`
	SoftMistakeRate float64       `yaml:"soft-mistake-rate" env:"GAME_SOFT_MISTAKE_RATE" env-default:"0.3"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed-origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	if _, ok := logLevels[that.LogLevel]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, that.LogLevel)
	}

	if that.Storage != StorageMemory && that.Storage != StorageRedis {
		return fmt.Errorf("%w: %q", ErrInvalidStorage, that.Storage)
	}

	if that.Game.AIPlayer != "X" && that.Game.AIPlayer != "O" {
		return fmt.Errorf("%w: %q", ErrInvalidAIPlayer, that.Game.AIPlayer)
	}

	if that.Game.SoftMistakeRate < 0 || that.Game.SoftMistakeRate > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, that.Game.SoftMistakeRate)
	}

	return nil
}

// SlogLevel - the validated log-level as a slog level.
func (that *Config) SlogLevel() slog.Level {
	return logLevels[that.LogLevel]
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
