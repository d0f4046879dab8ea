package manifold

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvPrefix is the environment prefix read by LoadConfig("").
const DefaultEnvPrefix = "MANIFOLD"

// Config is the environment-driven configuration of a Pipeline, e.g.
//
//	MANIFOLD_WORKERS=8
//	MANIFOLD_TILE_SIZE=2048
//	MANIFOLD_SCRATCH_LIMIT_BYTES=1073741824
//	MANIFOLD_LOG_LEVEL=debug
//	MANIFOLD_LOG_FORMAT=json
type Config struct {
	Workers           int    `envconfig:"WORKERS" default:"0"`
	TileSize          int    `envconfig:"TILE_SIZE" default:"1024"`
	ScratchLimitBytes int64  `envconfig:"SCRATCH_LIMIT_BYTES" default:"0"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat         string `envconfig:"LOG_FORMAT" default:"text"`
}

// LoadConfig reads a Config from environment variables with the given
// prefix (DefaultEnvPrefix when empty).
func LoadConfig(prefix string) (Config, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.TileSize <= 0 {
		return Config{}, fmt.Errorf("load config: %w: %d", ErrInvalidTileSize, cfg.TileSize)
	}
	return cfg, nil
}

// Options converts the configuration into pipeline options.
func (c Config) Options() ([]Option, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}

	var logger *Logger
	switch strings.ToLower(c.LogFormat) {
	case "", "text":
		logger = NewTextLogger(level)
	case "json":
		logger = NewJSONLogger(level)
	case "none":
		logger = NoopLogger()
	default:
		return nil, fmt.Errorf("%w: unknown log format %q", ErrInvalidArgument, c.LogFormat)
	}

	return []Option{
		WithWorkers(c.Workers),
		WithTileSize(c.TileSize),
		WithScratchLimit(c.ScratchLimitBytes),
		WithLogger(logger),
	}, nil
}
