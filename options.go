package manifold

import (
	"log/slog"
)

// DefaultTileSize is the edge length of the square distance tiles requested
// from a producer when no tile size is configured.
const DefaultTileSize = 1024

type options struct {
	workers          int
	tileSize         int
	scratchLimit     int64
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Pipeline.
type Option func(*options)

// WithWorkers sets the number of workers used by every parallel phase.
// workers <= 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithTileSize sets the edge length of the distance tiles. Each tile holds
// tileSize x tileSize distances, so memory grows quadratically with it.
func WithTileSize(tileSize int) Option {
	return func(o *options) {
		o.tileSize = tileSize
	}
}

// WithScratchLimit caps the transient scratch memory a run may hold at once:
// the tile buffer, per-worker heaps, subset index maps, row expansions and
// the kernel's per-vertex statistics. Kernel aggregation needs 8*N bytes
// regardless of the worker count. A limit <= 0 disables the cap.
func WithScratchLimit(bytes int64) Option {
	return func(o *options) {
		o.scratchLimit = bytes
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &manifold.BasicMetricsCollector{}
//	p, _ := manifold.New(n, k, manifold.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Tiles: %d, Avg latency: %dns\n", stats.TileCount, stats.TileAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := manifold.NewJSONLogger(slog.LevelInfo)
//	p, _ := manifold.New(n, k, manifold.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		tileSize:         DefaultTileSize,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
