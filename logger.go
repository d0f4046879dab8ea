package manifold

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with pipeline-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a count field (number of points) to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogTile logs one merged distance tile.
func (l *Logger) LogTile(ctx context.Context, rowLo, rowHi, colLo, colHi int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "tile merge failed",
			"rows", [2]int{rowLo, rowHi},
			"cols", [2]int{colLo, colHi},
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "tile merged",
		"rows", [2]int{rowLo, rowHi},
		"cols", [2]int{colLo, colHi},
	)
}

// LogFinalize logs the finalization of a row range. A row inconsistency is
// logged with the offending row's heap contents.
func (l *Logger) LogFinalize(ctx context.Context, rowLo, rowHi int, err error) {
	if err != nil {
		args := []any{"rows", [2]int{rowLo, rowHi}, "error", err}
		if rie := asRowInconsistency(err); rie != nil {
			args = append(args, "row", rie.Row, "dump", rie.Dump())
		}
		l.ErrorContext(ctx, "finalize failed", args...)
		return
	}
	l.DebugContext(ctx, "row range finalized",
		"rows", [2]int{rowLo, rowHi},
	)
}

// LogPhase logs a shaping or weighting phase with the edge count it left behind.
func (l *Logger) LogPhase(ctx context.Context, phase string, edges int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "phase failed",
			"phase", phase,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "phase completed",
		"phase", phase,
		"edges", edges,
	)
}

// LogRun logs the summary of a pipeline run.
func (l *Logger) LogRun(ctx context.Context, res *Result, elapsed time.Duration) {
	l.InfoContext(ctx, "pipeline completed",
		"vertices", res.Graph.Rows(),
		"edges", res.Graph.NNZ(),
		"tiles", res.Tiles,
		"peak_scratch_bytes", res.PeakScratch,
		"elapsed", elapsed,
	)
}
