package manifold

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting pipeline metrics.
// Implement this interface to integrate with monitoring systems; the metric
// package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordTile is called after each distance tile is produced and merged.
	// rows and cols are the tile shape, duration covers both steps.
	RecordTile(rows, cols int, duration time.Duration, err error)

	// RecordFinalize is called after each row range is finalized.
	RecordFinalize(rows int, duration time.Duration, err error)

	// RecordPhase is called after each shaping or weighting phase
	// ("rows", "stride", "mutual", "threshold", "csr", "subset", "kernel").
	// edges is the number of edges the phase left behind.
	RecordPhase(phase string, edges int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTile(int, int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordFinalize(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordPhase(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	TileCount          atomic.Int64
	TileErrors         atomic.Int64
	TileDistances      atomic.Int64
	TileTotalNanos     atomic.Int64
	FinalizeCount      atomic.Int64
	FinalizeErrors     atomic.Int64
	FinalizeRows       atomic.Int64
	FinalizeTotalNanos atomic.Int64
	PhaseCount         atomic.Int64
	PhaseErrors        atomic.Int64
	LastEdges          atomic.Int64
}

// RecordTile implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTile(rows, cols int, duration time.Duration, err error) {
	b.TileCount.Add(1)
	b.TileDistances.Add(int64(rows) * int64(cols))
	b.TileTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.TileErrors.Add(1)
	}
}

// RecordFinalize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFinalize(rows int, duration time.Duration, err error) {
	b.FinalizeCount.Add(1)
	b.FinalizeRows.Add(int64(rows))
	b.FinalizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FinalizeErrors.Add(1)
	}
}

// RecordPhase implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPhase(_ string, edges int, _ time.Duration, err error) {
	b.PhaseCount.Add(1)
	if err != nil {
		b.PhaseErrors.Add(1)
		return
	}
	b.LastEdges.Store(int64(edges))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		TileCount:        b.TileCount.Load(),
		TileErrors:       b.TileErrors.Load(),
		TileDistances:    b.TileDistances.Load(),
		TileAvgNanos:     avg(b.TileTotalNanos.Load(), b.TileCount.Load()),
		FinalizeCount:    b.FinalizeCount.Load(),
		FinalizeErrors:   b.FinalizeErrors.Load(),
		FinalizeRows:     b.FinalizeRows.Load(),
		FinalizeAvgNanos: avg(b.FinalizeTotalNanos.Load(), b.FinalizeCount.Load()),
		PhaseCount:       b.PhaseCount.Load(),
		PhaseErrors:      b.PhaseErrors.Load(),
		LastEdges:        b.LastEdges.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	TileCount        int64
	TileErrors       int64
	TileDistances    int64
	TileAvgNanos     int64
	FinalizeCount    int64
	FinalizeErrors   int64
	FinalizeRows     int64
	FinalizeAvgNanos int64
	PhaseCount       int64
	PhaseErrors      int64
	LastEdges        int64
}
