package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector records tile, finalize and phase metrics.
type PrometheusCollector struct {
	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	distances prometheus.Counter
	rows      prometheus.Counter
	edges     *prometheus.GaugeVec
}

// NewPrometheusCollector creates the collectors under namespace and registers
// them with reg (prometheus.DefaultRegisterer when nil).
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of pipeline operations",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total pipeline operations",
		}, []string{"op", "status"}),
		distances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tile_distances_total",
			Help:      "Total distances merged from tiles",
		}),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finalized_rows_total",
			Help:      "Total neighbor rows finalized",
		}),
		edges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_edges",
			Help:      "Edges left after the last run of each phase",
		}, []string{"phase"}),
	}

	for _, col := range []prometheus.Collector{c.opLatency, c.ops, c.distances, c.rows, c.edges} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordTile implements manifold.MetricsCollector.
func (c *PrometheusCollector) RecordTile(rows, cols int, d time.Duration, err error) {
	c.observe("tile", d, err)
	if err == nil {
		c.distances.Add(float64(rows) * float64(cols))
	}
}

// RecordFinalize implements manifold.MetricsCollector.
func (c *PrometheusCollector) RecordFinalize(rows int, d time.Duration, err error) {
	c.observe("finalize", d, err)
	if err == nil {
		c.rows.Add(float64(rows))
	}
}

// RecordPhase implements manifold.MetricsCollector.
func (c *PrometheusCollector) RecordPhase(phase string, edges int, d time.Duration, err error) {
	c.observe(phase, d, err)
	if err == nil {
		c.edges.WithLabelValues(phase).Set(float64(edges))
	}
}

func (c *PrometheusCollector) observe(op string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.opLatency.WithLabelValues(op, status).Observe(d.Seconds())
	c.ops.WithLabelValues(op, status).Inc()
}
