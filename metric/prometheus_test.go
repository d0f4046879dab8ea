package metric

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/manifold"
	"github.com/hupe1980/manifold/distance"
)

var _ manifold.MetricsCollector = (*PrometheusCollector)(nil)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewPrometheusCollector(reg, "test")
	require.NoError(t, err)

	c.RecordTile(3, 4, time.Millisecond, nil)
	c.RecordTile(3, 4, time.Millisecond, errors.New("x"))
	c.RecordFinalize(3, time.Millisecond, nil)
	c.RecordPhase("mutual", 42, time.Millisecond, nil)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"test_operation_latency_seconds",
		"test_operations_total",
		"test_tile_distances_total",
		"test_finalized_rows_total",
		"test_phase_edges",
	}, names)

	assert.Equal(t, 4, testutil.CollectAndCount(c.ops))
	assert.InDelta(t, 1, testutil.ToFloat64(c.ops.WithLabelValues("tile", "error")), 0)
	assert.InDelta(t, 12, testutil.ToFloat64(c.distances), 0)
	assert.InDelta(t, 42, testutil.ToFloat64(c.edges.WithLabelValues("mutual")), 0)
}

func TestPrometheusCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusCollector(reg, "dup")
	require.NoError(t, err)

	_, err = NewPrometheusCollector(reg, "dup")
	var are prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &are)
}

func TestPrometheusCollector_PipelineRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewPrometheusCollector(reg, "run")
	require.NoError(t, err)

	points, err := distance.NewPoints([]float32{0, 0, 1, 0, 0, 1, 5, 5, 6, 5}, 2, distance.MetricL2)
	require.NoError(t, err)

	p, err := manifold.New(points.Len(), 2, manifold.WithTileSize(2), manifold.WithMetricsCollector(c))
	require.NoError(t, err)

	res, err := p.Run(context.Background(), points, manifold.NewBuffers(points.Len(), 2), manifold.NewPlan())
	require.NoError(t, err)

	assert.InDelta(t, 25, testutil.ToFloat64(c.distances), 0)
	assert.InDelta(t, 5, testutil.ToFloat64(c.rows), 0)
	assert.InDelta(t, float64(res.Graph.NNZ()), testutil.ToFloat64(c.edges.WithLabelValues("csr")), 0)
}
