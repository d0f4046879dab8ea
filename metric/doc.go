// Package metric exports pipeline metrics to Prometheus.
//
// PrometheusCollector implements manifold.MetricsCollector:
//
//	reg := prometheus.NewRegistry()
//	mc, err := metric.NewPrometheusCollector(reg, "manifold")
//	p, _ := manifold.New(n, k, manifold.WithMetricsCollector(mc))
package metric
