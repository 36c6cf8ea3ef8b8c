// Package metrics provides a small Prometheus-compatible metrics registry.
//
// It supports counters, gauges and histograms with labels and renders them
// in the Prometheus text exposition format (version 0.0.4). There are no
// third-party dependencies; the format is simple enough to write directly.
//
// Usage:
//
//	reg := metrics.NewRegistry()
//	m := metrics.NewServiceMetrics(reg, store.Count)
//	m.RequestsTotal.WithLabels("GET", "/strings", "200").Inc()
//
//	http.Handle("GET /metrics", reg.Handler())
//
// Label values should be bounded. Routes are recorded by pattern
// ("/strings/{value}"), never by raw path.
package metrics
