package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_WithLabels(t *testing.T) {
	reg := NewRegistry()
	c := reg.NewCounter("requests_total", "Total requests.", "method", "status")

	c.WithLabels("GET", "200").Inc()
	c.WithLabels("GET", "200").Inc()
	require.NoError(t, c.WithLabels("POST", "201").Add(3))

	assert.Equal(t, float64(2), c.WithLabels("GET", "200").Value())
	assert.Equal(t, float64(3), c.WithLabels("POST", "201").Value())

	samples := c.Collect()
	require.Len(t, samples, 2)
	assert.Equal(t, "GET", samples[0].Labels["method"])
	assert.Equal(t, "POST", samples[1].Labels["method"])
}

func TestCounter_NegativeAdd(t *testing.T) {
	reg := NewRegistry()
	c := reg.NewCounter("c_total", "c")

	err := c.WithLabels().Add(-1)
	assert.True(t, errors.Is(err, ErrNegativeCounterValue))
	assert.Equal(t, float64(0), c.WithLabels().Value())
}

func TestCounter_LabelMismatchPanics(t *testing.T) {
	reg := NewRegistry()
	c := reg.NewCounter("c_total", "c", "a", "b")
	assert.Panics(t, func() { c.WithLabels("only-one") })
}

func TestGauge(t *testing.T) {
	reg := NewRegistry()
	g := reg.NewGauge("stored", "Stored items.")
	g.Set(4)
	g.Set(2)
	assert.Equal(t, float64(2), g.Value())
}

func TestGaugeFunc_ReadsAtCollection(t *testing.T) {
	reg := NewRegistry()
	var n atomic.Int64
	g := reg.NewGaugeFunc("stored", "Stored items.", func() float64 { return float64(n.Load()) })

	n.Store(3)
	assert.Equal(t, float64(3), g.Value())
	assert.Equal(t, MetricTypeGauge, g.Type())

	n.Store(5)
	var out strings.Builder
	_, err := reg.WriteTo(&out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "# TYPE stored gauge\n")
	assert.Contains(t, out.String(), "stored 5\n")
}

func TestHistogram_Buckets(t *testing.T) {
	reg := NewRegistry()
	h := reg.NewHistogram("latency_seconds", "Latency.", []float64{1, 0.1}, "route")

	v := h.WithLabels("/strings")
	v.Observe(0.05)
	v.Observe(0.5)
	v.Observe(5)
	assert.Equal(t, uint64(3), v.Count())

	var out strings.Builder
	_, err := reg.WriteTo(&out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, `latency_seconds_bucket{le="0.1",route="/strings"} 1`)
	assert.Contains(t, text, `latency_seconds_bucket{le="1",route="/strings"} 2`)
	assert.Contains(t, text, `latency_seconds_bucket{le="+Inf",route="/strings"} 3`)
	assert.Contains(t, text, `latency_seconds_sum{route="/strings"} 5.55`)
	assert.Contains(t, text, `latency_seconds_count{route="/strings"} 3`)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	reg := NewRegistry()
	reg.NewCounter("dup", "first")
	assert.Panics(t, func() { reg.NewGauge("dup", "second") })
}

func TestRegistry_Handler(t *testing.T) {
	reg := NewRegistry()
	m := NewServiceMetrics(reg, func() int { return 7 })
	m.RequestsTotal.WithLabels("GET", "/strings/{value}", "404").Inc()

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	body := rec.Body.String()
	assert.Contains(t, body, "# HELP stringd_http_requests_total Total number of HTTP requests.\n")
	assert.Contains(t, body, "# TYPE stringd_http_requests_total counter\n")
	assert.Contains(t, body, `stringd_http_requests_total{method="GET",route="/strings/{value}",status="404"} 1`)
	assert.Contains(t, body, "stringd_strings_stored 7\n")
	// Metrics without samples are omitted.
	assert.NotContains(t, body, "stringd_string_conflicts_total")
}

func TestEscapeLabelValue(t *testing.T) {
	assert.Equal(t, `a\"b\\c\nd`, escapeLabelValue("a\"b\\c\nd"))
}

func TestCounter_Concurrent(t *testing.T) {
	reg := NewRegistry()
	c := reg.NewCounter("c_total", "c", "k")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.WithLabels("x").Inc()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, float64(2000), c.WithLabels("x").Value())
}
