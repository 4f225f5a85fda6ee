package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mfdata/zunload/pkg/parse"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Parse engine metrics
	recordsSeen   *prometheus.GaugeVec
	recordsParsed *prometheus.GaugeVec
	parseState    prometheus.Gauge
	parseDuration prometheus.Gauge
	parseErrors   prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zunload_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zunload_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "zunload_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		recordsSeen: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "zunload_records_seen",
				Help: "Records seen per record type in the current run",
			},
			[]string{"record_type"},
		),

		recordsParsed: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "zunload_records_parsed",
				Help: "Records parsed per record type in the current run",
			},
			[]string{"record_type"},
		),

		parseState: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "zunload_parse_state",
				Help: "Engine state: -1 error, 0 initial, 1 parsing, 2 ready",
			},
		),

		parseDuration: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "zunload_parse_duration_seconds",
				Help: "Elapsed parse time of the current run in seconds",
			},
		),

		parseErrors: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "zunload_parse_errors",
				Help: "Diagnostics and failures recorded by the current run",
			},
		),
	}

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// UpdateEngineStats publishes a status snapshot to the engine gauges
func (m *Metrics) UpdateEngineStats(st parse.Status) {
	for code, c := range st.PerType {
		m.recordsSeen.WithLabelValues(code).Set(float64(c.Seen))
		m.recordsParsed.WithLabelValues(code).Set(float64(c.Parsed))
	}
	m.parseState.Set(float64(st.State))
	m.parseDuration.Set(st.ElapsedSeconds)
	m.parseErrors.Set(float64(st.ErrorCount))
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler(rw, r)

		duration := time.Since(start)
		m.RecordHTTPRequest(method, endpoint, rw.statusCode, duration)
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
