// Package telemetry exports Prometheus metrics for review analysis and the HTTP API.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ppiankov/candor/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsNamespace prefixes every metric name
const MetricsNamespace = "candor"

// Metrics holds the Prometheus collectors
type Metrics struct {
	// Analysis metrics
	ReviewsAnalyzed  *prometheus.CounterVec
	Violations       *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	Confidence       prometheus.Histogram

	// Batch metrics
	BatchesProcessed *prometheus.CounterVec
	BatchRows        *prometheus.CounterVec

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewMetricsWith(reg, reg)
}

// NewMetricsWith registers the collectors on reg and serves them from gatherer
func NewMetricsWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{gatherer: gatherer}
	m.initAnalysisMetrics(factory)
	m.initBatchMetrics(factory)
	m.initHTTPMetrics(factory)
	return m
}

func (m *Metrics) initAnalysisMetrics(factory promauto.Factory) {
	m.ReviewsAnalyzed = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "reviews_analyzed_total",
		Help:      "Reviews analyzed, by resulting status",
	}, []string{"status"})

	m.Violations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "violations_total",
		Help:      "Policy violations detected, by kind",
	}, []string{"kind"})

	m.AnalysisDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time to analyze a single review",
		Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
	})

	m.Confidence = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Name:      "confidence",
		Help:      "Distribution of review confidence scores",
		Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
	})
}

func (m *Metrics) initBatchMetrics(factory promauto.Factory) {
	m.BatchesProcessed = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: "batch",
		Name:      "processed_total",
		Help:      "Batch analyses, by outcome",
	}, []string{"outcome"})

	m.BatchRows = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: "batch",
		Name:      "rows_total",
		Help:      "Batch rows, by preprocessing stage (loaded, missing, outlier, analyzed)",
	}, []string{"stage"})
}

func (m *Metrics) initHTTPMetrics(factory promauto.Factory) {
	m.RequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests, by route and status code",
	}, []string{"route", "code"})

	m.RequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	m.RateLimited = factory.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter",
	})
}

// ObserveReview records a single review analysis
func (m *Metrics) ObserveReview(result model.AnalysisResult, duration time.Duration) {
	m.ReviewsAnalyzed.WithLabelValues(string(result.Status)).Inc()
	for _, v := range result.Analysis.Violations {
		m.Violations.WithLabelValues(string(v.Type)).Inc()
	}
	m.AnalysisDuration.Observe(duration.Seconds())
	m.Confidence.Observe(result.Confidence)
}

// ObserveBatch records a batch analysis outcome and its row counts per stage
func (m *Metrics) ObserveBatch(report model.BatchReport) {
	if !report.Success {
		m.BatchesProcessed.WithLabelValues("failed").Inc()
		return
	}
	m.BatchesProcessed.WithLabelValues("succeeded").Inc()

	if step := report.Step(model.StepDataLoading); step != nil {
		m.BatchRows.WithLabelValues("loaded").Add(detailCount(step, "rows"))
	}
	if step := report.Step(model.StepMissingValues); step != nil {
		m.BatchRows.WithLabelValues("missing").Add(detailCount(step, "rows_removed"))
	}
	if step := report.Step(model.StepOutlierRemoval); step != nil {
		m.BatchRows.WithLabelValues("outlier").Add(detailCount(step, "outliers_removed"))
	}
	m.BatchRows.WithLabelValues("analyzed").Add(float64(report.Summary.TotalAnalyzed))
}

// ObserveRequest records an HTTP request
func (m *Metrics) ObserveRequest(route string, code int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ObserveRateLimited records a rejected request
func (m *Metrics) ObserveRateLimited() {
	m.RateLimited.Inc()
}

// Handler serves the metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func detailCount(step *model.PreprocessingStep, key string) float64 {
	if n, ok := step.Details[key].(int); ok && n > 0 {
		return float64(n)
	}
	return 0
}
