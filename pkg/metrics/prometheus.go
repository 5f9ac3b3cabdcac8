// Package metrics provides Prometheus metrics for the artistly catalog service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector exposed by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Catalog
	catalogArtists    prometheus.Gauge
	catalogCategories prometheus.Gauge
	filterQueries     *prometheus.CounterVec
	filterResults     prometheus.Histogram
	activeSessions    prometheus.Gauge

	// Onboarding
	onboardingTransitions *prometheus.CounterVec
	applicationsSubmitted prometheus.Counter
	applicationsRejected  *prometheus.CounterVec
	applicationsDuplicate prometheus.Counter

	// Dashboard
	statusChangeRequests *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec

	// Submission pipeline
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueEnqueued     prometheus.Counter
	queueDequeued     prometheus.Counter
	queueEnqueueFails *prometheus.CounterVec
	workerCount       prometheus.Gauge
	workerLatency     prometheus.Histogram
	workerErrors      prometheus.Counter

	// Runtime
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "artistly",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels,
	})
}

func (m *Manager) initializeMetrics() {
	m.catalogArtists = m.gauge("artists", "Number of artists in the loaded dataset")
	m.catalogCategories = m.gauge("categories", "Number of categories in the loaded dataset")
	m.filterQueries = m.counterVec("filter_queries_total", "Filter evaluations by origin (stateless, session, dashboard, cli)", "origin")
	m.filterResults = m.histogram("filter_results", "Result size of filter evaluations",
		[]float64{0, 1, 2, 5, 10, 25, 50, 100, 250})
	m.activeSessions = m.gauge("sessions_active", "Number of live visitor sessions")

	m.onboardingTransitions = m.counterVec("onboarding_transitions_total",
		"Onboarding step transition attempts by source step and outcome", "step", "outcome")
	m.applicationsSubmitted = m.counter("applications_submitted_total", "Applications accepted by the submission sink")
	m.applicationsRejected = m.counterVec("applications_rejected_total", "Applications the sink refused, by reason", "reason")
	m.applicationsDuplicate = m.counter("applications_duplicate_total", "Submissions short-circuited by idempotency key")

	m.statusChangeRequests = m.counterVec("status_change_requests_total",
		"Requested submission status changes by target status and outcome", "status", "outcome")

	auto := promauto.With(m.registry)
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "http_requests_total",
		Help: "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint, method and error type", "endpoint", "method", "error_type")
	m.errorsByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")

	m.queueSize = m.gauge("submission_queue_size", "Applications waiting for the submission sink")
	m.queueCapacity = m.gauge("submission_queue_capacity", "Maximum submission queue capacity")
	m.queueEnqueued = m.counter("submission_queue_enqueue_total", "Applications enqueued")
	m.queueDequeued = m.counter("submission_queue_dequeue_total", "Applications dequeued")
	m.queueEnqueueFails = m.counterVec("submission_queue_enqueue_errors_total", "Enqueue failures by reason", "reason")
	m.workerCount = m.gauge("submission_worker_count", "Submission sink workers")
	m.workerLatency = m.histogram("submission_worker_latency_milliseconds", "Time the sink took per application", m.histogramBuckets)
	m.workerErrors = m.counter("submission_worker_errors_total", "Sink failures observed by workers")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// UpdateCatalogSize sets the dataset gauges.
func UpdateCatalogSize(artists, categories int) {
	globalManager.catalogArtists.Set(float64(artists))
	globalManager.catalogCategories.Set(float64(categories))
}

// RecordFilterQuery counts one filter evaluation and its result size.
func RecordFilterQuery(origin string, results int) {
	globalManager.filterQueries.WithLabelValues(origin).Inc()
	globalManager.filterResults.Observe(float64(results))
}

// UpdateActiveSessions sets the live session gauge.
func UpdateActiveSessions(n int) {
	globalManager.activeSessions.Set(float64(n))
}

// RecordOnboardingTransition counts a step transition attempt.
// outcome is one of advanced, blocked, back, clamped.
func RecordOnboardingTransition(step int, outcome string) {
	globalManager.onboardingTransitions.WithLabelValues(strconv.Itoa(step), outcome).Inc()
}

// RecordApplicationSubmitted counts an application accepted by the sink.
func RecordApplicationSubmitted() {
	globalManager.applicationsSubmitted.Inc()
}

// RecordApplicationRejected counts an application the sink refused.
func RecordApplicationRejected(reason string) {
	globalManager.applicationsRejected.WithLabelValues(reason).Inc()
}

// RecordApplicationDuplicate counts a replayed submission.
func RecordApplicationDuplicate() {
	globalManager.applicationsDuplicate.Inc()
}

// RecordStatusChangeRequest counts a dashboard status change request.
func RecordStatusChangeRequest(status, outcome string) {
	globalManager.statusChangeRequests.WithLabelValues(status, outcome).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateQueueSize sets the submission queue depth.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the submission queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError counts a refused enqueue.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueFails.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the submission worker gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records sink latency in milliseconds.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
