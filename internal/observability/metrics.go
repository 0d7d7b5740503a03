package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	httpDurationHistogram   *prometheus.HistogramVec
	payoutTransitionCounter *prometheus.CounterVec
	payoutFailureCounter    *prometheus.CounterVec
	payoutsByStatusGauge    *prometheus.GaugeVec
	auditViolationCounter   *prometheus.CounterVec
	idempotencyCounter      *prometheus.CounterVec
	workerRunCounter        *prometheus.CounterVec
)

// Init registers all Prometheus collectors.
func Init() {
	registerOnce.Do(func() {
		httpDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"})

		payoutTransitionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payout_transitions_total",
			Help: "Committed payout lifecycle transitions",
		}, []string{"transition"})

		payoutFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payout_transition_failures_total",
			Help: "Refused or failed payout transitions by error kind",
		}, []string{"transition", "kind"})

		payoutsByStatusGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "payouts_by_status",
			Help: "Number of payouts currently in each status",
		}, []string{"status"})

		auditViolationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payout_audit_violations_total",
			Help: "Payouts whose audit trail does not reconstruct their status",
		}, []string{"status"})

		idempotencyCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idempotency_events_total",
			Help: "Idempotency middleware outcomes",
		}, []string{"outcome"})

		workerRunCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_runs_total",
			Help: "Background worker run outcomes",
		}, []string{"worker", "result"})

		prometheus.MustRegister(
			httpDurationHistogram,
			payoutTransitionCounter,
			payoutFailureCounter,
			payoutsByStatusGauge,
			auditViolationCounter,
			idempotencyCounter,
			workerRunCounter,
		)
	})
}

func ObserveHTTP(method, path string, status int, duration time.Duration) {
	if httpDurationHistogram == nil {
		return
	}
	httpDurationHistogram.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

func IncrementPayoutTransition(transition string) {
	if payoutTransitionCounter == nil {
		return
	}
	payoutTransitionCounter.WithLabelValues(transition).Inc()
}

func IncrementPayoutFailure(transition, kind string) {
	if payoutFailureCounter == nil {
		return
	}
	payoutFailureCounter.WithLabelValues(transition, kind).Inc()
}

// SetPayoutsByStatus replaces the per-status gauge. Statuses missing from
// counts are reset to zero.
func SetPayoutsByStatus(statuses []string, counts map[string]int64) {
	if payoutsByStatusGauge == nil {
		return
	}
	for _, status := range statuses {
		payoutsByStatusGauge.WithLabelValues(status).Set(float64(counts[status]))
	}
}

func IncrementAuditViolation(status string) {
	if auditViolationCounter == nil {
		return
	}
	auditViolationCounter.WithLabelValues(status).Inc()
}

func IncrementIdempotencyEvent(outcome string) {
	if idempotencyCounter == nil {
		return
	}
	idempotencyCounter.WithLabelValues(outcome).Inc()
}

func IncrementWorkerRun(worker, result string) {
	if workerRunCounter == nil {
		return
	}
	workerRunCounter.WithLabelValues(worker, result).Inc()
}
