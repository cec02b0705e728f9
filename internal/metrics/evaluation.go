package metrics

import "github.com/prometheus/client_golang/prometheus"

// Evaluation pipeline Prometheus metrics.
var (
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qaoad",
			Name:      "evaluations_total",
			Help:      "Total number of expectation evaluations",
		},
		[]string{"backend", "status"},
	)

	EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qaoad",
			Name:      "evaluation_duration_seconds",
			Help:      "Evaluation duration in seconds, compilation through estimation",
			Buckets:   []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"backend"},
	)

	ShotsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qaoad",
			Name:      "shots_total",
			Help:      "Total circuit repetitions executed",
		},
		[]string{"backend"},
	)

	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qaoad",
			Name:      "provider_requests_total",
			Help:      "Total requests to the remote quantum provider",
		},
		[]string{"endpoint", "status"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qaoad",
			Name:      "provider_request_duration_seconds",
			Help:      "Remote provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	EvaluationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qaoad",
			Name:      "evaluation_cache_total",
			Help:      "Expectation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var evalMetricsRegistered bool

// RegisterEvaluationMetrics registers the pipeline metrics. Must be called
// once from main.
func RegisterEvaluationMetrics() {
	if evalMetricsRegistered {
		return
	}
	prometheus.MustRegister(EvaluationsTotal)
	prometheus.MustRegister(EvaluationDuration)
	prometheus.MustRegister(ShotsTotal)
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderRequestDuration)
	prometheus.MustRegister(EvaluationCacheTotal)
	evalMetricsRegistered = true
}
