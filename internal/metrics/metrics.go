package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// Evaluations counts engine runs by recommendation outcome.
	Evaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "engine_evaluations_total", Help: "Engine evaluations by outcome."},
		[]string{"recommendation", "confidence"},
	)
	// EvaluationDuration records end-to-end evaluation latency.
	EvaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "engine_evaluation_duration_seconds", Help: "Evaluation duration in seconds.", Buckets: prometheus.DefBuckets},
	)
	// CollaboratorFallbacks counts degraded collaborator calls.
	CollaboratorFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "engine_collaborator_fallbacks_total", Help: "Collaborator failures recovered via fallback."},
		[]string{"collaborator"},
	)
	// CacheHits counts memoization cache lookups by result.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "engine_cache_lookups_total", Help: "Memoization cache lookups."},
		[]string{"result"},
	)
)

// RegisterDefault registers collectors on the registry once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(Evaluations)
		Registry.MustRegister(EvaluationDuration)
		Registry.MustRegister(CollaboratorFallbacks)
		Registry.MustRegister(CacheHits)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
