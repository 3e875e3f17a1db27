// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	AnalysesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_completed_total",
			Help: "Total number of finished analyses by decision",
		},
		[]string{"mode", "decision"},
	)

	EnrichmentLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_lookups_total",
			Help: "External lookup attempts by source and outcome",
		},
		[]string{"source", "status"},
	)
)
