package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the AI pipeline. Registered on the default registry and
// served on /metrics.
var (
	GeminiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gemini_requests_total",
		Help: "Gemini API calls by kind (question, ideal_answer, evaluation, summary, tts, resume).",
	}, []string{"kind"})

	GeminiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gemini_failures_total",
		Help: "Failed Gemini API calls by kind.",
	}, []string{"kind"})

	EvaluationJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evaluation_jobs_total",
		Help: "Evaluation jobs by terminal status (done, failed, requeued).",
	}, []string{"status"})

	EvaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "evaluation_job_duration_seconds",
		Help:    "Wall time of one evaluation job, claim to completion.",
		Buckets: prometheus.DefBuckets,
	})

	Transcriptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transcriptions_total",
		Help: "Speech-to-text requests by outcome (ok, error).",
	}, []string{"outcome"})
)
