package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes used as the "outcome" label.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

var (
	GenerationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instructchat_generation_requests_total",
		Help: "Generation requests by outcome",
	}, []string{"outcome"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "instructchat_generation_duration_seconds",
		Help:    "Generation request duration",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"outcome"})

	PromptTokens = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "instructchat_prompt_tokens",
		Help:    "Distribution of prompt lengths after truncation",
		Buckets: []float64{8, 16, 32, 64, 128, 256, 512},
	})

	GeneratedTokens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instructchat_generated_tokens_total",
		Help: "Total new tokens returned by the model",
	})

	SessionAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "instructchat_model_session_available",
		Help: "1 when the model session initialized successfully",
	})

	HistoryTurns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "instructchat_history_turns",
		Help: "Number of turns in the chat history",
	})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instructchat_rate_limited_total",
		Help: "Requests rejected by the submit rate limiter",
	})
)

// RecordGeneration records one generation attempt.
func RecordGeneration(outcome string, d time.Duration, promptTokens, newTokens int) {
	GenerationRequests.WithLabelValues(outcome).Inc()
	GenerationDuration.WithLabelValues(outcome).Observe(d.Seconds())
	if promptTokens > 0 {
		PromptTokens.Observe(float64(promptTokens))
	}
	if newTokens > 0 {
		GeneratedTokens.Add(float64(newTokens))
	}
}

// SetSessionAvailable publishes the model session state.
func SetSessionAvailable(ok bool) {
	if ok {
		SessionAvailable.Set(1)
		return
	}
	SessionAvailable.Set(0)
}

// Handler serves the default registry in Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
