// Package metrics defines the Prometheus collectors exported by khalari.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "khalari"

var (
	ModuleCompletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "module_completions_total",
			Help:      "Modules completed, by path (quiz or bypass).",
		},
		[]string{"path"},
	)

	QuizAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_attempts_total",
			Help:      "Submitted quizzes, by result.",
		},
		[]string{"result"},
	)

	BypassAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bypass_attempts_total",
			Help:      "Bypass mini-game attempts, by outcome.",
		},
		[]string{"outcome"},
	)

	Diamonds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diamonds_total",
			Help:      "Diamonds moved, by direction (credit/debit) and reason.",
		},
		[]string{"direction", "reason"},
	)

	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "LLM requests, by purpose and outcome.",
		},
		[]string{"purpose", "outcome"},
	)

	LLMLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "LLM request latency.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40},
		},
		[]string{"purpose"},
	)

	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"method", "endpoint"},
	)
)

// Registry holds every khalari collector plus the Go runtime collectors.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		ModuleCompletions,
		QuizAttempts,
		BypassAttempts,
		Diamonds,
		LLMRequests,
		LLMLatency,
		RequestCounter,
		RequestDuration,
		collectors.NewGoCollector(),
	)
}

// Credit records diamonds credited for reason.
func Credit(reason string, amount int) {
	if amount > 0 {
		Diamonds.WithLabelValues("credit", reason).Add(float64(amount))
	}
}

// Debit records diamonds debited for reason.
func Debit(reason string, amount int) {
	if amount > 0 {
		Diamonds.WithLabelValues("debit", reason).Add(float64(amount))
	}
}

// ObserveLLM records one LLM request.
func ObserveLLM(purpose string, ok bool, latency time.Duration) {
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	LLMRequests.WithLabelValues(purpose, outcome).Inc()
	LLMLatency.WithLabelValues(purpose).Observe(latency.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware counts requests and their latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, endpoint).
			Observe(time.Since(start).Seconds())
	}
}
