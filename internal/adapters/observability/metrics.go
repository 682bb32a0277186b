package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staybook", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "staybook", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	WorkflowStages = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staybook", Name: "workflow_stage_transitions_total", Help: "Workflow stage transitions."},
		[]string{"stage"},
	)
	WorkflowRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staybook", Name: "workflow_runs_total", Help: "Workflow runs by terminal state."},
		[]string{"state"},
	)
	BookingCommits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staybook", Name: "booking_commits_total", Help: "Booking commit attempts by outcome."},
		[]string{"outcome"}, // outcome: confirmed|conflict|rejected|error
	)
	Cancellations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staybook", Name: "booking_cancellations_total", Help: "Cancellation attempts by outcome."},
		[]string{"outcome"}, // outcome: cancelled|not_found|already_cancelled
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staybook", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

// Serve starts the standalone metrics listener. Empty addr disables it.
func Serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, WorkflowStages, WorkflowRuns, BookingCommits, Cancellations, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveWorkflowStage(stage string) { WorkflowStages.WithLabelValues(stage).Inc() }

func ObserveWorkflowRun(state string) { WorkflowRuns.WithLabelValues(state).Inc() }

func ObserveBooking(outcome string) { BookingCommits.WithLabelValues(outcome).Inc() }

func ObserveCancel(outcome string) { Cancellations.WithLabelValues(outcome).Inc() }

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
