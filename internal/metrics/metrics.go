package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Reports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artistpulse_reports_total",
		Help: "Total report builds by outcome",
	}, []string{"outcome"})
	ReportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "artistpulse_report_duration_seconds",
		Help:    "Report build duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	UpstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artistpulse_upstream_requests_total",
		Help: "Outbound requests by service and outcome",
	}, []string{"service", "outcome"})
	APIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artistpulse_api_retries_total",
		Help: "Total API retry attempts",
	}, []string{"endpoint"})
	AIFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artistpulse_ai_fallbacks_total",
		Help: "Analyses that degraded to the fallback confidence",
	}, []string{"kind"})
	AIDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "artistpulse_ai_duration_seconds",
		Help:    "Analysis call duration seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
	}, []string{"kind"})
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artistpulse_http_requests_total",
		Help: "Inbound HTTP requests",
	}, []string{"method", "route", "status"})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artistpulse_command_runs_total",
		Help: "CLI command invocations",
	}, []string{"cmd"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artistpulse_command_errors_total",
		Help: "CLI command failures",
	}, []string{"cmd"})
)

func init() {
	prometheus.MustRegister(Reports, ReportDuration, UpstreamRequests, APIRetries,
		AIFallbacks, AIDuration, HTTPRequests, CommandRuns, CommandErrors)
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// ObserveReport records a report build outcome and its duration.
func ObserveReport(start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	Reports.WithLabelValues(outcome).Inc()
	ReportDuration.Observe(time.Since(start).Seconds())
}

// IncUpstream counts an outbound call; status 0 means no response.
func IncUpstream(service string, status int) {
	outcome := "error"
	switch {
	case status == 0:
	case status < 400:
		outcome = "ok"
	default:
		outcome = strconv.Itoa(status)
	}
	UpstreamRequests.WithLabelValues(service, outcome).Inc()
}

// IncAPIRetry increments the retry counter for an endpoint.
func IncAPIRetry(endpoint string) { APIRetries.WithLabelValues(endpoint).Inc() }

func IncAIFallback(kind string) { AIFallbacks.WithLabelValues(kind).Inc() }

func ObserveAI(kind string, start time.Time) {
	AIDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func IncHTTPRequest(method, route string, status int) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func IncCommandRun(cmd string)   { CommandRuns.WithLabelValues(cmd).Inc() }
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }
