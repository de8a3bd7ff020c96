package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsExposure(t *testing.T) {
	ObserveReport(time.Now().Add(-1500*time.Millisecond), nil)
	ObserveReport(time.Now(), errors.New("boom"))
	IncUpstream("social", 200)
	IncUpstream("social", 503)
	IncAPIRetry("/test")
	IncAIFallback("seo")
	ObserveAI("seo", time.Now())
	IncHTTPRequest("GET", "/", 200)
	IncCommandRun("report")
	IncCommandError("report")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, m := range []string{
		"artistpulse_reports_total",
		"artistpulse_report_duration_seconds",
		"artistpulse_upstream_requests_total",
		"artistpulse_api_retries_total",
		"artistpulse_ai_fallbacks_total",
		"artistpulse_ai_duration_seconds",
		"artistpulse_http_requests_total",
		"artistpulse_command_runs_total",
		"artistpulse_command_errors_total",
	} {
		if !strings.Contains(body, m) {
			t.Fatalf("expected metric %s in body", m)
		}
	}
}

func TestIncUpstreamOutcomeLabels(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues("llm", "error"))
	IncUpstream("llm", 0)
	if got := testutil.ToFloat64(UpstreamRequests.WithLabelValues("llm", "error")); got != before+1 {
		t.Fatalf("expected error outcome for status 0, got %v", got-before)
	}
	before = testutil.ToFloat64(UpstreamRequests.WithLabelValues("llm", "429"))
	IncUpstream("llm", 429)
	if got := testutil.ToFloat64(UpstreamRequests.WithLabelValues("llm", "429")); got != before+1 {
		t.Fatalf("expected 429 outcome, got %v", got-before)
	}
}
