package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestObserveRecordsCounterAndHistogram(t *testing.T) {
	m := NewHTTPMetrics()

	m.Observe(http.MethodGet, "/api/v1/assets", http.StatusOK, 25*time.Millisecond)
	m.Observe(http.MethodGet, "/api/v1/assets", http.StatusOK, 40*time.Millisecond)
	m.Observe(http.MethodPost, "/api/v1/assets", http.StatusBadRequest, 5*time.Millisecond)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	requests := findMetricFamily(families, "http_requests_total")
	if requests == nil {
		t.Fatal("expected http_requests_total family")
	}
	got := counterValue(t, requests, map[string]string{
		"method": "GET",
		"route":  "/api/v1/assets",
		"status": "200",
	})
	if got != 2 {
		t.Fatalf("expected 2 GET 200 requests, got %v", got)
	}
	got = counterValue(t, requests, map[string]string{
		"method": "POST",
		"route":  "/api/v1/assets",
		"status": "400",
	})
	if got != 1 {
		t.Fatalf("expected 1 POST 400 request, got %v", got)
	}

	duration := findMetricFamily(families, "http_request_duration_seconds")
	if duration == nil {
		t.Fatal("expected http_request_duration_seconds family")
	}
	for _, metric := range duration.GetMetric() {
		if matchesLabels(metric, map[string]string{"method": "GET", "route": "/api/v1/assets"}) {
			if count := metric.GetHistogram().GetSampleCount(); count != 2 {
				t.Fatalf("expected 2 GET samples, got %d", count)
			}
			return
		}
	}
	t.Fatal("no histogram series for GET /api/v1/assets")
}

func TestObserveNormalizesEmptyRoute(t *testing.T) {
	m := NewHTTPMetrics()
	m.Observe(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	requests := findMetricFamily(families, "http_requests_total")
	if requests == nil {
		t.Fatal("expected http_requests_total family")
	}
	got := counterValue(t, requests, map[string]string{
		"method": "GET",
		"route":  "unknown",
		"status": "404",
	})
	if got != 1 {
		t.Fatalf("expected 1 request under unknown route, got %v", got)
	}
}

func TestObserveOnNilReceiverIsNoop(t *testing.T) {
	var m *HTTPMetrics
	m.Observe(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	if h := m.Handler(); h == nil {
		t.Fatal("expected fallback handler")
	}
}

func TestHandlerServesScrapeOutput(t *testing.T) {
	m := NewHTTPMetrics()
	m.Observe(http.MethodGet, "/healthz", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "http_requests_total") {
		t.Fatalf("scrape output missing counter, got: %s", body)
	}
}

func findMetricFamily(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func counterValue(t *testing.T, family *dto.MetricFamily, labels map[string]string) float64 {
	t.Helper()
	for _, metric := range family.GetMetric() {
		if matchesLabels(metric, labels) {
			return metric.GetCounter().GetValue()
		}
	}
	t.Fatalf("no series matching %v", labels)
	return 0
}

func matchesLabels(metric *dto.Metric, labels map[string]string) bool {
	seen := make(map[string]string, len(metric.GetLabel()))
	for _, pair := range metric.GetLabel() {
		seen[pair.GetName()] = pair.GetValue()
	}
	for name, value := range labels {
		if seen[name] != value {
			return false
		}
	}
	return true
}
