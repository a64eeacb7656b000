package obs

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestNewLoggerLevelFallback(t *testing.T) {
	logger := NewLogger("json", "nonsense")
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %s, want info", logger.GetLevel())
	}
	logger = NewLogger("console", "debug")
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("level = %s, want debug", logger.GetLevel())
	}
}

func TestResourceLabel(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/api/invoices/inv-1/status", "invoices"},
		{"/api/patients", "patients"},
		{"/doctors/d1/stats", "doctors"},
		{"/", "unknown"},
	}
	for _, tc := range cases {
		if got := ResourceLabel(tc.path); got != tc.want {
			t.Fatalf("ResourceLabel(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestMetricsRoundTripperRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics("medledger", reg)
	client := &http.Client{
		Timeout:   5 * time.Second,
		Transport: metrics.RoundTripper(nil),
	}

	resp, err := client.Get(srv.URL + "/api/invoices/inv-1")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()

	count := testutil.ToFloat64(metrics.calls.WithLabelValues(http.MethodGet, "invoices", "200"))
	if count != 1 {
		t.Fatalf("calls_total = %v, want 1", count)
	}
}

func TestMetricsHandlerExposesRecordedCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics("medledger", reg)
	client := &http.Client{
		Timeout:   5 * time.Second,
		Transport: metrics.RoundTripper(nil),
	}
	resp, err := client.Get(srv.URL + "/api/patients")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()

	scrape := httptest.NewServer(MetricsHandler(reg))
	defer scrape.Close()

	resp, err = http.Get(scrape.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scrape status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	exposition := string(body)
	if !strings.Contains(exposition, `medledger_api_calls_total{method="GET",resource="patients",status="200"} 1`) {
		t.Fatalf("exposition missing recorded call:\n%s", exposition)
	}
	if !strings.Contains(exposition, "medledger_api_call_duration_seconds_bucket") {
		t.Fatalf("exposition missing duration histogram:\n%s", exposition)
	}
}
