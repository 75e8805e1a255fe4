package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveRPC("/aequitally.v1.TallyService/GetTally", "ok", 0.01)
	m.ObserveRPC("/aequitally.v1.TallyService/GetTally", "ok", 0.02)
	m.ValidationFailed("PercentageMismatch")
	m.SettlementPlanned(3)

	if got := testutil.ToFloat64(m.rpcRequests.WithLabelValues("/aequitally.v1.TallyService/GetTally", "ok")); got != 2 {
		t.Errorf("rpc_requests_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.validationFailures.WithLabelValues("PercentageMismatch")); got != 1 {
		t.Errorf("validation_failures_total = %v, want 1", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{
		"aequitally_rpc_requests_total",
		"aequitally_rpc_duration_seconds",
		"aequitally_validation_failures_total",
		"aequitally_settlement_transfers",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("exposition missing %s", name)
		}
	}
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.ObserveRPC("p", "ok", 1)
	m.ValidationFailed("k")
	m.SettlementPlanned(1)
	if m.Registry() != nil {
		t.Error("nil metrics should have no registry")
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
