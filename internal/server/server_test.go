package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/aequitally/internal/metrics"
	"github.com/mmynk/aequitally/internal/models"
	"github.com/mmynk/aequitally/internal/service"
	"github.com/mmynk/aequitally/internal/storage/sqlite"
	"github.com/mmynk/aequitally/pkg/api"
	"github.com/mmynk/aequitally/pkg/api/apiconnect"
)

var testNow = time.Date(2026, 6, 1, 9, 15, 0, 0, time.UTC)

func setupTestServer(t *testing.T) (*httptest.Server, *sqlite.SQLiteStore) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	m := metrics.New()
	clock := func() time.Time { return testNow }
	handler := NewRouter(Deps{
		Store:   store,
		Service: service.NewTallyService(store, service.WithMetrics(m), service.WithClock(clock)),
		Metrics: m,
		Now:     clock,
	})
	server := httptest.NewServer(handler)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server, store
}

func createDinner(t *testing.T, store *sqlite.SQLiteStore) string {
	t.Helper()
	tally := &models.Tally{
		Name:      "Lisbon trip",
		CreatedAt: testNow.Unix(),
		Participants: []models.Participant{
			{UserID: "A", Name: "Alice"},
			{UserID: "B", Name: "Bob"},
			{UserID: "C", Name: "Carol"},
		},
		Expenses: []models.Expense{{
			ID: "dinner", Title: "Dinner", Amount: 90, PaidBy: "A", ShareMethod: models.ShareMethodEqual,
			ShareBetween: []models.Share{
				{ParticipantID: "A", Amount: 30},
				{ParticipantID: "B", Amount: 30},
				{ParticipantID: "C", Amount: 30},
			},
		}},
	}
	if err := store.CreateTally(context.Background(), tally); err != nil {
		t.Fatalf("CreateTally failed: %v", err)
	}
	return tally.ID
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, body := get(t, server.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body != `{"status":"ok"}` {
		t.Errorf("body = %q", body)
	}
}

func TestSettlementsCSV(t *testing.T) {
	server, store := setupTestServer(t)
	id := createDinner(t, store)

	resp, body := get(t, server.URL+"/tallies/"+id+"/settlements.csv")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	wantDisposition := `attachment; filename="Lisbon-trip-settlements-2026-06-01.csv"`
	if got := resp.Header.Get("Content-Disposition"); got != wantDisposition {
		t.Errorf("Content-Disposition = %q, want %q", got, wantDisposition)
	}

	for _, line := range []string{
		"Tally Name,Lisbon trip",
		"Export Date,2026-06-01T09:15:00Z",
		"Bob,Alice,30.00,Settlement",
		"Carol,Alice,30.00,Settlement",
		"Total to Settle,60.00",
	} {
		if !strings.Contains(body, line+"\n") {
			t.Errorf("csv missing %q:\n%s", line, body)
		}
	}
}

func TestSettlementsCSV_NotFound(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, _ := get(t, server.URL+"/tallies/missing/settlements.csv")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server, store := setupTestServer(t)
	id := createDinner(t, store)

	// one export records one settlement plan
	get(t, server.URL+"/tallies/"+id+"/settlements.csv")

	resp, body := get(t, server.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	for _, name := range []string{"aequitally_settlement_transfers_count 1", "go_goroutines"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}

func TestConnectMount(t *testing.T) {
	server, store := setupTestServer(t)
	id := createDinner(t, store)

	client := apiconnect.NewTallyServiceClient(http.DefaultClient, server.URL)
	resp, err := client.GetSettlements(context.Background(), connect.NewRequest(&api.GetSettlementsRequest{TallyID: id}))
	if err != nil {
		t.Fatalf("GetSettlements failed: %v", err)
	}
	if len(resp.Msg.Transfers) != 2 {
		t.Errorf("got %d transfers, want 2", len(resp.Msg.Transfers))
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS headers missing on RPC response")
	}

	_, err = client.GetTally(context.Background(), connect.NewRequest(&api.GetTallyRequest{TallyID: "missing"}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("code = %v, want NotFound", connect.CodeOf(err))
	}
}

func TestCORSPreflight(t *testing.T) {
	server, _ := setupTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+apiconnect.TallyServiceCreateTallyProcedure, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "POST, GET, OPTIONS" {
		t.Errorf("Access-Control-Allow-Methods = %q", got)
	}
}
