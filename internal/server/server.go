// Package server assembles the HTTP surface: the Connect service, the CSV export,
// health and metrics endpoints.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/aequitally/internal/calculator"
	"github.com/mmynk/aequitally/internal/export"
	"github.com/mmynk/aequitally/internal/metrics"
	"github.com/mmynk/aequitally/internal/middleware"
	"github.com/mmynk/aequitally/internal/storage"
	"github.com/mmynk/aequitally/pkg/api/apiconnect"
)

// Deps are the collaborators of the router.
type Deps struct {
	Store   storage.Store
	Service apiconnect.TallyServiceHandler
	Metrics *metrics.Metrics

	// Epsilon is the settlement noise floor of the CSV export.
	Epsilon float64

	// Now defaults to time.Now.
	Now func() time.Time
}

type exportHandler struct {
	store   storage.Store
	metrics *metrics.Metrics
	epsilon float64
	now     func() time.Time
}

// NewRouter returns the h2c-wrapped handler serving every route.
func NewRouter(d Deps) http.Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Epsilon <= 0 {
		d.Epsilon = calculator.DefaultEpsilon
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(cors)

	path, handler := apiconnect.NewTallyServiceHandler(d.Service, connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(d.Metrics),
	))
	r.Handle(path+"*", handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	exp := &exportHandler{store: d.Store, metrics: d.Metrics, epsilon: d.Epsilon, now: d.Now}
	r.Get("/tallies/{tallyID}/settlements.csv", exp.settlementsCSV)

	// HTTP/2 without TLS for Connect
	return h2c.NewHandler(r, &http2.Server{})
}

func (h *exportHandler) settlementsCSV(w http.ResponseWriter, r *http.Request) {
	tallyID := chi.URLParam(r, "tallyID")
	ctx := r.Context()

	t, err := h.store.GetTally(ctx, tallyID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "tally not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load tally for export", "tally_id", tallyID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	now := h.now()
	transfers := calculator.ComputeSettlements(*t, h.epsilon)
	h.metrics.SettlementPlanned(len(transfers))

	var buf bytes.Buffer
	if err := export.WriteSettlementCSV(&buf, *t, transfers, now); err != nil {
		slog.ErrorContext(ctx, "Failed to render settlement csv", "tally_id", tallyID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(*t, now)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())

	slog.Info("Settlement csv exported", "tally_id", tallyID, "count", len(transfers))
}
