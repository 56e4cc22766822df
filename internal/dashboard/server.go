// ABOUTME: Interactive dashboard HTTP server for the creatine study.
// ABOUTME: Serves the HTML page and a JSON API over gorilla/mux.
package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/strengthlab/creatine/internal/analysis"
	"github.com/strengthlab/creatine/internal/models"
)

// Server renders the study dashboard from store data.
type Server struct {
	store  analysis.Store
	engine *analysis.Engine
	log    *logrus.Logger
	cache  *resultCache
	router *mux.Router
}

// NewServer creates a dashboard server over the given store.
func NewServer(store analysis.Store, log *logrus.Logger) *Server {
	s := &Server{
		store:  store,
		engine: analysis.NewEngine(store, log),
		log:    log,
		cache:  newResultCache(),
		router: mux.NewRouter(),
	}

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/kpis", s.handleKPIs).Methods(http.MethodGet)
	api.HandleFunc("/progression", s.handleProgression).Methods(http.MethodGet)
	api.HandleFunc("/groups", s.handleGroups).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.handleSummary).Methods(http.MethodGet)
	api.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the dashboard on the given port.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.WithField("addr", addr).Info("dashboard listening")

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}

// metricParam validates the ?metric= query parameter against the tracked
// set, defaulting to lean mass.
func metricParam(r *http.Request) (models.Metric, error) {
	raw := r.URL.Query().Get("metric")
	if raw == "" {
		return models.MetricLeanMass, nil
	}
	if !models.IsTrackedMetric(raw) {
		return "", fmt.Errorf("unknown metric: %q", raw)
	}
	return models.Metric(raw), nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
	}
}

// writeFailure reports a failed computation as a JSON payload instead of a
// partial result.
func (s *Server) writeFailure(w http.ResponseWriter, status int, err error) {
	s.log.WithError(err).Error("dashboard request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
