// ABOUTME: Tests for dashboard HTTP handlers over a stub store.
// ABOUTME: Covers KPIs, progression, metric validation, and failure payloads.
package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/strengthlab/creatine/internal/analysis"
	"github.com/strengthlab/creatine/internal/logging"
	"github.com/strengthlab/creatine/internal/models"
)

type stubStore struct {
	records []models.ProgressRecord
	err     error
}

func (s *stubStore) GetProgressData() ([]models.ProgressRecord, error) {
	return s.records, s.err
}

func (s *stubStore) RunAnalysisQuery(name string) (*analysis.Table, error) {
	if s.err != nil {
		return nil, s.err
	}
	return analysis.NewTable("group_assignment", "value"), nil
}

func floatPtr(v float64) *float64 { return &v }

// testRecords builds two participants per arm with three weekly timepoints.
func testRecords() []models.ProgressRecord {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var records []models.ProgressRecord
	for g, group := range models.AllGroups {
		for p := 0; p < 2; p++ {
			pid := uuid.New()
			for week := 0; week < 3; week++ {
				records = append(records, models.ProgressRecord{
					ParticipantID:    pid,
					Age:              25 + g*30 + p,
					TrainingStatus:   models.StatusTrained,
					GroupAssignment:  group,
					MeasurementDate:  base.AddDate(0, 0, 7*week),
					Strength1RMKg:    100 + float64(week*(4-g)) + float64(p),
					LeanMassKg:       65 + float64(week)*float64(3-g)*0.2 + float64(p)*0.1,
					PerformanceScore: floatPtr(8.0 + float64(week)*0.2),
					FatigueLevel:     floatPtr(4 - float64(week)),
				})
			}
		}
	}
	return records
}

func newTestServer(store analysis.Store) *Server {
	return NewServer(store, logging.Discard())
}

func getJSON(t *testing.T, handler http.Handler, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("response not valid JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec
}

func TestHandleKPIs(t *testing.T) {
	server := newTestServer(&stubStore{records: testRecords()})

	var kpis map[string]any
	rec := getJSON(t, server.Handler(), "/api/kpis?metric=lean_mass_kg", &kpis)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	if kpis["metric"] != "lean_mass_kg" {
		t.Errorf("metric = %v, want lean_mass_kg", kpis["metric"])
	}
	if kpis["n_creatine"] != float64(2) || kpis["n_placebo"] != float64(2) {
		t.Errorf("sample sizes = %v/%v, want 2/2", kpis["n_creatine"], kpis["n_placebo"])
	}
	// Creatine gains more lean mass, so delta is positive.
	if delta, ok := kpis["delta"].(float64); !ok || delta <= 0 {
		t.Errorf("delta = %v, want positive", kpis["delta"])
	}
	if kpis["interpretation"] == "" {
		t.Error("missing effect size interpretation")
	}
	lo, hi := kpis["ci_lower"].(float64), kpis["ci_upper"].(float64)
	if lo >= hi {
		t.Errorf("CI [%v, %v] is inverted", lo, hi)
	}
}

func TestHandleKPIsDefaultMetric(t *testing.T) {
	server := newTestServer(&stubStore{records: testRecords()})

	var kpis map[string]any
	rec := getJSON(t, server.Handler(), "/api/kpis", &kpis)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if kpis["metric"] != "lean_mass_kg" {
		t.Errorf("default metric = %v, want lean_mass_kg", kpis["metric"])
	}
}

func TestHandleKPIsUnknownMetric(t *testing.T) {
	server := newTestServer(&stubStore{records: testRecords()})

	rec := getJSON(t, server.Handler(), "/api/kpis?metric=vo2_max", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown metric") {
		t.Errorf("expected error payload, got: %s", rec.Body.String())
	}
}

func TestHandleKPIsDegenerateData(t *testing.T) {
	// A single participant per arm cannot support Cohen's d.
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []models.ProgressRecord{
		{ParticipantID: uuid.New(), GroupAssignment: models.GroupCreatine, TrainingStatus: models.StatusTrained, MeasurementDate: base, Strength1RMKg: 100, LeanMassKg: 65},
		{ParticipantID: uuid.New(), GroupAssignment: models.GroupPlacebo, TrainingStatus: models.StatusTrained, MeasurementDate: base, Strength1RMKg: 100, LeanMassKg: 65},
	}
	server := newTestServer(&stubStore{records: records})

	rec := getJSON(t, server.Handler(), "/api/kpis?metric=lean_mass_kg", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422\n%s", rec.Code, rec.Body.String())
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failure payload not JSON: %v", err)
	}
	if payload["error"] == "" {
		t.Error("missing error message in failure payload")
	}
}

func TestHandleProgression(t *testing.T) {
	server := newTestServer(&stubStore{records: testRecords()})

	var rows []map[string]any
	rec := getJSON(t, server.Handler(), "/api/progression?metric=strength_1rm_kg", &rows)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// Two arms x three dates.
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}
	for _, row := range rows {
		if row["n"] != float64(2) {
			t.Errorf("n = %v, want 2", row["n"])
		}
		if _, ok := row["mean"].(float64); !ok {
			t.Errorf("mean missing or non-numeric: %v", row["mean"])
		}
	}
}

func TestHandleGroups(t *testing.T) {
	server := newTestServer(&stubStore{records: testRecords()})

	var groups map[string][]map[string]any
	rec := getJSON(t, server.Handler(), "/api/groups?metric=lean_mass_kg", &groups)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if len(groups["age_groups"]) == 0 {
		t.Error("missing age_groups breakdown")
	}
	if len(groups["training_status"]) == 0 {
		t.Error("missing training_status breakdown")
	}
}

func TestHandleSummary(t *testing.T) {
	server := newTestServer(&stubStore{records: testRecords()})

	var rows []map[string]any
	rec := getJSON(t, server.Handler(), "/api/summary", &rows)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d summary rows, want 2 (one per arm)", len(rows))
	}
}

func TestHandleReport(t *testing.T) {
	server := newTestServer(&stubStore{records: testRecords()})

	var report map[string]any
	rec := getJSON(t, server.Handler(), "/api/report", &report)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	if len(report) != 6 {
		t.Errorf("report has %d sections, want 6", len(report))
	}
}

func TestHandleReportStoreFailure(t *testing.T) {
	server := newTestServer(&stubStore{err: fmt.Errorf("database locked")})

	rec := getJSON(t, server.Handler(), "/api/report", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestHandleIndex(t *testing.T) {
	server := newTestServer(&stubStore{records: testRecords()})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Creatine Study Dashboard") {
		t.Error("missing page title")
	}
	for _, metric := range models.TrackedMetrics {
		if !strings.Contains(body, string(metric)) {
			t.Errorf("metric selector missing %s", metric)
		}
	}
}
