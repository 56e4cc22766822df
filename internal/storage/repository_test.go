// ABOUTME: Tests for Repository interface implementation over SQLite.
// ABOUTME: Verifies participant and measurement CRUD with prefix resolution.
package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/strengthlab/creatine/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return db
}

func TestCreateAndGetParticipant(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p := models.NewParticipant(25, "male", models.GroupCreatine, models.StatusTrained)
	p.DosingProtocol = models.DosingLoading
	p.WeightKg = 75.5
	p.HeightCm = 180

	if err := db.CreateParticipant(p); err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}

	got, err := db.GetParticipant(p.ID.String())
	if err != nil {
		t.Fatalf("GetParticipant failed: %v", err)
	}

	if got.ID != p.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, p.ID)
	}
	if got.Age != 25 {
		t.Errorf("Age = %d, want 25", got.Age)
	}
	if got.GroupAssignment != models.GroupCreatine {
		t.Errorf("GroupAssignment = %v, want creatine", got.GroupAssignment)
	}
	if got.DosingProtocol != models.DosingLoading {
		t.Errorf("DosingProtocol = %v, want loading", got.DosingProtocol)
	}
	if got.PopulationCategory != "young trained" {
		t.Errorf("PopulationCategory = %q, want 'young trained'", got.PopulationCategory)
	}
	if got.WeightKg != 75.5 {
		t.Errorf("WeightKg = %v, want 75.5", got.WeightKg)
	}
}

func TestGetParticipantByPrefix(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p := models.NewParticipant(25, "male", models.GroupCreatine, models.StatusTrained)
	if err := db.CreateParticipant(p); err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}

	got, err := db.GetParticipant(p.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetParticipant by prefix failed: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, p.ID)
	}

	if _, err := db.GetParticipant("ffffffff"); err == nil {
		t.Error("expected error for unknown prefix")
	}
}

func TestCreateParticipantValidation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p := models.NewParticipant(25, "male", "control", models.StatusTrained)
	err := db.CreateParticipant(p)
	if err == nil {
		t.Fatal("expected validation error for bad group")
	}
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestListParticipantsByGroup(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for i, group := range []models.GroupAssignment{models.GroupCreatine, models.GroupCreatine, models.GroupPlacebo} {
		p := models.NewParticipant(25+i, "male", group, models.StatusTrained)
		if err := db.CreateParticipant(p); err != nil {
			t.Fatalf("CreateParticipant failed: %v", err)
		}
	}

	all, err := db.ListParticipants(nil)
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d participants, want 3", len(all))
	}

	creatine := models.GroupCreatine
	arm, err := db.ListParticipants(&creatine)
	if err != nil {
		t.Fatalf("ListParticipants filtered failed: %v", err)
	}
	if len(arm) != 2 {
		t.Errorf("got %d creatine participants, want 2", len(arm))
	}
	for _, p := range arm {
		if p.GroupAssignment != models.GroupCreatine {
			t.Errorf("filter leaked %v participant", p.GroupAssignment)
		}
	}
}

func TestUpdateParticipant(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p := models.NewParticipant(25, "male", models.GroupCreatine, models.StatusTrained)
	if err := db.CreateParticipant(p); err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}

	p.Age = 26
	p.WeightKg = 76.0
	if err := db.UpdateParticipant(p); err != nil {
		t.Fatalf("UpdateParticipant failed: %v", err)
	}

	got, err := db.GetParticipant(p.ID.String())
	if err != nil {
		t.Fatalf("GetParticipant failed: %v", err)
	}
	if got.Age != 26 || got.WeightKg != 76.0 {
		t.Errorf("update not applied: age %d weight %v", got.Age, got.WeightKg)
	}

	ghost := models.NewParticipant(30, "female", models.GroupPlacebo, models.StatusUntrained)
	if err := db.UpdateParticipant(ghost); err == nil {
		t.Error("expected error updating unknown participant")
	}
}

func TestCreateMeasurementAndList(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p := models.NewParticipant(25, "male", models.GroupCreatine, models.StatusTrained)
	if err := db.CreateParticipant(p); err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for week := 0; week < 3; week++ {
		m := models.NewMeasurement(p.ID, base.AddDate(0, 0, 7*week), 100+float64(week), 65)
		if week == 1 {
			m.WithPerformance(8.5).WithFatigue(3)
		}
		if err := db.CreateMeasurement(m); err != nil {
			t.Fatalf("CreateMeasurement failed: %v", err)
		}
	}

	measurements, err := db.ParticipantMeasurements(p.ID)
	if err != nil {
		t.Fatalf("ParticipantMeasurements failed: %v", err)
	}
	if len(measurements) != 3 {
		t.Fatalf("got %d measurements, want 3", len(measurements))
	}

	// Ordered by date ascending.
	for i := 1; i < len(measurements); i++ {
		if measurements[i].MeasurementDate.Before(measurements[i-1].MeasurementDate) {
			t.Error("measurements not ordered by date")
		}
	}

	// Optional columns round-trip as null or value.
	if measurements[0].PerformanceScore != nil {
		t.Error("week 0 performance should be null")
	}
	if measurements[1].PerformanceScore == nil || *measurements[1].PerformanceScore != 8.5 {
		t.Errorf("week 1 performance = %v, want 8.5", measurements[1].PerformanceScore)
	}
}

func TestCreateMeasurementForeignKey(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	m := models.NewMeasurement(uuid.New(), time.Now(), 100, 65)
	err := db.CreateMeasurement(m)
	if err == nil {
		t.Fatal("expected foreign key error for unknown participant")
	}
	if !strings.Contains(err.Error(), "create measurement") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListMeasurementsFilter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p1 := models.NewParticipant(25, "male", models.GroupCreatine, models.StatusTrained)
	p2 := models.NewParticipant(30, "female", models.GroupPlacebo, models.StatusUntrained)
	for _, p := range []*models.Participant{p1, p2} {
		if err := db.CreateParticipant(p); err != nil {
			t.Fatalf("CreateParticipant failed: %v", err)
		}
	}

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for week := 0; week < 4; week++ {
		for _, p := range []*models.Participant{p1, p2} {
			m := models.NewMeasurement(p.ID, base.AddDate(0, 0, 7*week), 100, 65)
			if err := db.CreateMeasurement(m); err != nil {
				t.Fatalf("CreateMeasurement failed: %v", err)
			}
		}
	}

	byParticipant, err := db.ListMeasurements(MeasurementFilter{ParticipantID: &p1.ID})
	if err != nil {
		t.Fatalf("ListMeasurements failed: %v", err)
	}
	if len(byParticipant) != 4 {
		t.Errorf("got %d measurements for p1, want 4", len(byParticipant))
	}

	since := base.AddDate(0, 0, 14)
	until := base.AddDate(0, 0, 21)
	windowed, err := db.ListMeasurements(MeasurementFilter{Since: &since, Until: &until})
	if err != nil {
		t.Fatalf("ListMeasurements failed: %v", err)
	}
	if len(windowed) != 4 {
		t.Errorf("got %d measurements in window, want 4", len(windowed))
	}
	for _, m := range windowed {
		if m.MeasurementDate.Before(since) || m.MeasurementDate.After(until) {
			t.Errorf("measurement %s outside window", m.MeasurementDate)
		}
	}
}
