// ABOUTME: Measurement operations for SQLite storage.
// ABOUTME: Append-only observations filtered by typed, parameterized options.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/strengthlab/creatine/internal/models"
)

// MeasurementFilter narrows a measurement listing. All fields are optional;
// set fields are bound as SQL parameters, never interpolated.
type MeasurementFilter struct {
	ParticipantID *uuid.UUID
	Since         *time.Time
	Until         *time.Time
}

const measurementColumns = `
	id, participant_id, measurement_date, strength_1rm_kg, lean_mass_kg,
	muscle_thickness_mm, creatine_kinase_level, performance_score, fatigue_level, created_at
`

// CreateMeasurement validates and stores a new measurement. The participant
// foreign key is enforced by SQLite.
func (d *DB) CreateMeasurement(m *models.Measurement) error {
	if err := m.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO measurements (
			id, participant_id, measurement_date, strength_1rm_kg, lean_mass_kg,
			muscle_thickness_mm, creatine_kinase_level, performance_score, fatigue_level, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		m.ID.String(),
		m.ParticipantID.String(),
		m.MeasurementDate.Format(time.RFC3339),
		m.Strength1RMKg,
		m.LeanMassKg,
		m.MuscleThicknessMM,
		m.CreatineKinaseLevel,
		m.PerformanceScore,
		m.FatigueLevel,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create measurement: %w", err)
	}
	return nil
}

// ListMeasurements retrieves measurements matching the filter, ordered by
// measurement date ascending.
func (d *DB) ListMeasurements(filter MeasurementFilter) ([]*models.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements`
	var conditions []string
	var args []interface{}

	if filter.ParticipantID != nil {
		conditions = append(conditions, "participant_id = ?")
		args = append(args, filter.ParticipantID.String())
	}
	if filter.Since != nil {
		conditions = append(conditions, "measurement_date >= ?")
		args = append(args, filter.Since.Format(time.RFC3339))
	}
	if filter.Until != nil {
		conditions = append(conditions, "measurement_date <= ?")
		args = append(args, filter.Until.Format(time.RFC3339))
	}

	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY measurement_date"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer rows.Close()

	return scanMeasurements(rows)
}

// ParticipantMeasurements retrieves one participant's time-ordered series.
func (d *DB) ParticipantMeasurements(participantID uuid.UUID) ([]*models.Measurement, error) {
	return d.ListMeasurements(MeasurementFilter{ParticipantID: &participantID})
}

func scanMeasurements(rows *sql.Rows) ([]*models.Measurement, error) {
	var measurements []*models.Measurement

	for rows.Next() {
		var m models.Measurement
		var idStr, pidStr, measurementDate, createdAt string
		var thickness, kinase, performance, fatigue sql.NullFloat64

		err := rows.Scan(&idStr, &pidStr, &measurementDate, &m.Strength1RMKg, &m.LeanMassKg,
			&thickness, &kinase, &performance, &fatigue, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}

		m.ID, _ = uuid.Parse(idStr)
		m.ParticipantID, _ = uuid.Parse(pidStr)
		m.MeasurementDate, _ = time.Parse(time.RFC3339, measurementDate)
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		m.MuscleThicknessMM = nullableFloat(thickness)
		m.CreatineKinaseLevel = nullableFloat(kinase)
		m.PerformanceScore = nullableFloat(performance)
		m.FatigueLevel = nullableFloat(fatigue)

		measurements = append(measurements, &m)
	}

	return measurements, rows.Err()
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
