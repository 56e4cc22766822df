// ABOUTME: Progress-record join of participants with their measurements.
// ABOUTME: The primary tabular input to the analysis engine; never persisted.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/strengthlab/creatine/internal/models"
)

// GetProgressData returns the participant × measurement join, ordered by
// participant then measurement date. Recomputed on every call.
func (d *DB) GetProgressData() ([]models.ProgressRecord, error) {
	query := `
		SELECT
			p.id,
			p.age,
			p.training_status,
			p.group_assignment,
			m.measurement_date,
			m.strength_1rm_kg,
			m.lean_mass_kg,
			m.performance_score,
			m.muscle_thickness_mm,
			m.creatine_kinase_level,
			m.fatigue_level
		FROM participants p
		JOIN measurements m ON p.id = m.participant_id
		ORDER BY p.id, m.measurement_date
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("progress data: %w", err)
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		var r models.ProgressRecord
		var pidStr, status, group, measurementDate string
		var performance, thickness, kinase, fatigue sql.NullFloat64

		err := rows.Scan(&pidStr, &r.Age, &status, &group, &measurementDate,
			&r.Strength1RMKg, &r.LeanMassKg, &performance, &thickness, &kinase, &fatigue)
		if err != nil {
			return nil, fmt.Errorf("scan progress record: %w", err)
		}

		r.ParticipantID, _ = uuid.Parse(pidStr)
		r.TrainingStatus = models.TrainingStatus(status)
		r.GroupAssignment = models.GroupAssignment(group)
		r.MeasurementDate, _ = time.Parse(time.RFC3339, measurementDate)
		r.PerformanceScore = nullableFloat(performance)
		r.MuscleThicknessMM = nullableFloat(thickness)
		r.CreatineKinaseLevel = nullableFloat(kinase)
		r.FatigueLevel = nullableFloat(fatigue)

		records = append(records, r)
	}

	return records, rows.Err()
}
