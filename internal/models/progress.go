// ABOUTME: ProgressRecord, the derived join of a participant with one measurement.
// ABOUTME: Never persisted; recomputed per analysis request from the store.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgressRecord is one row of the participant × measurement join, ordered
// by participant then measurement date.
type ProgressRecord struct {
	ParticipantID       uuid.UUID       `json:"participant_id"`
	Age                 int             `json:"age"`
	TrainingStatus      TrainingStatus  `json:"training_status"`
	GroupAssignment     GroupAssignment `json:"group_assignment"`
	MeasurementDate     time.Time       `json:"measurement_date"`
	Strength1RMKg       float64         `json:"strength_1rm_kg"`
	LeanMassKg          float64         `json:"lean_mass_kg"`
	PerformanceScore    *float64        `json:"performance_score,omitempty"`
	MuscleThicknessMM   *float64        `json:"muscle_thickness_mm,omitempty"`
	CreatineKinaseLevel *float64        `json:"creatine_kinase_level,omitempty"`
	FatigueLevel        *float64        `json:"fatigue_level,omitempty"`
}

// MetricValue returns the value of the named outcome column, or nil when the
// observation is absent.
func (r *ProgressRecord) MetricValue(metric Metric) *float64 {
	switch metric {
	case MetricStrength1RM:
		v := r.Strength1RMKg
		return &v
	case MetricLeanMass:
		v := r.LeanMassKg
		return &v
	case MetricMuscleThickness:
		return r.MuscleThicknessMM
	case MetricCreatineKinase:
		return r.CreatineKinaseLevel
	case MetricPerformanceScore:
		return r.PerformanceScore
	case MetricFatigueLevel:
		return r.FatigueLevel
	}
	return nil
}
