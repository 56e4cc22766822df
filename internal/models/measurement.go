// ABOUTME: Measurement model and tracked-metric enum for the creatine study.
// ABOUTME: One append-only observation of a participant at one timepoint.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Metric identifies one measured outcome column.
type Metric string

const (
	MetricStrength1RM      Metric = "strength_1rm_kg"
	MetricLeanMass         Metric = "lean_mass_kg"
	MetricMuscleThickness  Metric = "muscle_thickness_mm"
	MetricCreatineKinase   Metric = "creatine_kinase_level"
	MetricPerformanceScore Metric = "performance_score"
	MetricFatigueLevel     Metric = "fatigue_level"
)

// TrackedMetrics are the outcomes the analysis engine models over time.
var TrackedMetrics = []Metric{MetricStrength1RM, MetricLeanMass, MetricPerformanceScore}

// MetricUnits maps metrics to their display units.
var MetricUnits = map[Metric]string{
	MetricStrength1RM:      "kg",
	MetricLeanMass:         "kg",
	MetricMuscleThickness:  "mm",
	MetricCreatineKinase:   "U/L",
	MetricPerformanceScore: "score",
	MetricFatigueLevel:     "scale",
}

// IsTrackedMetric reports whether s names a metric the analysis engine models.
func IsTrackedMetric(s string) bool {
	for _, m := range TrackedMetrics {
		if string(m) == s {
			return true
		}
	}
	return false
}

// Measurement is one observation of one participant at one timepoint.
// Strength and lean mass are required; the remaining outcomes may be absent.
type Measurement struct {
	ID                  uuid.UUID `json:"id" yaml:"id"`
	ParticipantID       uuid.UUID `json:"participant_id" yaml:"participant_id"`
	MeasurementDate     time.Time `json:"measurement_date" yaml:"measurement_date"`
	Strength1RMKg       float64   `json:"strength_1rm_kg" yaml:"strength_1rm_kg"`
	LeanMassKg          float64   `json:"lean_mass_kg" yaml:"lean_mass_kg"`
	MuscleThicknessMM   *float64  `json:"muscle_thickness_mm,omitempty" yaml:"muscle_thickness_mm,omitempty"`
	CreatineKinaseLevel *float64  `json:"creatine_kinase_level,omitempty" yaml:"creatine_kinase_level,omitempty"`
	PerformanceScore    *float64  `json:"performance_score,omitempty" yaml:"performance_score,omitempty"`
	FatigueLevel        *float64  `json:"fatigue_level,omitempty" yaml:"fatigue_level,omitempty"`
	CreatedAt           time.Time `json:"created_at" yaml:"created_at"`
}

// NewMeasurement creates a measurement with a generated UUID.
func NewMeasurement(participantID uuid.UUID, date time.Time, strength, leanMass float64) *Measurement {
	return &Measurement{
		ID:              uuid.New(),
		ParticipantID:   participantID,
		MeasurementDate: date,
		Strength1RMKg:   strength,
		LeanMassKg:      leanMass,
		CreatedAt:       time.Now(),
	}
}

// WithPerformance sets the performance score.
func (m *Measurement) WithPerformance(score float64) *Measurement {
	m.PerformanceScore = &score
	return m
}

// WithFatigue sets the fatigue level.
func (m *Measurement) WithFatigue(level float64) *Measurement {
	m.FatigueLevel = &level
	return m
}

// WithMuscleThickness sets the muscle thickness reading.
func (m *Measurement) WithMuscleThickness(mm float64) *Measurement {
	m.MuscleThicknessMM = &mm
	return m
}

// WithCreatineKinase sets the creatine kinase level.
func (m *Measurement) WithCreatineKinase(level float64) *Measurement {
	m.CreatineKinaseLevel = &level
	return m
}

// Validate checks the measurement before it reaches the store.
func (m *Measurement) Validate() error {
	if m.ID == uuid.Nil {
		return &ValidationError{Field: "id", Reason: "missing"}
	}
	if m.ParticipantID == uuid.Nil {
		return &ValidationError{Field: "participant_id", Reason: "missing"}
	}
	if m.MeasurementDate.IsZero() {
		return &ValidationError{Field: "measurement_date", Reason: "missing"}
	}
	if m.Strength1RMKg < 0 {
		return &ValidationError{Field: "strength_1rm_kg", Reason: "must be non-negative"}
	}
	if m.LeanMassKg < 0 {
		return &ValidationError{Field: "lean_mass_kg", Reason: "must be non-negative"}
	}
	return nil
}

// MetricValue returns the value of the named outcome column, or nil when the
// observation is absent. Required columns always return a value.
func (m *Measurement) MetricValue(metric Metric) *float64 {
	switch metric {
	case MetricStrength1RM:
		v := m.Strength1RMKg
		return &v
	case MetricLeanMass:
		v := m.LeanMassKg
		return &v
	case MetricMuscleThickness:
		return m.MuscleThicknessMM
	case MetricCreatineKinase:
		return m.CreatineKinaseLevel
	case MetricPerformanceScore:
		return m.PerformanceScore
	case MetricFatigueLevel:
		return m.FatigueLevel
	}
	return nil
}
