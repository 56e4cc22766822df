// ABOUTME: Participant model and enrollment enums for the creatine study.
// ABOUTME: Validates demographic and trial-assignment fields at the store boundary.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GroupAssignment is the trial arm a participant is randomized into.
type GroupAssignment string

const (
	GroupCreatine GroupAssignment = "creatine"
	GroupPlacebo  GroupAssignment = "placebo"
)

// AllGroups returns both trial arms in canonical order.
var AllGroups = []GroupAssignment{GroupCreatine, GroupPlacebo}

// TrainingStatus describes resistance-training experience at enrollment.
type TrainingStatus string

const (
	StatusTrained   TrainingStatus = "trained"
	StatusUntrained TrainingStatus = "untrained"
)

// AllTrainingStatuses returns both training statuses in canonical order.
var AllTrainingStatuses = []TrainingStatus{StatusTrained, StatusUntrained}

// DosingProtocol is the supplementation schedule assigned to a participant.
type DosingProtocol string

const (
	DosingLoading     DosingProtocol = "loading"
	DosingMaintenance DosingProtocol = "maintenance"
)

// ValidationError reports a malformed input field on a record.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Participant is one enrolled subject. Created once at enrollment and
// immutable afterwards except for administrative corrections.
type Participant struct {
	ID                      uuid.UUID       `json:"id" yaml:"id"`
	Age                     int             `json:"age" yaml:"age"`
	Gender                  string          `json:"gender" yaml:"gender"`
	WeightKg                float64         `json:"weight_kg" yaml:"weight_kg"`
	HeightCm                float64         `json:"height_cm" yaml:"height_cm"`
	TrainingExperienceYears float64         `json:"training_experience_years" yaml:"training_experience_years"`
	TrainingStatus          TrainingStatus  `json:"training_status" yaml:"training_status"`
	GroupAssignment         GroupAssignment `json:"group_assignment" yaml:"group_assignment"`
	DosingProtocol          DosingProtocol  `json:"dosing_protocol" yaml:"dosing_protocol"`
	PopulationCategory      string          `json:"population_category" yaml:"population_category"`
	CreatedAt               time.Time       `json:"created_at" yaml:"created_at"`
}

// NewParticipant creates a participant with a generated UUID and enrollment
// timestamp. The population category combines age bracket and training status.
func NewParticipant(age int, gender string, group GroupAssignment, status TrainingStatus) *Participant {
	return &Participant{
		ID:                 uuid.New(),
		Age:                age,
		Gender:             gender,
		GroupAssignment:    group,
		TrainingStatus:     status,
		PopulationCategory: PopulationCategory(age, status),
		CreatedAt:          time.Now(),
	}
}

// PopulationCategory derives the study-design grouping from age bracket and
// training status ("young trained", "older untrained", ...).
func PopulationCategory(age int, status TrainingStatus) string {
	bracket := "young"
	if age >= 50 {
		bracket = "older"
	}
	return bracket + " " + string(status)
}

// Validate checks enrollment fields before the participant reaches the store.
func (p *Participant) Validate() error {
	if p.ID == uuid.Nil {
		return &ValidationError{Field: "id", Reason: "missing"}
	}
	if p.Age <= 0 {
		return &ValidationError{Field: "age", Reason: "must be positive"}
	}
	switch p.GroupAssignment {
	case GroupCreatine, GroupPlacebo:
	default:
		return &ValidationError{Field: "group_assignment", Reason: fmt.Sprintf("must be creatine or placebo, got %q", p.GroupAssignment)}
	}
	switch p.TrainingStatus {
	case StatusTrained, StatusUntrained:
	default:
		return &ValidationError{Field: "training_status", Reason: fmt.Sprintf("must be trained or untrained, got %q", p.TrainingStatus)}
	}
	switch p.DosingProtocol {
	case DosingLoading, DosingMaintenance, "":
	default:
		return &ValidationError{Field: "dosing_protocol", Reason: fmt.Sprintf("unknown protocol %q", p.DosingProtocol)}
	}
	if p.WeightKg < 0 || p.HeightCm < 0 {
		return &ValidationError{Field: "anthropometrics", Reason: "weight and height must be non-negative"}
	}
	return nil
}
