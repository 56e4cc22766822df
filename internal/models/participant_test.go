// ABOUTME: Tests for participant enrollment model and validation.
// ABOUTME: Covers population category derivation and field-level failures.
package models

import (
	"errors"
	"testing"
)

func TestNewParticipant(t *testing.T) {
	p := NewParticipant(25, "male", GroupCreatine, StatusTrained)

	if p.ID.String() == "" {
		t.Error("expected generated ID")
	}
	if p.Age != 25 {
		t.Errorf("Age = %d, want 25", p.Age)
	}
	if p.PopulationCategory != "young trained" {
		t.Errorf("PopulationCategory = %q, want 'young trained'", p.PopulationCategory)
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestPopulationCategory(t *testing.T) {
	tests := []struct {
		age    int
		status TrainingStatus
		want   string
	}{
		{25, StatusTrained, "young trained"},
		{49, StatusUntrained, "young untrained"},
		{50, StatusTrained, "older trained"},
		{72, StatusUntrained, "older untrained"},
	}

	for _, tt := range tests {
		if got := PopulationCategory(tt.age, tt.status); got != tt.want {
			t.Errorf("PopulationCategory(%d, %s) = %q, want %q", tt.age, tt.status, got, tt.want)
		}
	}
}

func TestParticipantValidate(t *testing.T) {
	valid := NewParticipant(30, "female", GroupPlacebo, StatusUntrained)
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate failed on valid participant: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Participant)
		field  string
	}{
		{"zero age", func(p *Participant) { p.Age = 0 }, "age"},
		{"negative age", func(p *Participant) { p.Age = -5 }, "age"},
		{"bad group", func(p *Participant) { p.GroupAssignment = "control" }, "group_assignment"},
		{"bad status", func(p *Participant) { p.TrainingStatus = "elite" }, "training_status"},
		{"bad dosing", func(p *Participant) { p.DosingProtocol = "megadose" }, "dosing_protocol"},
		{"negative weight", func(p *Participant) { p.WeightKg = -1 }, "anthropometrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParticipant(30, "female", GroupPlacebo, StatusUntrained)
			tt.mutate(p)

			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestParticipantValidateEmptyDosing(t *testing.T) {
	p := NewParticipant(30, "male", GroupCreatine, StatusTrained)
	p.DosingProtocol = ""
	if err := p.Validate(); err != nil {
		t.Errorf("empty dosing protocol should be valid, got: %v", err)
	}
}
