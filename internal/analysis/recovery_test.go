// ABOUTME: Tests for fatigue and performance recovery trend computation.
// ABOUTME: Covers adjacent-difference means and null-pair skipping.
package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/strengthlab/creatine/internal/models"
)

func TestRecoveryPatterns(t *testing.T) {
	pid := uuid.New()
	records := []models.ProgressRecord{
		makeRecord(pid, models.GroupCreatine, models.StatusTrained, 0, 100, 65),
		makeRecord(pid, models.GroupCreatine, models.StatusTrained, 7, 105, 65.2),
		makeRecord(pid, models.GroupCreatine, models.StatusTrained, 14, 110, 65.4),
	}
	records[0].FatigueLevel = floatPtr(5)
	records[1].FatigueLevel = floatPtr(4)
	records[2].FatigueLevel = floatPtr(3)
	records[0].PerformanceScore = floatPtr(8.0)
	records[1].PerformanceScore = floatPtr(8.4)
	records[2].PerformanceScore = floatPtr(8.6)

	patterns, err := RecoveryPatterns(records)
	if err != nil {
		t.Fatalf("RecoveryPatterns failed: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1", len(patterns))
	}

	p := patterns[0]
	if p.AvgFatigueRecovery == nil || *p.AvgFatigueRecovery != -1.0 {
		t.Errorf("AvgFatigueRecovery = %v, want -1.0", p.AvgFatigueRecovery)
	}
	if p.AvgPerformanceRecovery == nil || math.Abs(*p.AvgPerformanceRecovery-0.3) > 1e-9 {
		t.Errorf("AvgPerformanceRecovery = %v, want 0.3", p.AvgPerformanceRecovery)
	}
}

func TestRecoveryPatternsNullPairsSkipped(t *testing.T) {
	pid := uuid.New()
	records := []models.ProgressRecord{
		makeRecord(pid, models.GroupCreatine, models.StatusTrained, 0, 100, 65),
		makeRecord(pid, models.GroupCreatine, models.StatusTrained, 7, 105, 65.2),
		makeRecord(pid, models.GroupCreatine, models.StatusTrained, 14, 110, 65.4),
	}
	// Fatigue observed at the ends only; every adjacent pair has a null side.
	records[0].FatigueLevel = floatPtr(5)
	records[2].FatigueLevel = floatPtr(3)

	patterns, err := RecoveryPatterns(records)
	if err != nil {
		t.Fatalf("RecoveryPatterns failed: %v", err)
	}

	if patterns[0].AvgFatigueRecovery != nil {
		t.Errorf("AvgFatigueRecovery = %v, want nil when no adjacent pairs exist", patterns[0].AvgFatigueRecovery)
	}
}

func TestRecoveryPatternsSingleTimepointSkipped(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	records := []models.ProgressRecord{
		makeRecord(p1, models.GroupCreatine, models.StatusTrained, 0, 100, 65),
		makeRecord(p2, models.GroupPlacebo, models.StatusTrained, 0, 100, 65),
		makeRecord(p2, models.GroupPlacebo, models.StatusTrained, 7, 103, 65.2),
	}

	patterns, err := RecoveryPatterns(records)
	if err != nil {
		t.Fatalf("RecoveryPatterns failed: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1", len(patterns))
	}
	if patterns[0].ParticipantID != p2 {
		t.Errorf("ParticipantID = %v, want %v", patterns[0].ParticipantID, p2)
	}
}

func TestRecoveryPatternsEmptyRecords(t *testing.T) {
	_, err := RecoveryPatterns(nil)
	var missing *MissingDataError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDataError, got %v", err)
	}
}
