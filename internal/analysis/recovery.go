// ABOUTME: Fatigue and performance recovery trends from consecutive measurement differences.
// ABOUTME: A trend proxy, not a rate: differences are not normalized by elapsed time.
package analysis

import (
	"sort"

	"github.com/google/uuid"
	"github.com/strengthlab/creatine/internal/models"
	"gonum.org/v1/gonum/stat"
)

// RecoveryPattern is the mean first-order difference of fatigue and
// performance across one participant's date-ordered measurements.
//
// Elapsed time between measurements may be irregular; these means carry no
// time normalization and should be read as direction-of-change indicators
// only, not as units-per-day rates.
type RecoveryPattern struct {
	ParticipantID          uuid.UUID              `json:"participant_id"`
	GroupAssignment        models.GroupAssignment `json:"group_assignment"`
	AvgFatigueRecovery     *float64               `json:"avg_fatigue_recovery"`
	AvgPerformanceRecovery *float64               `json:"avg_performance_recovery"`
}

// RecoveryPatterns computes per-participant recovery trends. Participants
// with a single measurement are skipped; a metric with no adjacent non-null
// pairs yields a null mean for that metric.
func RecoveryPatterns(records []models.ProgressRecord) ([]RecoveryPattern, error) {
	if len(records) == 0 {
		return nil, &MissingDataError{Metric: "progress_data", Detail: "no progress records"}
	}

	var patterns []RecoveryPattern
	for _, series := range groupByParticipant(records) {
		if len(series) < 2 {
			continue
		}

		patterns = append(patterns, RecoveryPattern{
			ParticipantID:          series[0].ParticipantID,
			GroupAssignment:        series[0].GroupAssignment,
			AvgFatigueRecovery:     meanConsecutiveDiff(series, models.MetricFatigueLevel),
			AvgPerformanceRecovery: meanConsecutiveDiff(series, models.MetricPerformanceScore),
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].ParticipantID.String() < patterns[j].ParticipantID.String()
	})
	return patterns, nil
}

// meanConsecutiveDiff averages the differences between adjacent timepoints.
// Pairs with a null on either side are skipped.
func meanConsecutiveDiff(series []models.ProgressRecord, metric models.Metric) *float64 {
	var diffs []float64
	for i := 1; i < len(series); i++ {
		prev := series[i-1].MetricValue(metric)
		curr := series[i].MetricValue(metric)
		if prev == nil || curr == nil {
			continue
		}
		diffs = append(diffs, *curr-*prev)
	}
	if len(diffs) == 0 {
		return nil
	}
	mean := stat.Mean(diffs, nil)
	return &mean
}
