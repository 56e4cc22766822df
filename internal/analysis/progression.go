// ABOUTME: Per-participant OLS progression rates and grouped rate summaries.
// ABOUTME: Rates are metric-units/day over an elapsed-days axis; incomplete series are omitted.
package analysis

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/strengthlab/creatine/internal/models"
	"gonum.org/v1/gonum/stat"
)

// MetricFit is the fitted slope and goodness-of-fit for one metric series.
type MetricFit struct {
	Rate float64 `json:"rate"`
	R2   float64 `json:"r2"`
}

// ParticipantRates carries one participant's fitted progression rates.
// Metrics whose series contain a null, or participants with fewer than two
// distinct timepoints, are absent rather than zero.
type ParticipantRates struct {
	ParticipantID   uuid.UUID                   `json:"participant_id"`
	GroupAssignment models.GroupAssignment      `json:"group_assignment"`
	TrainingStatus  models.TrainingStatus       `json:"training_status"`
	Rates           map[models.Metric]MetricFit `json:"rates"`
}

// RateStats summarizes one metric's rates within a group. Std is NaN for
// single-member groups and serializes as null.
type RateStats struct {
	Mean float64
	Std  float64
	N    int
}

// MarshalJSON renders NaN std as null instead of failing the encoder.
func (s RateStats) MarshalJSON() ([]byte, error) {
	var std any
	if !math.IsNaN(s.Std) {
		std = s.Std
	}
	return json.Marshal(struct {
		Mean float64 `json:"mean"`
		Std  any     `json:"std"`
		N    int     `json:"n"`
	}{s.Mean, std, s.N})
}

// GroupRateSummary aggregates participant rates by study cell.
type GroupRateSummary struct {
	GroupAssignment models.GroupAssignment      `json:"group_assignment"`
	TrainingStatus  models.TrainingStatus       `json:"training_status"`
	Stats           map[models.Metric]RateStats `json:"stats"`
}

// ProgressionRates fits an ordinary-least-squares line of metric value
// against elapsed days since the participant's first measurement, for each
// participant and each tracked metric. A metric is fitted only when its
// series is complete (no nulls) across the participant's timepoints.
func ProgressionRates(records []models.ProgressRecord) ([]ParticipantRates, error) {
	if len(records) == 0 {
		return nil, &MissingDataError{Metric: "progress_data", Detail: "no progress records"}
	}

	grouped := groupByParticipant(records)

	var results []ParticipantRates
	for _, series := range grouped {
		if len(series) < 2 {
			continue
		}

		first := series[0].MeasurementDate
		days := make([]float64, len(series))
		for i, r := range series {
			days[i] = r.MeasurementDate.Sub(first).Hours() / 24
		}
		// All measurements on the same date give the day axis zero
		// spread and the slope is undefined. Treat it like a
		// single-timepoint participant.
		if allEqual(days) {
			continue
		}

		rates := make(map[models.Metric]MetricFit)
		for _, metric := range models.TrackedMetrics {
			values, complete := metricSeries(series, metric)
			if !complete {
				continue
			}
			rates[metric] = fitRate(days, values)
		}

		results = append(results, ParticipantRates{
			ParticipantID:   series[0].ParticipantID,
			GroupAssignment: series[0].GroupAssignment,
			TrainingStatus:  series[0].TrainingStatus,
			Rates:           rates,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ParticipantID.String() < results[j].ParticipantID.String()
	})
	return results, nil
}

// SummarizeRates groups participant rates by (group_assignment,
// training_status) and reports mean and sample standard deviation of each
// metric's rate. A single-member group reports std as NaN, never 0.
func SummarizeRates(rates []ParticipantRates) []GroupRateSummary {
	type cell struct {
		group  models.GroupAssignment
		status models.TrainingStatus
	}

	byCell := make(map[cell][]ParticipantRates)
	for _, r := range rates {
		key := cell{r.GroupAssignment, r.TrainingStatus}
		byCell[key] = append(byCell[key], r)
	}

	var summaries []GroupRateSummary
	for _, group := range models.AllGroups {
		for _, status := range models.AllTrainingStatuses {
			members, ok := byCell[cell{group, status}]
			if !ok {
				continue
			}

			stats := make(map[models.Metric]RateStats)
			for _, metric := range models.TrackedMetrics {
				var values []float64
				for _, m := range members {
					if fit, ok := m.Rates[metric]; ok {
						values = append(values, fit.Rate)
					}
				}
				if len(values) == 0 {
					continue
				}

				std := math.NaN()
				if len(values) > 1 {
					std = stat.StdDev(values, nil)
				}
				stats[metric] = RateStats{
					Mean: stat.Mean(values, nil),
					Std:  std,
					N:    len(values),
				}
			}

			summaries = append(summaries, GroupRateSummary{
				GroupAssignment: group,
				TrainingStatus:  status,
				Stats:           stats,
			})
		}
	}
	return summaries
}

// groupByParticipant splits join rows into per-participant series, keeping
// the store's participant-then-date ordering.
func groupByParticipant(records []models.ProgressRecord) [][]models.ProgressRecord {
	var grouped [][]models.ProgressRecord
	index := make(map[uuid.UUID]int)
	for i := range records {
		pid := records[i].ParticipantID
		at, ok := index[pid]
		if !ok {
			at = len(grouped)
			index[pid] = at
			grouped = append(grouped, nil)
		}
		grouped[at] = append(grouped[at], records[i])
	}
	return grouped
}

// fitRate fits value against elapsed days by ordinary least squares. A
// constant series is an exact fit with zero slope: gonum's RSquared divides
// by a zero total sum of squares there and reports NaN, so R² is 1 directly.
func fitRate(days, values []float64) MetricFit {
	if allEqual(values) {
		return MetricFit{Rate: 0, R2: 1}
	}
	alpha, beta := stat.LinearRegression(days, values, nil, false)
	return MetricFit{Rate: beta, R2: stat.RSquared(days, values, nil, alpha, beta)}
}

func allEqual(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// metricSeries extracts one metric's values across a participant's series.
// complete is false if any observation is null.
func metricSeries(series []models.ProgressRecord, metric models.Metric) (values []float64, complete bool) {
	values = make([]float64, 0, len(series))
	for i := range series {
		v := series[i].MetricValue(metric)
		if v == nil {
			return nil, false
		}
		values = append(values, *v)
	}
	return values, true
}
