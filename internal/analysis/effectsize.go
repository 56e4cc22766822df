// ABOUTME: Cohen's d effect sizes comparing the creatine and placebo arms.
// ABOUTME: Pooled standard deviation uses population variance; degenerate groups surface as errors.
package analysis

import (
	"fmt"
	"math"

	"github.com/strengthlab/creatine/internal/models"
	"gonum.org/v1/gonum/stat"
)

// EffectSizeResult is the standardized mean difference for one metric.
type EffectSizeResult struct {
	Metric         string  `json:"metric"`
	EffectSize     float64 `json:"effect_size"`
	Interpretation string  `json:"interpretation"`
}

// CohenD computes Cohen's d between two independent samples:
// (mean(a) − mean(b)) / sqrt((popvar(a) + popvar(b)) / 2).
//
// Population variance is the fixed, documented choice for the pooled term.
// Each sample needs at least two observations; a zero pooled standard
// deviation is reported as DegenerateStatisticsError, never as Inf or NaN.
func CohenD(a, b []float64) (float64, error) {
	if len(a) < 2 || len(b) < 2 {
		return 0, &DegenerateStatisticsError{
			Metric: "cohens_d",
			Detail: fmt.Sprintf("need at least 2 observations per group, got %d and %d", len(a), len(b)),
		}
	}

	pooled := math.Sqrt((popVariance(a) + popVariance(b)) / 2)
	if pooled == 0 {
		return 0, &DegenerateStatisticsError{
			Metric: "cohens_d",
			Detail: "pooled standard deviation is zero",
		}
	}

	return (stat.Mean(a, nil) - stat.Mean(b, nil)) / pooled, nil
}

// InterpretEffectSize classifies |d|: <0.2 Negligible, <0.5 Small,
// <0.8 Medium, else Large. Boundary values map upward; the sign of d is
// ignored here but preserved in the value.
func InterpretEffectSize(d float64) string {
	switch abs := math.Abs(d); {
	case abs < 0.2:
		return "Negligible"
	case abs < 0.5:
		return "Small"
	case abs < 0.8:
		return "Medium"
	default:
		return "Large"
	}
}

// EffectSizes computes Cohen's d for each tracked metric over the full
// progress-record table. Every timepoint counts as one observation; null
// observations are excluded per group.
func EffectSizes(records []models.ProgressRecord) (map[string]EffectSizeResult, error) {
	if len(records) == 0 {
		return nil, &MissingDataError{Metric: "progress_data", Detail: "no progress records"}
	}

	results := make(map[string]EffectSizeResult, len(models.TrackedMetrics))
	for _, metric := range models.TrackedMetrics {
		creatine := metricObservations(records, metric, models.GroupCreatine)
		placebo := metricObservations(records, metric, models.GroupPlacebo)

		d, err := CohenD(creatine, placebo)
		if err != nil {
			if degenerate, ok := err.(*DegenerateStatisticsError); ok {
				degenerate.Metric = string(metric)
			}
			return nil, err
		}

		results[string(metric)] = EffectSizeResult{
			Metric:         string(metric),
			EffectSize:     d,
			Interpretation: InterpretEffectSize(d),
		}
	}

	return results, nil
}

// metricObservations collects the non-null values of one metric for one arm.
func metricObservations(records []models.ProgressRecord, metric models.Metric, group models.GroupAssignment) []float64 {
	var values []float64
	for i := range records {
		if records[i].GroupAssignment != group {
			continue
		}
		if v := records[i].MetricValue(metric); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

// popVariance is the population (biased, divide-by-n) variance.
func popVariance(xs []float64) float64 {
	n := float64(len(xs))
	return stat.Variance(xs, nil) * (n - 1) / n
}
