// ABOUTME: Dashboard JSON API handlers: KPIs, progression, group comparisons, summary, report.
// ABOUTME: Each handler recomputes from fresh store reads under its display key.
package dashboard

import (
	"errors"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/strengthlab/creatine/internal/analysis"
	"github.com/strengthlab/creatine/internal/models"
	"gonum.org/v1/gonum/stat"
)

// kpiResponse is the KPI strip: final-timepoint group difference, effect
// size, t-test, and sample sizes.
type kpiResponse struct {
	Metric         string  `json:"metric"`
	Delta          float64 `json:"delta"`
	CILower        float64 `json:"ci_lower"`
	CIUpper        float64 `json:"ci_upper"`
	EffectSize     float64 `json:"effect_size"`
	Interpretation string  `json:"interpretation"`
	TStatistic     float64 `json:"t_statistic"`
	PValue         float64 `json:"p_value"`
	NCreatine      int     `json:"n_creatine"`
	NPlacebo       int     `json:"n_placebo"`
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	metric, err := metricParam(r)
	if err != nil {
		s.writeFailure(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.cache.compute("kpis:"+string(metric), func() (any, error) {
		return s.computeKPIs(metric)
	})
	if err != nil {
		var degenerate *analysis.DegenerateStatisticsError
		if errors.As(err, &degenerate) {
			s.writeFailure(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, result)
}

// computeKPIs compares the two arms on each participant's final measurement.
// The effect size uses the same population-variance pooled formula as the
// analysis layer so both surfaces agree.
func (s *Server) computeKPIs(metric models.Metric) (*kpiResponse, error) {
	records, err := s.store.GetProgressData()
	if err != nil {
		return nil, err
	}

	creatine, placebo := finalValuesByGroup(records, metric)

	d, err := analysis.CohenD(creatine, placebo)
	if err != nil {
		return nil, err
	}
	ttest, err := analysis.TTest(creatine, placebo)
	if err != nil {
		return nil, err
	}

	meanC := stat.Mean(creatine, nil)
	meanP := stat.Mean(placebo, nil)
	delta := meanC - meanP

	// 95% CI on the group difference from the pooled standard deviation,
	// using the same population-variance term as Cohen's d.
	pooled := math.Sqrt((popVariance(creatine) + popVariance(placebo)) / 2)
	margin := 1.96 * pooled / math.Sqrt(float64(len(creatine)))

	return &kpiResponse{
		Metric:         string(metric),
		Delta:          delta,
		CILower:        delta - margin,
		CIUpper:        delta + margin,
		EffectSize:     d,
		Interpretation: analysis.InterpretEffectSize(d),
		TStatistic:     ttest.T,
		PValue:         ttest.P,
		NCreatine:      len(creatine),
		NPlacebo:       len(placebo),
	}, nil
}

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	metric, err := metricParam(r)
	if err != nil {
		s.writeFailure(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.cache.compute("progression:"+string(metric), func() (any, error) {
		records, err := s.store.GetProgressData()
		if err != nil {
			return nil, err
		}
		return progressionTable(records, metric), nil
	})
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, result)
}

// progressionTable aggregates mean, std, and standard error of the mean per
// measurement date per group.
func progressionTable(records []models.ProgressRecord, metric models.Metric) *analysis.Table {
	table := analysis.NewTable("group_assignment", "measurement_date", "mean", "std", "sem", "n")

	for _, group := range models.AllGroups {
		byDate := make(map[time.Time][]float64)
		for i := range records {
			if records[i].GroupAssignment != group {
				continue
			}
			if v := records[i].MetricValue(metric); v != nil {
				byDate[records[i].MeasurementDate] = append(byDate[records[i].MeasurementDate], *v)
			}
		}

		dates := make([]time.Time, 0, len(byDate))
		for date := range byDate {
			dates = append(dates, date)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		for _, date := range dates {
			values := byDate[date]
			n := len(values)
			std := math.NaN()
			sem := math.NaN()
			if n > 1 {
				std = stat.StdDev(values, nil)
				sem = std / math.Sqrt(float64(n))
			}
			table.Append(string(group), date, stat.Mean(values, nil), std, sem, n)
		}
	}
	return table
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	metric, err := metricParam(r)
	if err != nil {
		s.writeFailure(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.cache.compute("groups:"+string(metric), func() (any, error) {
		records, err := s.store.GetProgressData()
		if err != nil {
			return nil, err
		}
		return map[string]*analysis.Table{
			"age_groups":      ageGroupTable(records, metric),
			"training_status": trainingStatusTable(records, metric),
		}, nil
	})
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, result)
}

// ageGroupTable summarizes a metric by trial arm and age bracket (young
// under 30, older otherwise, matching the canned age_group query).
func ageGroupTable(records []models.ProgressRecord, metric models.Metric) *analysis.Table {
	table := analysis.NewTable("group_assignment", "age_group", "mean", "std", "n")
	for _, group := range models.AllGroups {
		for _, bracket := range []string{"young", "older"} {
			var values []float64
			for i := range records {
				if records[i].GroupAssignment != group {
					continue
				}
				b := "older"
				if records[i].Age < 30 {
					b = "young"
				}
				if b != bracket {
					continue
				}
				if v := records[i].MetricValue(metric); v != nil {
					values = append(values, *v)
				}
			}
			if len(values) == 0 {
				continue
			}
			table.Append(string(group), bracket, stat.Mean(values, nil), sampleStd(values), len(values))
		}
	}
	return table
}

// trainingStatusTable summarizes a metric by trial arm and training status.
func trainingStatusTable(records []models.ProgressRecord, metric models.Metric) *analysis.Table {
	table := analysis.NewTable("group_assignment", "training_status", "mean", "std", "n")
	for _, group := range models.AllGroups {
		for _, status := range models.AllTrainingStatuses {
			var values []float64
			for i := range records {
				if records[i].GroupAssignment != group || records[i].TrainingStatus != status {
					continue
				}
				if v := records[i].MetricValue(metric); v != nil {
					values = append(values, *v)
				}
			}
			if len(values) == 0 {
				continue
			}
			table.Append(string(group), string(status), stat.Mean(values, nil), sampleStd(values), len(values))
		}
	}
	return table
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	metric, err := metricParam(r)
	if err != nil {
		s.writeFailure(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.cache.compute("summary:"+string(metric), func() (any, error) {
		records, err := s.store.GetProgressData()
		if err != nil {
			return nil, err
		}

		table := analysis.NewTable("group_assignment", "mean", "std", "n")
		for _, group := range models.AllGroups {
			var values []float64
			for i := range records {
				if records[i].GroupAssignment != group {
					continue
				}
				if v := records[i].MetricValue(metric); v != nil {
					values = append(values, *v)
				}
			}
			if len(values) == 0 {
				continue
			}
			table.Append(string(group), stat.Mean(values, nil), sampleStd(values), len(values))
		}
		return table, nil
	})
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, err := s.cache.compute("report", func() (any, error) {
		return s.engine.GenerateSummaryReport()
	})
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, result)
}

// finalValuesByGroup takes each participant's last timepoint of a metric.
func finalValuesByGroup(records []models.ProgressRecord, metric models.Metric) (creatine, placebo []float64) {
	type last struct {
		group models.GroupAssignment
		value *float64
		date  time.Time
	}
	finals := make(map[string]*last)
	for i := range records {
		r := &records[i]
		key := r.ParticipantID.String()
		entry, ok := finals[key]
		if !ok || r.MeasurementDate.After(entry.date) {
			finals[key] = &last{group: r.GroupAssignment, value: r.MetricValue(metric), date: r.MeasurementDate}
		}
	}

	keys := make([]string, 0, len(finals))
	for key := range finals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		entry := finals[key]
		if entry.value == nil {
			continue
		}
		switch entry.group {
		case models.GroupCreatine:
			creatine = append(creatine, *entry.value)
		case models.GroupPlacebo:
			placebo = append(placebo, *entry.value)
		}
	}
	return creatine, placebo
}

// sampleStd is the sample standard deviation, NaN for fewer than two values.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(values, nil)
}

// popVariance is the population (divide-by-n) variance, matching the pooled
// term in the effect-size computation.
func popVariance(xs []float64) float64 {
	n := float64(len(xs))
	return stat.Variance(xs, nil) * (n - 1) / n
}
