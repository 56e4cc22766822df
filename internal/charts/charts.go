// ABOUTME: Static PNG chart rendering for the creatine study.
// ABOUTME: Group progression lines, effect-size bars, and rate comparisons via gonum/plot.
package charts

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/strengthlab/creatine/internal/analysis"
	"github.com/strengthlab/creatine/internal/models"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Group colors matching the dashboard: royal blue for creatine, coral for
// placebo.
var groupColors = map[models.GroupAssignment]color.RGBA{
	models.GroupCreatine: {R: 0x41, G: 0x69, B: 0xE1, A: 0xFF},
	models.GroupPlacebo:  {R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF},
}

// Renderer draws study charts from store data.
type Renderer struct {
	store analysis.Store
	log   *logrus.Logger
}

// NewRenderer creates a chart renderer.
func NewRenderer(store analysis.Store, log *logrus.Logger) *Renderer {
	return &Renderer{store: store, log: log}
}

// GenerateSummaryPlots writes the full chart set under dir and returns the
// paths written. Any failed chart aborts the run.
func (r *Renderer) GenerateSummaryPlots(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create plot directory: %w", err)
	}

	records, err := r.store.GetProgressData()
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, metric := range models.TrackedMetrics {
		path := filepath.Join(dir, fmt.Sprintf("progression_%s.png", metric))
		if err := r.progressionChart(records, metric, path); err != nil {
			return nil, fmt.Errorf("progression chart for %s: %w", metric, err)
		}
		paths = append(paths, path)
	}

	effectPath := filepath.Join(dir, "effect_sizes.png")
	if err := r.effectSizeChart(records, effectPath); err != nil {
		return nil, fmt.Errorf("effect-size chart: %w", err)
	}
	paths = append(paths, effectPath)

	ratePath := filepath.Join(dir, "progression_rates.png")
	if err := r.rateChart(records, ratePath); err != nil {
		return nil, fmt.Errorf("rate chart: %w", err)
	}
	paths = append(paths, ratePath)

	r.log.WithField("charts", len(paths)).Info("summary plots generated")
	return paths, nil
}

// progressionChart plots the group mean of one metric over elapsed days.
func (r *Renderer) progressionChart(records []models.ProgressRecord, metric models.Metric, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s by group over time", metric)
	p.X.Label.Text = "Elapsed days"
	p.Y.Label.Text = fmt.Sprintf("%s (%s)", metric, models.MetricUnits[metric])

	start := earliestDate(records)
	for _, group := range models.AllGroups {
		pts := groupMeansByDate(records, metric, group, start)
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = groupColors[group]
		line.Width = vg.Points(2)

		p.Add(line)
		p.Legend.Add(string(group), line)
	}
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// effectSizeChart draws one bar of Cohen's d per tracked metric.
func (r *Renderer) effectSizeChart(records []models.ProgressRecord, path string) error {
	effects, err := analysis.EffectSizes(records)
	if err != nil {
		return err
	}

	values := make(plotter.Values, 0, len(models.TrackedMetrics))
	labels := make([]string, 0, len(models.TrackedMetrics))
	for _, metric := range models.TrackedMetrics {
		values = append(values, effects[string(metric)].EffectSize)
		labels = append(labels, string(metric))
	}

	p := plot.New()
	p.Title.Text = "Effect sizes (Cohen's d, creatine vs placebo)"
	p.Y.Label.Text = "Cohen's d"

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return err
	}
	bars.Color = groupColors[models.GroupCreatine]
	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// rateChart compares mean strength progression rates across study cells.
func (r *Renderer) rateChart(records []models.ProgressRecord, path string) error {
	rates, err := analysis.ProgressionRates(records)
	if err != nil {
		return err
	}
	summaries := analysis.SummarizeRates(rates)

	values := make(plotter.Values, 0, len(summaries))
	labels := make([]string, 0, len(summaries))
	for _, s := range summaries {
		stats, ok := s.Stats[models.MetricStrength1RM]
		if !ok {
			continue
		}
		values = append(values, stats.Mean)
		labels = append(labels, fmt.Sprintf("%s/%s", s.GroupAssignment, s.TrainingStatus))
	}

	p := plot.New()
	p.Title.Text = "Mean strength progression rate by study cell"
	p.Y.Label.Text = "kg/day"

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return err
	}
	bars.Color = groupColors[models.GroupCreatine]
	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// groupMeansByDate averages one metric per measurement date within a group,
// on an elapsed-days axis from start.
func groupMeansByDate(records []models.ProgressRecord, metric models.Metric, group models.GroupAssignment, start time.Time) plotter.XYs {
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

	pts := make(plotter.XYs, 0, len(dates))
	for _, date := range dates {
		pts = append(pts, plotter.XY{
			X: date.Sub(start).Hours() / 24,
			Y: stat.Mean(byDate[date], nil),
		})
	}
	return pts
}

func earliestDate(records []models.ProgressRecord) time.Time {
	var earliest time.Time
	for i := range records {
		if earliest.IsZero() || records[i].MeasurementDate.Before(earliest) {
			earliest = records[i].MeasurementDate
		}
	}
	return earliest
}
