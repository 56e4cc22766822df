// ABOUTME: Analysis engine orchestrating effect sizes, rates, recovery, and canned queries.
// ABOUTME: Report generation is fail-atomic: one failing sub-analysis aborts the whole report.
package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/strengthlab/creatine/internal/models"
)

// Store is the read surface the analysis engine needs from the data store.
type Store interface {
	GetProgressData() ([]models.ProgressRecord, error)
	RunAnalysisQuery(name string) (*Table, error)
}

// Engine runs the study analyses against a store. Each invocation loads the
// relevant table into memory, computes, and returns; there is no shared
// mutable state between calls.
type Engine struct {
	store Store
	log   *logrus.Logger
}

// NewEngine creates an analysis engine with an explicitly constructed logger.
func NewEngine(store Store, log *logrus.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// Report maps analysis names to their result: a table, a typed result set,
// or a further nested mapping. The whole structure is JSON-serializable.
type Report map[string]any

// CalculateEffectSizes computes Cohen's d per tracked metric alongside the
// population-category breakdown.
func (e *Engine) CalculateEffectSizes() (Report, error) {
	populationEffects, err := e.store.RunAnalysisQuery("population_category")
	if err != nil {
		return nil, err
	}

	records, err := e.store.GetProgressData()
	if err != nil {
		return nil, err
	}

	effectSizes, err := EffectSizes(records)
	if err != nil {
		return nil, err
	}

	return Report{
		"population_effects": populationEffects,
		"effect_sizes":       effectSizes,
	}, nil
}

// AnalyzeProgressionRates fits per-participant rates and summarizes them by
// study cell.
func (e *Engine) AnalyzeProgressionRates() (Report, error) {
	records, err := e.store.GetProgressData()
	if err != nil {
		return nil, err
	}

	rates, err := ProgressionRates(records)
	if err != nil {
		return nil, err
	}

	return Report{
		"individual_rates":   rates,
		"summary_statistics": SummarizeRates(rates),
	}, nil
}

// AnalyzeTrainingImpact combines the training program and compliance
// breakdowns.
func (e *Engine) AnalyzeTrainingImpact() (Report, error) {
	program, err := e.store.RunAnalysisQuery("training_program")
	if err != nil {
		return nil, err
	}

	compliance, err := e.store.RunAnalysisQuery("training_compliance")
	if err != nil {
		return nil, err
	}

	return Report{
		"program_analysis":    program,
		"compliance_analysis": compliance,
	}, nil
}

// AnalyzeAgeEffects returns the age-group breakdown.
func (e *Engine) AnalyzeAgeEffects() (*Table, error) {
	return e.store.RunAnalysisQuery("age_group")
}

// AnalyzeDosingProtocols returns the dosing-protocol breakdown.
func (e *Engine) AnalyzeDosingProtocols() (*Table, error) {
	return e.store.RunAnalysisQuery("dosing_protocol")
}

// AnalyzeFatigueAndRecovery combines the fatigue breakdown with the
// per-participant recovery trends.
func (e *Engine) AnalyzeFatigueAndRecovery() (Report, error) {
	fatigue, err := e.store.RunAnalysisQuery("fatigue_level")
	if err != nil {
		return nil, err
	}

	records, err := e.store.GetProgressData()
	if err != nil {
		return nil, err
	}

	recovery, err := RecoveryPatterns(records)
	if err != nil {
		return nil, err
	}

	return Report{
		"fatigue_analysis":  fatigue,
		"recovery_patterns": recovery,
	}, nil
}

// GenerateSummaryReport runs every analysis and assembles the composite
// report. The first failing sub-analysis aborts generation; the caller
// never sees a partially populated report.
func (e *Engine) GenerateSummaryReport() (Report, error) {
	sections := []struct {
		name string
		run  func() (any, error)
	}{
		{"effect_sizes", func() (any, error) { return e.CalculateEffectSizes() }},
		{"progression_rates", func() (any, error) { return e.AnalyzeProgressionRates() }},
		{"training_impact", func() (any, error) { return e.AnalyzeTrainingImpact() }},
		{"age_effects", func() (any, error) { return e.AnalyzeAgeEffects() }},
		{"dosing_protocols", func() (any, error) { return e.AnalyzeDosingProtocols() }},
		{"fatigue_recovery", func() (any, error) { return e.AnalyzeFatigueAndRecovery() }},
	}

	report := make(Report, len(sections))
	for _, section := range sections {
		result, err := section.run()
		if err != nil {
			e.log.WithField("analysis", section.name).WithError(err).Error("analysis failed")
			return nil, fmt.Errorf("analysis %s: %w", section.name, err)
		}
		report[section.name] = result
	}

	e.log.WithField("sections", len(report)).Info("summary report generated")
	return report, nil
}

// WriteReport generates the summary report and writes it as indented JSON
// to a timestamped file under dir. Returns the path written.
func (e *Engine) WriteReport(dir string) (string, error) {
	report, err := e.GenerateSummaryReport()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("analysis_report_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	e.log.WithField("path", path).Info("analysis report written")
	return path, nil
}
