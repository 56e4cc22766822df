// ABOUTME: CLI command for running the full analysis report.
// ABOUTME: Writes a timestamped JSON report or prints to stdout.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/strengthlab/creatine/internal/analysis"
)

var analyzeOutputDir string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full study analysis",
	Long: `Run the full study analysis and produce a composite report.

SECTIONS:

  effect_sizes        Cohen's d per tracked metric, creatine vs placebo
  progression_rates   Per-participant OLS rates plus study-cell summaries
  training_impact     Training program and compliance breakdowns
  age_effects         Outcomes split by age bracket
  dosing_protocols    Outcomes split by dosing protocol
  fatigue_recovery    Fatigue breakdown and recovery trends

Report generation is all-or-nothing: if any section fails, no report file
is written.

EXAMPLES:

  creatine analyze                           # Print report to stdout
  creatine analyze --output-dir reports/     # Write timestamped JSON file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := analysis.NewEngine(repo, logger)

		if analyzeOutputDir != "" {
			path, err := engine.WriteReport(analyzeOutputDir)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			color.Green("✓ Report written")
			fmt.Printf("  %s\n", color.New(color.Faint).Sprint(path))
			return nil
		}

		report, err := engine.GenerateSummaryReport()
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("serialize report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "output-dir", "o", "", "directory for the report file (default: stdout)")
	rootCmd.AddCommand(analyzeCmd)
}
