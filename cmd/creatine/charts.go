// ABOUTME: CLI command for generating static study charts.
// ABOUTME: Renders progression, effect-size, and rate PNGs.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/strengthlab/creatine/internal/charts"
)

var chartsOutputDir string

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Generate static study charts",
	Long: `Generate static PNG charts from the study data.

CHARTS:

  progression_<metric>.png   Group mean over time, one per tracked metric
  effect_sizes.png           Cohen's d per tracked metric
  progression_rates.png      Mean strength rate per study cell

EXAMPLES:

  creatine charts                        # Write charts under plots/
  creatine charts --output-dir figures/  # Custom output directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer := charts.NewRenderer(repo, logger)

		paths, err := renderer.GenerateSummaryPlots(chartsOutputDir)
		if err != nil {
			return fmt.Errorf("chart generation failed: %w", err)
		}

		color.Green("✓ Generated %d charts", len(paths))
		faint := color.New(color.Faint)
		for _, path := range paths {
			fmt.Printf("  %s\n", faint.Sprint(path))
		}
		return nil
	},
}

func init() {
	chartsCmd.Flags().StringVarP(&chartsOutputDir, "output-dir", "o", "plots", "directory for chart files")
	rootCmd.AddCommand(chartsCmd)
}
