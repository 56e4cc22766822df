// ABOUTME: CLI command for initializing the study database.
// ABOUTME: Creates the schema and optionally seeds a sample cohort.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/strengthlab/creatine/internal/storage"
)

var initSeed bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the study database",
	Long: `Initialize the study database, creating the schema if needed.

With --seed, also populates a sample cohort: four participants covering the
study cells (young/older x trained/untrained across both arms) with six
weekly measurements each. Use this for demos and local development.

EXAMPLES:

  creatine init             # Create empty database
  creatine init --seed      # Create database with sample cohort`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Opening the repository in PersistentPreRunE already created the
		// schema; only seeding remains.
		if initSeed {
			db, ok := repo.(*storage.DB)
			if !ok {
				return fmt.Errorf("seeding requires the SQLite store")
			}
			start := time.Now().AddDate(0, 0, -35)
			if err := db.Seed(start); err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			color.Green("✓ Seeded sample cohort")
		}

		color.Green("✓ Study database ready")
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(cfg.GetDataDir()))
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSeed, "seed", false, "populate a sample cohort")
	rootCmd.AddCommand(initCmd)
}
