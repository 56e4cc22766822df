// ABOUTME: Root Cobra command for creatine CLI.
// ABOUTME: Handles config loading and repository lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/strengthlab/creatine/internal/config"
	"github.com/strengthlab/creatine/internal/logging"
	"github.com/strengthlab/creatine/internal/storage"
)

var (
	cfg    *config.Config
	repo   storage.Repository
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "creatine",
	Short: "Creatine supplementation study toolkit",
	Long: `Creatine is a CLI toolkit for managing a creatine supplementation trial.

WHAT IT MANAGES:

  Participants   enrollment into creatine/placebo arms with demographics
  Measurements   per-timepoint strength, lean mass, performance, and fatigue
  Analysis       effect sizes, progression rates, recovery patterns
  Reporting      composite JSON reports, static charts, live dashboard

QUICK START:

  $ creatine init --seed                       # Create DB with sample cohort
  $ creatine participant add 25 creatine trained
  $ creatine measurement add abc123 102.5 65.4 # 1RM and lean mass
  $ creatine analyze                           # Write a full report
  $ creatine dashboard                         # Interactive dashboard

ANALYSIS:

  $ creatine analyze --output-dir reports/     # Full JSON report
  $ creatine charts --output-dir plots/        # Static PNG charts
  $ creatine export json                       # Full data export

MCP INTEGRATION:

  Run 'creatine mcp' to start the Model Context Protocol server for use
  with MCP-compatible AI assistants:

  {
    "mcpServers": {
      "creatine": { "command": "creatine", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Study data lives in a SQLite database at ~/.local/share/creatine/.
  Override the location with "data_dir" in ~/.config/creatine/config.json.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = logging.New(os.Stderr, cfg.GetLogLevel())

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open study database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}
