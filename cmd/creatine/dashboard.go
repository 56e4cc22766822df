// ABOUTME: CLI command for the interactive study dashboard.
// ABOUTME: Serves the HTML page and JSON API over HTTP.
package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/strengthlab/creatine/internal/dashboard"
)

var dashboardPort int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Start the interactive dashboard",
	Long: `Start the interactive study dashboard.

The dashboard serves an HTML page with a metric selector backed by a JSON
API:

  GET /api/kpis?metric=...         Final-timepoint group comparison
  GET /api/progression?metric=...  Group means per measurement date
  GET /api/groups?metric=...       Age-group and training-status breakdowns
  GET /api/summary?metric=...      Overall group summary
  GET /api/report                  Full analysis report

Every request recomputes from the live database, so new measurements show
up on the next refresh.

EXAMPLES:

  creatine dashboard               # Listen on the configured port (8050)
  creatine dashboard --port 9000   # Custom port`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := dashboardPort
		if port <= 0 {
			port = cfg.GetPort()
		}

		server := dashboard.NewServer(repo, logger)
		color.Green("✓ Dashboard at http://localhost:%d", port)
		return server.ListenAndServe(port)
	},
}

func init() {
	dashboardCmd.Flags().IntVarP(&dashboardPort, "port", "p", 0, "listen port (default from config)")
	rootCmd.AddCommand(dashboardCmd)
}
