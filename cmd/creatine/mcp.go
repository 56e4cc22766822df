// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server over the study store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/strengthlab/creatine/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets AI assistants interact with the study data through a standardized
protocol. The server communicates via stdin/stdout.

CONFIGURATION:

  {
    "mcpServers": {
      "creatine": {
        "command": "creatine",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_participant        Enroll a study participant
  list_participants      List enrolled participants
  add_measurement        Record a measurement timepoint
  get_effect_sizes       Cohen's d per tracked metric
  get_progression_rates  Per-participant rates and cell summaries
  run_report             Generate the full analysis report

AVAILABLE RESOURCES:

  study://cohort         Enrollment summary by arm and cell
  study://report         Full analysis report`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
