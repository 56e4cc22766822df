// ABOUTME: CLI commands for exporting and importing study data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/strengthlab/creatine/internal/models"
	"github.com/strengthlab/creatine/internal/storage"
)

var (
	exportOutput string
	exportGroup  string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export study data",
	Long: `Export study data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by participant (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --group, -g    Filter by trial arm (markdown only)
  --since        Only include measurements since this date (YYYY-MM-DD)

EXAMPLES:

  creatine export json                         # Export all data as JSON
  creatine export json -o backup.json          # Save to file
  creatine export yaml                         # Export as YAML
  creatine export markdown --group creatine    # One arm as Markdown
  creatine export markdown --since 2026-03-01  # Recent data only`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		db, ok := repo.(*storage.DB)
		if !ok {
			return fmt.Errorf("export requires the SQLite store")
		}

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = db.ExportJSON()
		case "yaml":
			data, err = db.ExportYAML()
		case "markdown":
			var group *models.GroupAssignment
			if exportGroup != "" {
				g := models.GroupAssignment(exportGroup)
				group = &g
			}
			var since *time.Time
			if exportSince != "" {
				t, err := time.Parse("2006-01-02", exportSince)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			md, err := db.ExportMarkdown(group, since)
			if err != nil {
				return err
			}
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import study data from JSON",
	Long: `Import study data from a JSON export file.

Participants are imported before measurements so foreign keys resolve.
Duplicate entries (same ID) will cause an error.

EXAMPLES:

  creatine import backup.json             # Import from file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		db, ok := repo.(*storage.DB)
		if !ok {
			return fmt.Errorf("import requires the SQLite store")
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := db.ImportJSON(data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportGroup, "group", "g", "", "filter by trial arm (markdown only)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include measurements since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
