// ABOUTME: CLI command for backing up the study database.
// ABOUTME: Produces a compacted snapshot via SQLite VACUUM INTO.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var backupPath string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the study database",
	Long: `Back up the study database to a snapshot file.

The snapshot is an independent, compacted SQLite file produced without
blocking readers. Without --path, the snapshot lands next to the live
database with a timestamped name. Backing up onto an existing file is an
error.

EXAMPLES:

  creatine backup                        # Timestamped snapshot next to the DB
  creatine backup --path study.db.bak    # Explicit target`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := repo.Backup(backupPath)
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}

		color.Green("✓ Backup written")
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(path))
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupPath, "path", "", "backup file path (default: timestamped next to the DB)")
	rootCmd.AddCommand(backupCmd)
}
