// ABOUTME: Database backup via SQLite VACUUM INTO.
// ABOUTME: Produces an independent, compacted snapshot file.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Backup writes a consistent snapshot of the database to path. An empty
// path defaults to a timestamped file next to the live database. Returns
// the path written.
func (d *DB) Backup(path string) (string, error) {
	if path == "" {
		timestamp := time.Now().Format("20060102_150405")
		path = fmt.Sprintf("%s.backup_%s", d.dbPath, timestamp)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("backup target already exists: %s", path)
	}

	// VACUUM INTO writes a compacted copy without blocking readers.
	if _, err := d.db.Exec("VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("backup database: %w", err)
	}

	return path, nil
}
