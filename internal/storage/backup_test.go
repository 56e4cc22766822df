// ABOUTME: Tests for VACUUM INTO database backups.
// ABOUTME: Verifies snapshot integrity, default naming, and overwrite refusal.
package storage

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBackup(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.Seed(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	target := filepath.Join(t.TempDir(), "snapshot.db")
	path, err := db.Backup(target)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if path != target {
		t.Errorf("Backup path = %s, want %s", path, target)
	}

	// The snapshot is a fully independent database.
	snapshot, err := Open(path)
	if err != nil {
		t.Fatalf("Open snapshot failed: %v", err)
	}
	defer snapshot.Close()

	participants, err := snapshot.ListParticipants(nil)
	if err != nil {
		t.Fatalf("ListParticipants on snapshot failed: %v", err)
	}
	if len(participants) != 4 {
		t.Errorf("snapshot has %d participants, want 4", len(participants))
	}
}

func TestBackupDefaultPath(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	path, err := db.Backup("")
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if !strings.HasPrefix(path, db.Path()+".backup_") {
		t.Errorf("default backup path = %s, want %s.backup_<timestamp>", path, db.Path())
	}
}

func TestBackupRefusesExistingTarget(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	target := filepath.Join(t.TempDir(), "snapshot.db")
	if _, err := db.Backup(target); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if _, err := db.Backup(target); err == nil {
		t.Error("expected error backing up onto an existing file")
	}
}
