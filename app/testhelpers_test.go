package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pmarin/filedex/models"
)

// setupTestStore creates a store backed by a temporary SQLite file.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// insertTestFile upserts a record, failing the test on error.
func insertTestFile(t *testing.T, store *Store, rec models.FileRecord) {
	t.Helper()

	if err := store.UpsertFile(rec); err != nil {
		t.Fatalf("failed to upsert %s: %v", rec.Path, err)
	}
}

// createTestFiles populates the store with a fixed set of records covering
// several extensions, sizes and ages.
func createTestFiles(t *testing.T, store *Store) []models.FileRecord {
	t.Helper()

	now := time.Now()
	files := []models.FileRecord{
		{
			Path:    "/data/documents/report.pdf",
			Name:    "report.pdf",
			Ext:     "pdf",
			Size:    1024 * 1024,
			ModTime: now.AddDate(0, -1, 0),
		},
		{
			Path:    "/data/documents/reports_2023.txt",
			Name:    "reports_2023.txt",
			Ext:     "txt",
			Size:    512,
			ModTime: now.AddDate(0, 0, -7),
		},
		{
			Path:    "/data/images/photo.jpg",
			Name:    "photo.jpg",
			Ext:     "jpg",
			Size:    5 * 1024 * 1024,
			ModTime: now.AddDate(-1, 0, 0),
		},
		{
			Path:    "/data/logs/xyz.log",
			Name:    "xyz.log",
			Ext:     "log",
			Size:    2048,
			ModTime: now,
		},
	}

	for _, f := range files {
		insertTestFile(t, store, f)
	}
	return files
}

// writeTestTree creates a directory tree on disk and returns its root.
// Each entry maps a relative path to file content; parent directories are
// created as needed.
func writeTestTree(t *testing.T, entries map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range entries {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	return root
}
