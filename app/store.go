package app

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pmarin/filedex/models"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite file holding the archivos and tags tables. One
// store file is one logical workspace; callers decide where it lives.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create store directory: %v", ErrStorage, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorage, path, err)
	}

	// SQLite allows a single writer; funnel all statements through one
	// connection so writes serialize instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA synchronous = NORMAL`,
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrStorage, pragma, err)
		}
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrations: %v", ErrStorage, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertFile inserts rec or replaces the record sharing its path, keyed by
// the UNIQUE path column. The statement autocommits, so an interrupted scan
// keeps every file processed before the interruption.
func (s *Store) UpsertFile(rec models.FileRecord) error {
	_, err := s.db.Exec(`
        INSERT INTO archivos(path, name, ext, size, mtime)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            name = excluded.name,
            ext = excluded.ext,
            size = excluded.size,
            mtime = excluded.mtime
    `, rec.Path, rec.Name, rec.Ext, rec.Size, mtimeValue(rec.ModTime))
	if err != nil {
		return fmt.Errorf("%w: upsert %s: %v", ErrStorage, rec.Path, err)
	}
	return nil
}

// AllFiles returns every stored record in unspecified order; ranking is the
// searcher's job.
func (s *Store) AllFiles() ([]models.FileRecord, error) {
	rows, err := s.db.Query(`SELECT id, path, name, ext, size, mtime FROM archivos`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer rows.Close()

	var records []models.FileRecord
	for rows.Next() {
		rec, err := scanFileRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return records, nil
}

// GetByPath returns the record stored for an exact path, or ErrNotIndexed.
func (s *Store) GetByPath(path string) (models.FileRecord, error) {
	row := s.db.QueryRow(`SELECT id, path, name, ext, size, mtime FROM archivos WHERE path = ?`, path)
	rec, err := scanFileRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FileRecord{}, ErrNotIndexed
	}
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return rec, nil
}

func (s *Store) CountFiles() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM archivos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return n, nil
}

func (s *Store) setMetadata(key, value string) error {
	_, err := s.db.Exec(`
        INSERT INTO metadata(key, value)
        VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value
    `, key, value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func (s *Store) SetLastScan(t time.Time) error {
	return s.setMetadata("last_scan", t.Format(time.RFC3339))
}

// LastScan returns the time of the most recent completed scan, or the zero
// time when no scan has run against this store.
func (s *Store) LastScan() (time.Time, error) {
	var ts string
	err := s.db.QueryRow(`SELECT value FROM metadata WHERE key = 'last_scan'`).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFileRow(row rowScanner) (models.FileRecord, error) {
	var rec models.FileRecord
	var mtime float64
	if err := row.Scan(&rec.ID, &rec.Path, &rec.Name, &rec.Ext, &rec.Size, &mtime); err != nil {
		return models.FileRecord{}, err
	}
	rec.ModTime = timeFromMtime(mtime)
	return rec, nil
}

// mtimeValue stores modification times as REAL seconds since the epoch so
// sub-second precision survives a round trip.
func mtimeValue(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func timeFromMtime(f float64) time.Time {
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*float64(time.Second))))
}
