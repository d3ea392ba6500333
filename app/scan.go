package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pmarin/filedex/models"
)

// ScanOptions tunes a single scan. The zero value is fine: worker count
// defaults to twice the CPU count and nothing is excluded.
type ScanOptions struct {
	Workers  int
	Exclude  []string
	Progress func(n int) // called every progressEvery files when set
}

const progressEvery = 100

// Scan walks root and upserts one record per regular file found. It returns
// the number of files indexed in this run. A root that does not exist fails
// with ErrPathNotFound before anything is written; records for files removed
// from disk since an earlier scan are left in place.
func Scan(store *Store, root string, opts ScanOptions) (int, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", root, err)
	}
	if _, err := os.Stat(absRoot); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrPathNotFound, absRoot)
	}

	source := NewLocalSource(absRoot, opts.Exclude, opts.Workers)
	return scanSource(store, source, opts.Progress)
}

// scanSource drains a file source into the store. One consumer performs the
// upserts, so writes stay sequential no matter how many walker goroutines
// feed the channel. Each upsert autocommits; an interrupted scan keeps
// everything finished so far.
func scanSource(store *Store, source models.FileSource, progress func(int)) (int, error) {
	count := 0
	for rec := range source.Walk() {
		if err := store.UpsertFile(rec); err != nil {
			return count, err
		}
		count++
		if progress != nil && count%progressEvery == 0 {
			progress(count)
		}
	}

	if err := store.SetLastScan(time.Now()); err != nil {
		return count, err
	}
	return count, nil
}
