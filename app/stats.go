package app

import (
	"fmt"

	"github.com/pmarin/filedex/models"
)

// Stats aggregates index-wide figures for the `stats` command and the web
// front-end: totals, tag coverage, the most common extensions, and the time
// of the last completed scan.
func (s *Searcher) Stats() (models.IndexStats, error) {
	var stats models.IndexStats
	db := s.store.db

	err := db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM archivos`).
		Scan(&stats.TotalFiles, &stats.TotalSize)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if stats.TotalFiles > 0 {
		stats.AvgFileSize = stats.TotalSize / stats.TotalFiles
	}

	err = db.QueryRow(`SELECT COUNT(DISTINCT file_path), COUNT(DISTINCT tag) FROM tags`).
		Scan(&stats.TaggedPaths, &stats.DistinctTags)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	rows, err := db.Query(`
        SELECT ext, COUNT(*) AS cnt, COALESCE(SUM(size), 0) AS total_size
        FROM archivos
        WHERE ext != ''
        GROUP BY ext
        ORDER BY cnt DESC, ext ASC
        LIMIT 10
    `)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer rows.Close()
	for rows.Next() {
		var ext models.ExtensionStats
		if err := rows.Scan(&ext.Extension, &ext.Count, &ext.Size); err != nil {
			return stats, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		stats.TopExtensions = append(stats.TopExtensions, ext)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	lastScan, err := s.store.LastScan()
	if err != nil {
		return stats, err
	}
	stats.LastScan = lastScan

	return stats, nil
}
