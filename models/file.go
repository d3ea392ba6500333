package models

import "time"

type FileRecord struct {
	ID      int64     `db:"id"`
	Path    string    `db:"path"`
	Name    string    `db:"name"`
	Ext     string    `db:"ext"`
	Size    int64     `db:"size"`
	ModTime time.Time `db:"mtime"`
}

// ScoredResult is a single ranked search hit together with the tags
// resolved for its path at query time.
type ScoredResult struct {
	Score float64
	File  FileRecord
	Tags  []string
}

type TagCount struct {
	Tag   string
	Count int64
}
