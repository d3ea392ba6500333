package app

import "errors"

var (
	// ErrPathNotFound reports a scan root that does not exist. Nothing is
	// written to the store when it is returned.
	ErrPathNotFound = errors.New("path does not exist")

	// ErrStorage wraps failures of the underlying SQLite store.
	ErrStorage = errors.New("storage error")

	// ErrNotIndexed is returned by lookups for paths with no record.
	ErrNotIndexed = errors.New("file not indexed")
)
