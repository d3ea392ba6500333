package app

import (
	"strings"
	"time"

	"github.com/pmarin/filedex/models"
)

// FileFilter is the optional predicate set applied to records before
// scoring. Zero values mean the predicate is absent and always satisfied.
// All active predicates must hold for a record to be admitted.
type FileFilter struct {
	Ext     string // extension equals, case-insensitive, leading dots ignored
	Tag     string // tag set contains exactly this string (case-sensitive)
	MinSize int64  // inclusive lower bound on size; 0 disables
	MaxSize int64  // inclusive upper bound on size; 0 disables
	After   string // inclusive lower bound on mtime, see dateBoundLayouts
	Before  string // inclusive upper bound on mtime
}

// dateBoundLayouts is the accepted grammar for After/Before values: an ISO
// calendar date, optionally with a time, interpreted in local time.
var dateBoundLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateBound(s string) (time.Time, bool) {
	for _, layout := range dateBoundLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Admits reports whether rec satisfies every active predicate. tags is the
// tag set recorded for rec.Path. A date bound that does not parse disables
// that bound instead of failing the query.
func (f *FileFilter) Admits(rec models.FileRecord, tags []string) bool {
	if f == nil {
		return true
	}
	if f.Ext != "" {
		if !strings.EqualFold(strings.TrimLeft(f.Ext, "."), rec.Ext) {
			return false
		}
	}
	if f.Tag != "" {
		found := false
		for _, t := range tags {
			if t == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinSize > 0 && rec.Size < f.MinSize {
		return false
	}
	if f.MaxSize > 0 && rec.Size > f.MaxSize {
		return false
	}
	if f.After != "" {
		if bound, ok := parseDateBound(f.After); ok && rec.ModTime.Before(bound) {
			return false
		}
	}
	if f.Before != "" {
		if bound, ok := parseDateBound(f.Before); ok && rec.ModTime.After(bound) {
			return false
		}
	}
	return true
}
