package models

import "time"

type ExtensionStats struct {
	Extension string
	Count     int64
	Size      int64
}

type IndexStats struct {
	TotalFiles    int64
	TotalSize     int64
	AvgFileSize   int64
	TaggedPaths   int64
	DistinctTags  int64
	LastScan      time.Time
	TopExtensions []ExtensionStats
}
