package webapp

import (
	"fmt"
	"strconv"
)

func humanizeBytes(s int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)
	switch {
	case s >= TB:
		return fmt.Sprintf("%.2f TB", float64(s)/TB)
	case s >= GB:
		return fmt.Sprintf("%.2f GB", float64(s)/GB)
	case s >= MB:
		return fmt.Sprintf("%.2f MB", float64(s)/MB)
	case s >= KB:
		return fmt.Sprintf("%.2f KB", float64(s)/KB)
	default:
		return fmt.Sprintf("%d B", s)
	}
}

// parseInt64 reads a numeric query parameter; anything unparsable counts as
// unset, matching how malformed filter inputs degrade elsewhere.
func parseInt64(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
