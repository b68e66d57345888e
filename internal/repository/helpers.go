package repository

import (
	"time"
)

// timeLayout is the RFC3339 format for storing times in SQLite
const timeLayout = time.RFC3339

// formatTime returns t formatted as RFC3339 in UTC
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
