package entities

import "time"

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
)

// Event is a calendar entry owned by a single user. The storage layer
// assigns ID on creation. StartTime must be strictly before EndTime once
// all-day normalization has been applied.
type Event struct {
	ID          int
	Title       string
	Description string
	AllDay      bool
	StartTime   time.Time
	EndTime     time.Time
	UserID      string
}

// TruncateToDate drops the time-of-day component.
func TruncateToDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameOrBeforeDate compares two instants at date granularity.
func SameOrBeforeDate(a, b time.Time) bool {
	return !TruncateToDate(a).After(TruncateToDate(b))
}
