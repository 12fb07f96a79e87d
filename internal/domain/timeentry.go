package domain

import "time"

// EntrySource records how a time entry was produced
type EntrySource string

const (
	SourceManual EntrySource = "manual"
	SourceTimer  EntrySource = "timer"
)

// TimeEntry represents a timesheet entry. An entry with a nil EndedAt is
// the user's running timer; at most one such entry may exist per user.
type TimeEntry struct {
	CreatedAt     time.Time
	Day           string // YYYY-MM-DD bucket derived from StartedAt
	DurationSec   int64
	EndedAt       *time.Time
	ID            string
	MilestoneID   string
	Note          string
	Source        EntrySource
	StartedAt     time.Time
	Tags          []string
	TaskID        string
	TitleSnapshot string
	UpdatedAt     time.Time
	UserID        string
}

// Running reports whether the entry is an in-progress timer.
func (e TimeEntry) Running() bool {
	return e.EndedAt == nil
}

// TimeEntryUpdate holds the editable fields of a time entry. When either
// time bound changes the duration and day bucket are rederived.
type TimeEntryUpdate struct {
	EndedAt       *time.Time
	Note          *string
	StartedAt     *time.Time
	Tags          *[]string
	TitleSnapshot *string
}

// WeeklySummary aggregates entries over a day range.
type WeeklySummary struct {
	EntryCount    int
	TaskBreakdown map[string]int64 // title snapshot -> seconds
	TotalSeconds  int64
}
