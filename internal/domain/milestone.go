package domain

import (
	"math"
	"time"
)

// MilestoneStatus represents the lifecycle state of a milestone
type MilestoneStatus string

const (
	StatusPlanned   MilestoneStatus = "planned"
	StatusActive    MilestoneStatus = "active"
	StatusCompleted MilestoneStatus = "completed"
	StatusOnHold    MilestoneStatus = "on_hold"
)

// ValidMilestoneStatus reports whether s is a known status.
func ValidMilestoneStatus(s MilestoneStatus) bool {
	switch s {
	case StatusPlanned, StatusActive, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Milestone represents a milestone (domain entity). Progress is derived
// from linked tasks and is never set directly by a user edit.
type Milestone struct {
	Description string
	EndDate     *time.Time
	ID          string
	Progress    int
	StartDate   *time.Time
	Status      MilestoneStatus
	Title       string
	Urgency     Urgency
}

// MilestoneUpdate holds the user-editable milestone fields. Progress and
// StartDate are engine/creation owned and have no place here.
type MilestoneUpdate struct {
	Description *string
	EndDate     *time.Time
	Status      *MilestoneStatus
	Title       *string
	Urgency     *Urgency
}

// Empty reports whether the update carries no changes.
func (u MilestoneUpdate) Empty() bool {
	return u.Description == nil && u.EndDate == nil && u.Status == nil && u.Title == nil && u.Urgency == nil
}

// MilestoneProgress computes the progress percentage for the given task
// counts. A milestone with no linked tasks is always at 0, never 100, so
// an empty milestone can never auto-complete.
func MilestoneProgress(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// NextStatus applies the automatic transition rule: reaching 100% marks
// the milestone completed, dropping below 100% reverts a completed
// milestone to active. Planned and on-hold milestones are never touched.
func NextStatus(current MilestoneStatus, progress int) MilestoneStatus {
	switch current {
	case StatusActive:
		if progress == 100 {
			return StatusCompleted
		}
	case StatusCompleted:
		if progress < 100 {
			return StatusActive
		}
	}
	return current
}

// DaysLeft returns the number of calendar days from today until the end
// date, floored at zero. Returns -1 when no end date is set.
func DaysLeft(endDate *time.Time, now time.Time) int {
	if endDate == nil {
		return -1
	}
	today := StartOfDay(now)
	end := StartOfDay(*endDate)
	diff := int(end.Sub(today).Hours() / 24)
	if diff < 0 {
		return 0
	}
	return diff
}
