package domain

import "time"

// Priority represents how important a task is. The zero value means the
// task has no priority assigned.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Urgency represents how time-sensitive a task or milestone is. The zero
// value means no urgency assigned.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ValidPriority reports whether p is one of the three known levels.
func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidUrgency reports whether u is one of the three known levels.
func ValidUrgency(u Urgency) bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh
}

// Task represents a planner task (domain entity)
type Task struct {
	Completed   bool
	CreatedAt   time.Time
	Date        *time.Time
	ID          string
	MilestoneID string
	Priority    Priority
	Tags        []string
	Title       string
	Urgency     Urgency
}

// TaskUpdate holds the fields that may be changed through the general
// edit path. Completion has its own operation so that milestone progress
// recomputation is never bypassed.
type TaskUpdate struct {
	Date     *time.Time
	Priority *Priority
	Tags     *[]string
	Title    *string
	Urgency  *Urgency
}

// Empty reports whether the update carries no changes.
func (u TaskUpdate) Empty() bool {
	return u.Date == nil && u.Priority == nil && u.Tags == nil && u.Title == nil && u.Urgency == nil
}

// TaskCounts holds total and completed task counts for a query scope.
type TaskCounts struct {
	Completed int64
	Total     int64
}
