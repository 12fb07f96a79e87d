package ui

import (
	"time"

	"pulse/internal/domain"
	"pulse/internal/services"
)

// dashboardMsg carries a freshly loaded dashboard aggregate
type dashboardMsg struct {
	summary services.DashboardSummary
}

// matrixMsg carries a freshly classified matrix snapshot
type matrixMsg struct {
	snapshot domain.MatrixSnapshot
}

// timerMsg carries the current running entry; nil means idle
type timerMsg struct {
	running *domain.TimeEntry
}

// journalMsg carries recent journal data
type journalMsg struct {
	satisfaction []domain.SatisfactionLog
	standups     []domain.StandupLog
}

// weekMsg carries the weekly timesheet aggregate
type weekMsg struct {
	summary domain.WeeklySummary
}

// tickMsg drives the running-timer display
type tickMsg time.Time

// tasksChangedMsg signals that the task set changed and views that
// derive from it should reload
type tasksChangedMsg struct{}

// milestonesChangedMsg signals that the active milestone set changed
type milestonesChangedMsg struct{}

// Live-feed deliveries get their own message types so the handlers can
// re-arm the feed's waiter without multiplying the one-shot loaders'.

type matrixEventMsg struct {
	snapshot domain.MatrixSnapshot
}

type timerEventMsg struct {
	running *domain.TimeEntry
}

type weekEventMsg struct {
	summary domain.WeeklySummary
}

type satisfactionEventMsg struct {
	logs []domain.SatisfactionLog
}

// errMsg carries an operation error for the status line
type errMsg struct {
	err error
}

// clearErrMsg clears the status line
type clearErrMsg struct{}
