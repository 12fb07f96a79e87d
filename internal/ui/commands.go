package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pulse/internal/domain"
)

// Loader commands fetch one view's data each. They share a generous
// timeout so a stuck query cannot hang the UI forever.

const loadTimeout = 5 * time.Second

func (m *Model) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		summary, err := m.services.Summary.Dashboard(ctx, time.Now())
		if err != nil {
			return errMsg{err}
		}
		return dashboardMsg{summary}
	}
}

func (m *Model) loadMatrix() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		snapshot, err := m.services.Matrix.Snapshot(ctx, nil)
		if err != nil {
			return errMsg{err}
		}
		return matrixMsg{snapshot}
	}
}

func (m *Model) loadTimer() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		running, err := m.services.Time.Running(ctx)
		if err != nil {
			return errMsg{err}
		}
		return timerMsg{running}
	}
}

func (m *Model) loadWeek() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		summary, err := m.services.Time.WeekSummary(ctx, time.Now())
		if err != nil {
			return errMsg{err}
		}
		return weekMsg{summary}
	}
}

func (m *Model) loadJournal() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		sat, err := m.services.Journal.RecentSatisfaction(ctx, recentSatisfactionDays)
		if err != nil {
			return errMsg{err}
		}
		standups, err := m.services.Journal.RecentStandups(ctx, 3)
		if err != nil {
			return errMsg{err}
		}
		return journalMsg{satisfaction: sat, standups: standups}
	}
}

// waitFor blocks on one live feed and converts the next delivery into a
// message. The handler for that message re-arms the feed by issuing the
// same command again; a closed feed simply stops re-arming.
func waitFor[T any](events <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-events
		if !ok {
			return nil
		}
		return wrap(v)
	}
}

func (m *Model) waitForTaskEvent() tea.Cmd {
	return waitFor(m.taskEvents, func([]domain.Task) tea.Msg {
		return tasksChangedMsg{}
	})
}

func (m *Model) waitForMatrixEvent() tea.Cmd {
	return waitFor(m.matrixEvents, func(s domain.MatrixSnapshot) tea.Msg {
		return matrixEventMsg{s}
	})
}

func (m *Model) waitForMilestoneEvent() tea.Cmd {
	return waitFor(m.milestoneEvents, func([]domain.Milestone) tea.Msg {
		return milestonesChangedMsg{}
	})
}

func (m *Model) waitForTimerEvent() tea.Cmd {
	return waitFor(m.runningEvents, func(e *domain.TimeEntry) tea.Msg {
		return timerEventMsg{e}
	})
}

func (m *Model) waitForWeekEvent() tea.Cmd {
	return waitFor(m.weekEvents, func(s domain.WeeklySummary) tea.Msg {
		return weekEventMsg{s}
	})
}

func (m *Model) waitForSatisfactionEvent() tea.Cmd {
	return waitFor(m.satEvents, func(logs []domain.SatisfactionLog) tea.Msg {
		return satisfactionEventMsg{logs}
	})
}

func (m *Model) toggleSelectedTask() tea.Cmd {
	if m.cursor >= len(m.dashboard.RecentTasks) {
		return nil
	}
	task := m.dashboard.RecentTasks[m.cursor]

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		if err := m.services.Tasks.SetCompletion(ctx, task.ID, !task.Completed); err != nil {
			return errMsg{err}
		}
		return tasksChangedMsg{}
	}
}

func (m *Model) stopTimer() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		if _, err := m.services.Time.StopRunningTimer(ctx); err != nil {
			return errMsg{err}
		}
		return timerMsg{nil}
	}
}
