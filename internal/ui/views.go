package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"pulse/internal/domain"
	"pulse/internal/theme"
)

const progressBarWidth = 20

// overviewView renders today's counts, the next milestone and the recent
// task feed with a selectable cursor.
func (m *Model) overviewView() string {
	var b strings.Builder

	d := m.dashboard
	b.WriteString(theme.TitleStyle.Render("Today"))
	b.WriteString("\n")
	b.WriteString(theme.NormalStyle.Render(fmt.Sprintf(
		"  %d of %d tasks done · %d active milestones",
		d.TodayTasks.Completed, d.TodayTasks.Total, d.ActiveMilestones)))
	b.WriteString("\n")

	if score := d.Satisfaction.CurrentScore; score != nil {
		line := fmt.Sprintf("  satisfaction %d/10", *score)
		if change := d.Satisfaction.Change; change != nil {
			line += fmt.Sprintf(" (%+d)", *change)
		}
		b.WriteString(theme.MutedStyle.Render(line))
		b.WriteString("\n")
	}

	if d.NextMilestone != nil {
		mstone := d.NextMilestone
		b.WriteString(theme.TitleStyle.Render("Next milestone"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s\n",
			theme.NormalStyle.Render(mstone.Title),
			theme.StatusStyle(mstone.Status).Render(string(mstone.Status))))
		b.WriteString(fmt.Sprintf("  %s %d%%",
			progressBar(mstone.Progress), mstone.Progress))
		if m.dashboard.NextDaysLeft >= 0 {
			b.WriteString(theme.MutedStyle.Render(fmt.Sprintf(" · %d days left", m.dashboard.NextDaysLeft)))
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.TitleStyle.Render("Recent tasks"))
	b.WriteString("\n")
	if len(d.RecentTasks) == 0 {
		b.WriteString(theme.MutedStyle.Render("  nothing yet, press a to add a task"))
		b.WriteString("\n")
	}
	for i, task := range d.RecentTasks {
		cursor := "  "
		if i == m.cursor {
			cursor = theme.HelpShortcutStyle.Render("> ")
		}
		b.WriteString(cursor + taskLine(task) + "\n")
	}

	return b.String()
}

// matrixView renders the 2x2 Eisenhower grid plus the uncategorized pool.
func (m *Model) matrixView() string {
	cellWidth := (m.width - 8) / 2
	if cellWidth < 24 {
		cellWidth = 24
	}

	q1 := quadrantCell("Do first", domain.Quadrant1, m.matrix.Q1, cellWidth)
	q2 := quadrantCell("Schedule", domain.Quadrant2, m.matrix.Q2, cellWidth)
	q3 := quadrantCell("Delegate", domain.Quadrant3, m.matrix.Q3, cellWidth)
	q4 := quadrantCell("Eliminate", domain.Quadrant4, m.matrix.Q4, cellWidth)

	top := lipgloss.JoinHorizontal(lipgloss.Top, q1, " ", q2)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, q3, " ", q4)

	var b strings.Builder
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, top, bottom))
	b.WriteString("\n")

	if len(m.matrix.Uncategorized) > 0 {
		b.WriteString(theme.MutedStyle.Render(
			fmt.Sprintf("%d uncategorized task(s) need priority and urgency", len(m.matrix.Uncategorized))))
		b.WriteString("\n")
	}
	return b.String()
}

func quadrantCell(label string, q domain.Quadrant, tasks []domain.Task, width int) string {
	var b strings.Builder
	b.WriteString(theme.SubtitleStyle.Render(label))
	b.WriteString(theme.MutedStyle.Render(fmt.Sprintf(" (%d)", len(tasks))))
	b.WriteString("\n")

	shown := tasks
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, t := range shown {
		b.WriteString(taskLine(t))
		b.WriteString("\n")
	}
	if len(tasks) > 5 {
		b.WriteString(theme.MutedStyle.Render(fmt.Sprintf("…and %d more", len(tasks)-5)))
		b.WriteString("\n")
	}

	return theme.QuadrantStyle(q).Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// timerView renders the running timer and the weekly totals.
func (m *Model) timerView() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Timer"))
	b.WriteString("\n")
	if m.running != nil {
		elapsed := time.Since(m.running.StartedAt).Round(time.Second)
		b.WriteString(fmt.Sprintf("  %s %s\n",
			theme.TimerStyle.Render(formatDuration(elapsed)),
			theme.NormalStyle.Render(m.running.TitleSnapshot)))
		if m.running.Note != "" {
			b.WriteString(theme.MutedStyle.Render("  " + m.running.Note))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(theme.MutedStyle.Render("  no timer running, press s to start one"))
		b.WriteString("\n")
	}

	b.WriteString(theme.TitleStyle.Render("This week"))
	b.WriteString("\n")
	b.WriteString(theme.NormalStyle.Render(fmt.Sprintf("  %s across %d entries",
		formatDuration(time.Duration(m.week.TotalSeconds)*time.Second), m.week.EntryCount)))
	b.WriteString("\n")

	for title, seconds := range m.week.TaskBreakdown {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			theme.TimerLabelStyle.Render(formatDuration(time.Duration(seconds)*time.Second)),
			theme.NormalStyle.Render(title)))
	}

	return b.String()
}

// journalView renders the satisfaction history and latest standups.
func (m *Model) journalView() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Satisfaction"))
	b.WriteString("\n")
	if len(m.sat) == 0 {
		b.WriteString(theme.MutedStyle.Render("  no entries yet, press g to log today"))
		b.WriteString("\n")
	}
	for _, log := range m.sat {
		bar := strings.Repeat("█", log.Score) + strings.Repeat("░", 10-log.Score)
		b.WriteString(fmt.Sprintf("  %s %s %2d %s\n",
			theme.MutedStyle.Render(log.Date.Format("Jan 02")),
			theme.MoodStyle(log.Mood).Render(bar),
			log.Score,
			theme.MoodStyle(log.Mood).Render(string(log.Mood))))
	}

	b.WriteString(theme.TitleStyle.Render("Standups"))
	b.WriteString("\n")
	if len(m.standups) == 0 {
		b.WriteString(theme.MutedStyle.Render("  no standups logged"))
		b.WriteString("\n")
	}
	for _, s := range m.standups {
		b.WriteString(theme.SubtitleStyle.Render("  " + s.Date.Format("Mon Jan 02")))
		b.WriteString("\n")
		for _, item := range s.Completed {
			b.WriteString(theme.NormalStyle.Render("    ✓ " + item))
			b.WriteString("\n")
		}
		for _, item := range s.Planned {
			b.WriteString(theme.NormalStyle.Render("    → " + item))
			b.WriteString("\n")
		}
		for _, item := range s.Blockers {
			b.WriteString(theme.ErrorStyle.Render("    ✗ " + item))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func taskLine(t domain.Task) string {
	check := "[ ]"
	style := theme.NormalStyle
	if t.Completed {
		check = "[x]"
		style = theme.DoneStyle
	}
	line := fmt.Sprintf("%s %s", check, style.Render(t.Title))
	if len(t.Tags) > 0 {
		line += " " + theme.TagStyle.Render("#"+strings.Join(t.Tags, " #"))
	}
	return line
}

func progressBar(progress int) string {
	filled := progress * progressBarWidth / 100
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	return theme.ProgressFilledStyle.Render(strings.Repeat("█", filled)) +
		theme.ProgressEmptyStyle.Render(strings.Repeat("░", progressBarWidth-filled))
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
